package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bouzuya/pushrelay/internal/api/models"
)

// adminSecretKey is the context key for the presented admin secret.
type adminSecretKey struct{}

// AdminSecret extracts the admin credential from the Authorization header
// and adds it to the request context. A literal "Bearer " prefix is stripped
// if present. Requests without a credential are rejected with 401; whether
// the credential is correct is decided downstream (403 on mismatch).
func AdminSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeUnauthorized(w, r, "missing authorization header")
			return
		}

		secret := strings.TrimPrefix(authHeader, "Bearer ")
		if secret == "" {
			writeUnauthorized(w, r, "missing admin secret")
			return
		}

		ctx := context.WithValue(r.Context(), adminSecretKey{}, secret)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeUnauthorized writes a 401 Unauthorized response.
// Implemented directly here to avoid an import cycle with the response package.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewUnauthorized(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// GetAdminSecret retrieves the presented admin secret from the context.
// Returns an empty string if no credential was presented.
func GetAdminSecret(ctx context.Context) string {
	if s, ok := ctx.Value(adminSecretKey{}).(string); ok {
		return s
	}
	return ""
}
