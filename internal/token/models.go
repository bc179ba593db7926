// Package token provides the in-memory registry of device push tokens.
package token

import "errors"

// Repository errors.
var (
	ErrTokenNotFound = errors.New("token not found")
)

// RegisteredToken is a device push token stored in the registry.
// Records are immutable once created; replacement is delete + create.
type RegisteredToken struct {
	// ID is the server-generated registration identifier.
	ID string
	// Token is the push-gateway device token, stored verbatim.
	Token string
	// CreatedAt is the registration time in seconds since the Unix epoch.
	CreatedAt int64
}
