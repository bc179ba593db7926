package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bouzuya/pushrelay/internal/api/middleware"
	"github.com/bouzuya/pushrelay/internal/api/models"
	"github.com/bouzuya/pushrelay/internal/api/response"
	"github.com/bouzuya/pushrelay/internal/relay"
)

// AdminHandler handles admin endpoints. Requests reach these handlers with
// a credential extracted by the AdminSecret middleware; whether the
// credential is correct is decided by the relay service.
type AdminHandler struct {
	relay *relay.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(relayService *relay.Service) *AdminHandler {
	return &AdminHandler{relay: relayService}
}

// ListTokens handles GET /admin/tokens - list all registrations.
// The raw push token values are never included in the response.
func (h *AdminHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	secret := middleware.GetAdminSecret(r.Context())

	summaries, err := h.relay.ListTokens(r.Context(), secret)
	if err != nil {
		if errors.Is(err, relay.ErrForbidden) {
			response.Forbidden(w, r, "invalid admin secret")
			return
		}
		response.InternalError(w, r, "failed to list tokens")
		return
	}

	tokens := make([]models.ListTokensResponseToken, 0, len(summaries))
	for _, s := range summaries {
		tokens = append(tokens, models.ListTokensResponseToken{
			CreatedAt: s.CreatedAt,
			ID:        s.ID,
		})
	}
	response.JSON(w, r, http.StatusOK, models.ListTokensResponse{Tokens: tokens})
}

// CreateNotification handles POST /admin/notifications - fan a notification
// out to the given registrations. Validation failures and dispatch failures
// are both reported as internal errors at this boundary.
func (h *AdminHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var input models.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body")
		return
	}

	secret := middleware.GetAdminSecret(r.Context())

	err := h.relay.CreateNotification(r.Context(), secret, input.TokenIDs, input.Message, input.URL)
	if err != nil {
		if errors.Is(err, relay.ErrForbidden) {
			response.Forbidden(w, r, "invalid admin secret")
			return
		}
		response.InternalError(w, r, "failed to create notification")
		return
	}

	response.JSON(w, r, http.StatusOK, models.CreateNotificationResponse{})
}
