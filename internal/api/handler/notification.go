package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bouzuya/pushrelay/internal/api/response"
	"github.com/bouzuya/pushrelay/internal/relay"
)

// NotificationHandler handles the per-device self-test endpoint.
type NotificationHandler struct {
	relay *relay.Service
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(relayService *relay.Service) *NotificationHandler {
	return &NotificationHandler{relay: relayService}
}

// CreateTestNotification handles POST /tokens/{tokenId}/notifications -
// send a test notification to the given registration. No admin secret is
// required; the operation cannot target other users' tokens.
func (h *NotificationHandler) CreateTestNotification(w http.ResponseWriter, r *http.Request) {
	tokenID := chi.URLParam(r, "tokenId")
	if tokenID == "" {
		response.BadRequest(w, r, "tokenId is required")
		return
	}

	if err := h.relay.CreateTestNotification(r.Context(), tokenID); err != nil {
		response.InternalError(w, r, "failed to send test notification")
		return
	}

	response.NoContent(w, r)
}
