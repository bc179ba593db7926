// Package handler provides HTTP handlers for the relay API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bouzuya/pushrelay/internal/api/models"
	"github.com/bouzuya/pushrelay/internal/api/response"
	"github.com/bouzuya/pushrelay/internal/relay"
)

// TokenHandler handles token registration endpoints.
type TokenHandler struct {
	relay *relay.Service
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(relayService *relay.Service) *TokenHandler {
	return &TokenHandler{relay: relayService}
}

// CreateToken handles POST /tokens - register a device push token.
func (h *TokenHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var input models.CreateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body")
		return
	}

	id, err := h.relay.CreateToken(r.Context(), input.Token)
	if err != nil {
		response.InternalError(w, r, "failed to register token")
		return
	}

	response.JSON(w, r, http.StatusOK, models.CreateTokenResponse{ID: id})
}

// DeleteToken handles DELETE /tokens/{tokenId} - remove a registration.
// Deleting an unknown ID succeeds.
func (h *TokenHandler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	tokenID := chi.URLParam(r, "tokenId")
	if tokenID == "" {
		response.BadRequest(w, r, "tokenId is required")
		return
	}

	if err := h.relay.DeleteToken(r.Context(), tokenID); err != nil {
		response.InternalError(w, r, "failed to delete token")
		return
	}

	response.NoContent(w, r)
}
