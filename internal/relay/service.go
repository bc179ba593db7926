// Package relay composes the token registry, admin gate and dispatcher
// behind the operations consumed by the HTTP layer.
package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bouzuya/pushrelay/internal/admin"
	"github.com/bouzuya/pushrelay/internal/notification"
	"github.com/bouzuya/pushrelay/internal/token"
)

// ErrForbidden is returned when the presented admin secret is wrong.
var ErrForbidden = errors.New("forbidden")

// TokenSummary is the admin-facing view of a registration. The raw push
// token value is write-only and never appears here.
type TokenSummary struct {
	ID        string
	CreatedAt int64
}

// ServiceConfig holds configuration for the relay service.
type ServiceConfig struct {
	Tokens     *token.Service
	Gate       *admin.Gate
	Dispatcher *notification.Dispatcher
	Logger     zerolog.Logger
}

// Service provides the externally consumed relay operations.
type Service struct {
	tokens     *token.Service
	gate       *admin.Gate
	dispatcher *notification.Dispatcher
	logger     zerolog.Logger
}

// NewService creates a new relay service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		tokens:     cfg.Tokens,
		gate:       cfg.Gate,
		dispatcher: cfg.Dispatcher,
		logger:     cfg.Logger,
	}
}

// CreateToken registers a push token and returns its registration ID.
func (s *Service) CreateToken(ctx context.Context, pushToken string) (string, error) {
	id, err := s.tokens.Create(ctx, pushToken)
	if err != nil {
		return "", err
	}
	s.logger.Info().
		Str("token_id", id).
		Msg("token registered")
	return id, nil
}

// DeleteToken removes a registration. Idempotent.
func (s *Service) DeleteToken(ctx context.Context, id string) error {
	if err := s.tokens.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().
		Str("token_id", id).
		Msg("token deleted")
	return nil
}

// ListTokens returns all registrations for an authorized admin caller.
func (s *Service) ListTokens(ctx context.Context, secret string) ([]TokenSummary, error) {
	if !s.gate.Authorize(secret) {
		return nil, ErrForbidden
	}

	items, err := s.tokens.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}

	summaries := make([]TokenSummary, 0, len(items))
	for _, t := range items {
		summaries = append(summaries, TokenSummary{ID: t.ID, CreatedAt: t.CreatedAt})
	}
	return summaries, nil
}

// CreateNotification fans a notification out to the given registrations for
// an authorized admin caller.
func (s *Service) CreateNotification(ctx context.Context, secret string, targetIDs []string, message, url string) error {
	if !s.gate.Authorize(secret) {
		return ErrForbidden
	}

	_, err := s.dispatcher.Dispatch(ctx, targetIDs, message, url)
	return err
}

// CreateTestNotification sends the self-test notification to one
// registration. No admin secret is required: the operation can only target
// the caller-supplied registration ID, never other users' tokens.
func (s *Service) CreateTestNotification(ctx context.Context, tokenID string) error {
	_, err := s.dispatcher.DispatchTest(ctx, tokenID)
	return err
}
