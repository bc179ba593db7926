package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// idBytes is the number of random bytes in a registration ID. The ID is the
// hex encoding, so the string ID is twice this length.
const idBytes = 36

// Service provides token registry operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new token service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create registers a push token and returns the generated registration ID.
// The ID is derived from a cryptographically strong random source; a
// collision with an existing ID leaves the existing entry untouched
// (insert-if-absent, the collision being statistically impossible).
func (s *Service) Create(ctx context.Context, pushToken string) (string, error) {
	id, err := newID()
	if err != nil {
		return "", fmt.Errorf("generate registration id: %w", err)
	}

	t := &RegisteredToken{
		ID:        id,
		Token:     pushToken,
		CreatedAt: s.now().Unix(),
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return "", fmt.Errorf("insert token: %w", err)
	}
	return id, nil
}

// Get retrieves a registered token by ID.
func (s *Service) Get(ctx context.Context, id string) (*RegisteredToken, error) {
	return s.repo.Get(ctx, id)
}

// ListAll returns a snapshot of every registered token.
func (s *Service) ListAll(ctx context.Context) ([]*RegisteredToken, error) {
	return s.repo.ListAll(ctx)
}

// Resolve looks up the given registration IDs, silently dropping unknown ones.
func (s *Service) Resolve(ctx context.Context, ids []string) ([]*RegisteredToken, error) {
	return s.repo.Resolve(ctx, ids)
}

// Delete removes a registration. Deleting an unknown ID is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrTokenNotFound) {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// newID returns a fixed-length hex-encoded random identifier.
func newID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
