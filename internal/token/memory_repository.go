package token

import (
	"context"
	"sync"
)

// InMemoryRepository is the in-memory implementation of Repository.
// The registry is volatile: it is constructed once at process start and
// its contents do not survive a restart.
type InMemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]*RegisteredToken // keyed by registration ID
}

// NewInMemoryRepository creates a new in-memory token repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		tokens: make(map[string]*RegisteredToken),
	}
}

// Insert stores a token record keyed by its ID (insert-if-absent).
func (r *InMemoryRepository) Insert(_ context.Context, t *RegisteredToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[t.ID]; ok {
		return nil
	}
	r.tokens[t.ID] = copyToken(t)
	return nil
}

// Get retrieves a token record by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*RegisteredToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[id]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return copyToken(t), nil
}

// ListAll returns a snapshot of all current records.
func (r *InMemoryRepository) ListAll(_ context.Context) ([]*RegisteredToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*RegisteredToken, 0, len(r.tokens))
	for _, t := range r.tokens {
		items = append(items, copyToken(t))
	}
	return items, nil
}

// Resolve looks up each ID, silently dropping unknown ones.
func (r *InMemoryRepository) Resolve(_ context.Context, ids []string) ([]*RegisteredToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*RegisteredToken, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.tokens[id]; ok {
			items = append(items, copyToken(t))
		}
	}
	return items, nil
}

// Delete removes a record if present. Idempotent.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, id)
	return nil
}

// copyToken returns a copy so callers never share registry-owned records.
func copyToken(t *RegisteredToken) *RegisteredToken {
	if t == nil {
		return nil
	}
	tokenCopy := *t
	return &tokenCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
