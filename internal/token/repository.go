package token

import "context"

// Repository defines the interface for token storage.
type Repository interface {
	// Insert stores a token record keyed by its ID. If a record with the
	// same ID already exists it is left untouched and the new record is
	// not inserted (insert-if-absent).
	Insert(ctx context.Context, t *RegisteredToken) error

	// Get retrieves a token record by ID.
	Get(ctx context.Context, id string) (*RegisteredToken, error)

	// ListAll returns a snapshot of all current records. Order is unspecified.
	ListAll(ctx context.Context) ([]*RegisteredToken, error)

	// Resolve looks up each ID in order. IDs with no matching record are
	// silently dropped; the result may be shorter than the input.
	Resolve(ctx context.Context, ids []string) ([]*RegisteredToken, error)

	// Delete removes a record if present. Deleting an unknown ID is not
	// an error.
	Delete(ctx context.Context, id string) error
}
