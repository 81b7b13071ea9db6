package token

import (
	"context"

	"github.com/google/uuid"
)

// Store is the durable source of truth for token state. The postgres
// implementation backs the service; the in-memory one backs tests.
type Store interface {
	// FindByCode returns the token for a normalized code, or ErrNotFound.
	FindByCode(ctx context.Context, code string) (Token, error)
	// FindByID returns the token by primary key, or ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (Token, error)
	// CodeExists reports whether a code is already allocated.
	CodeExists(ctx context.Context, code string) (bool, error)
	// List returns all tokens, newest first.
	List(ctx context.Context) ([]Token, error)
	// Create persists a new token, failing with ErrDuplicateCode on a
	// code collision.
	Create(ctx context.Context, tok Token) (Token, error)
	// Update applies operator edits to the named columns.
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (Token, error)
	// Delete removes the token. Submissions keep their rows; the
	// token reference on them becomes null.
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementUsage adds exactly one use as a single conditional
	// write: it fails with ErrLimitReached instead of ever pushing
	// used_count past max_uses, even under concurrent redemptions.
	IncrementUsage(ctx context.Context, id uuid.UUID) (Token, error)
	// ResetUsage sets used_count back to zero.
	ResetUsage(ctx context.Context, id uuid.UUID) (Token, error)
}
