package token

import "context"

type Repository interface {
	// Create persists a new token with used=false.
	Create(ctx context.Context, t Token) error

	// GetActive returns the most recently created unused token.
	// Returns ErrNoActiveToken when none exists.
	GetActive(ctx context.Context) (Token, error)

	// Get retrieves a token by value regardless of its state.
	// Returns ErrTokenNotFound when no row exists.
	Get(ctx context.Context, value string) (Token, error)

	// ConsumeIfValid atomically flips used=false to used=true for an
	// unexpired token. The update must be a single conditional write at the
	// storage engine, decided by affected-row count; two concurrent callers
	// must never both see true. Unknown, already-used, and expired tokens
	// all return false.
	ConsumeIfValid(ctx context.Context, value string) (bool, error)
}
