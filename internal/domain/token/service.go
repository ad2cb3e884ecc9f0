package token

import "context"

// Service issues and consumes scan tokens.
type Service interface {
	// Create mints a fresh token.
	Create(ctx context.Context) (Token, error)

	// IssueOrGetActive returns the current active token, minting one if none exists.
	IssueOrGetActive(ctx context.Context) (Token, error)

	// Consume marks the token used. Returns true iff this call flipped the
	// flag; false for unknown, already-used, and expired tokens alike.
	Consume(ctx context.Context, value string) (bool, error)

	// Inspect fetches a token by value regardless of its state, reading
	// through the cache. It is how a caller distinguishes a lost consume race
	// (token exists, already spent) from an unknown value, which Consume
	// deliberately conflates. Returns ErrTokenNotFound for unknown values.
	Inspect(ctx context.Context, value string) (Token, error)
}
