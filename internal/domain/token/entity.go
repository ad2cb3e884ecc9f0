package token

import "time"

// Lifetime is how long a freshly issued token stays valid.
const Lifetime = 24 * time.Hour

// Token is a single-use credential gating one check-in or check-out action.
// At most one unused token is expected to be active at a time; stale unused
// tokens may linger until expiry.
type Token struct {
	Value     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

// Expired reports whether the token is past its expiry at the given instant.
func (t Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
