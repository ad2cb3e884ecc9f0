package token

import "time"

// TokenResponse is the wire shape of a token. The used flag is internal
// bookkeeping and never leaves the service.
type TokenResponse struct {
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func ToTokenResponse(t Token) TokenResponse {
	return TokenResponse{
		Value:     t.Value,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
