package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/officetrack/officetrack-backend-go/internal/domain/token"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/cache"
)

// activeKey caches the currently displayed token. Generated values are
// base64, so the literal can never collide with a real token key.
var activeKey = cache.TokenKey("active")

type tokenService struct {
	tokenRepo token.Repository
	cache     *cache.Cache

	// Bytes of entropy per token before base64 encoding.
	tokenLength int
}

func NewTokenService(tokenRepo token.Repository, c *cache.Cache, tokenLength int) token.Service {
	return &tokenService{
		tokenRepo:   tokenRepo,
		cache:       c,
		tokenLength: tokenLength,
	}
}

// Create implements token.Service.
func (s *tokenService) Create(ctx context.Context) (token.Token, error) {
	value, err := generateValue(s.tokenLength)
	if err != nil {
		return token.Token{}, fmt.Errorf("failed to generate token value: %w", err)
	}

	now := time.Now().UTC()
	t := token.Token{
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(token.Lifetime),
	}

	if err := s.tokenRepo.Create(ctx, t); err != nil {
		return token.Token{}, err
	}

	// The display loop should pick up the new token immediately.
	s.cache.Delete(ctx, activeKey)

	return t, nil
}

// IssueOrGetActive implements token.Service.
func (s *tokenService) IssueOrGetActive(ctx context.Context) (token.Token, error) {
	var cached token.Token
	if s.cache.GetJSON(ctx, activeKey, &cached) && !cached.Expired(time.Now().UTC()) {
		return cached, nil
	}

	t, err := s.tokenRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, token.ErrNoActiveToken) {
			return s.Create(ctx)
		}
		return token.Token{}, err
	}

	s.cache.SetJSON(ctx, activeKey, t, cache.TokenTTL)
	return t, nil
}

// Consume implements token.Service. The decision is delegated entirely to
// the storage layer's conditional write, never to a cached copy; the cache
// is only invalidated here so Inspect cannot serve a stale unspent token.
func (s *tokenService) Consume(ctx context.Context, value string) (bool, error) {
	consumed, err := s.tokenRepo.ConsumeIfValid(ctx, value)
	if err != nil {
		return false, err
	}

	if consumed {
		s.cache.Delete(ctx, cache.TokenKey(value))
		s.cache.Delete(ctx, activeKey)
	}

	return consumed, nil
}

// Inspect implements token.Service.
func (s *tokenService) Inspect(ctx context.Context, value string) (token.Token, error) {
	key := cache.TokenKey(value)

	var cached token.Token
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	t, err := s.tokenRepo.Get(ctx, value)
	if err != nil {
		return token.Token{}, err
	}

	s.cache.SetJSON(ctx, key, t, cache.TokenTTL)
	return t, nil
}

func generateValue(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
