package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/officetrack/officetrack-backend-go/internal/domain/token"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/database"
)

type tokenRepository struct {
	db *database.DB
}

func NewTokenRepository(db *database.DB) token.Repository {
	return &tokenRepository{db: db}
}

// Create implements token.Repository.
func (r *tokenRepository) Create(ctx context.Context, t token.Token) error {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO tokens (value, created_at, expires_at, used)
		VALUES ($1, $2, $3, FALSE)
	`

	if _, err := q.Exec(ctx, query, t.Value, t.CreatedAt, t.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

// GetActive implements token.Repository.
func (r *tokenRepository) GetActive(ctx context.Context) (token.Token, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT value, created_at, expires_at, used
		FROM tokens
		WHERE used = FALSE
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var t token.Token
	err := q.QueryRow(ctx, query).Scan(&t.Value, &t.CreatedAt, &t.ExpiresAt, &t.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return token.Token{}, token.ErrNoActiveToken
		}
		return token.Token{}, fmt.Errorf("failed to get active token: %w", err)
	}

	return t, nil
}

// Get implements token.Repository.
func (r *tokenRepository) Get(ctx context.Context, value string) (token.Token, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT value, created_at, expires_at, used
		FROM tokens
		WHERE value = $1
	`

	var t token.Token
	err := q.QueryRow(ctx, query, value).Scan(&t.Value, &t.CreatedAt, &t.ExpiresAt, &t.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return token.Token{}, token.ErrTokenNotFound
		}
		return token.Token{}, fmt.Errorf("failed to get token: %w", err)
	}

	return t, nil
}

// ConsumeIfValid implements token.Repository. The check and the flip are one
// conditional UPDATE; the affected-row count decides the outcome, so two
// concurrent consumers of the same token can never both win.
func (r *tokenRepository) ConsumeIfValid(ctx context.Context, value string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		UPDATE tokens
		SET used = TRUE
		WHERE value = $1
		  AND used = FALSE
		  AND expires_at > NOW()
	`

	tag, err := q.Exec(ctx, query, value)
	if err != nil {
		return false, fmt.Errorf("failed to consume token: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
