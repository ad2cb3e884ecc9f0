package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/officetrack/officetrack-backend-go/internal/domain/person"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/database"
)

type personRepository struct {
	db *database.DB
}

func NewPersonRepository(db *database.DB) person.Repository {
	return &personRepository{db: db}
}

// Create implements person.Repository.
func (r *personRepository) Create(ctx context.Context, p person.Person) (int64, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO people (external_user_id, full_name, username)
		VALUES ($1, $2, $3)
		ON CONFLICT (external_user_id) DO UPDATE
			SET full_name = EXCLUDED.full_name,
			    username = EXCLUDED.username
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query, p.ExternalUserID, p.FullName, p.Username).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create person: %w", err)
	}

	return id, nil
}

// GetByExternalID implements person.Repository.
func (r *personRepository) GetByExternalID(ctx context.Context, externalUserID int64) (person.Person, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, external_user_id, full_name, username, created_at
		FROM people
		WHERE external_user_id = $1
	`

	var p person.Person
	err := q.QueryRow(ctx, query, externalUserID).Scan(
		&p.ID, &p.ExternalUserID, &p.FullName, &p.Username, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return person.Person{}, person.ErrPersonNotFound
		}
		return person.Person{}, fmt.Errorf("failed to get person: %w", err)
	}

	return p, nil
}

// UpdateFullName implements person.Repository.
func (r *personRepository) UpdateFullName(ctx context.Context, externalUserID int64, fullName string) error {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		UPDATE people
		SET full_name = $2
		WHERE external_user_id = $1
	`

	tag, err := q.Exec(ctx, query, externalUserID, fullName)
	if err != nil {
		return fmt.Errorf("failed to update person name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return person.ErrPersonNotFound
	}

	return nil
}

// List implements person.Repository.
func (r *personRepository) List(ctx context.Context) ([]person.Person, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, external_user_id, full_name, username, created_at
		FROM people
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []person.Person
	for rows.Next() {
		var p person.Person
		if err := rows.Scan(&p.ID, &p.ExternalUserID, &p.FullName, &p.Username, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, nil
}
