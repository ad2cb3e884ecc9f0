package person

import "context"

type Repository interface {
	// Create inserts or refreshes a person keyed by external user id and
	// returns the row id.
	Create(ctx context.Context, p Person) (int64, error)

	// GetByExternalID retrieves a person by their external user id.
	// Returns ErrPersonNotFound when no row exists.
	GetByExternalID(ctx context.Context, externalUserID int64) (Person, error)

	// UpdateFullName replaces the stored full name for a person.
	UpdateFullName(ctx context.Context, externalUserID int64, fullName string) error

	// List returns all known people ordered by full name.
	List(ctx context.Context) ([]Person, error)
}
