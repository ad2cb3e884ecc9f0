package person

import "context"

// Service exposes the people registry for directory views and name
// corrections. Registration itself happens on the attendance write path.
type Service interface {
	// List returns everyone known to the system, ordered by full name.
	List(ctx context.Context) ([]Person, error)

	// Get retrieves one person by external user id.
	// Returns ErrPersonNotFound when no row exists.
	Get(ctx context.Context, externalUserID int64) (Person, error)

	// Rename replaces the stored full name.
	// Returns ErrPersonNotFound when no row exists.
	Rename(ctx context.Context, externalUserID int64, fullName string) error
}
