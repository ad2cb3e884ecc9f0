package event

import (
	"context"
	"time"
)

// Repository is the append-only event store. Events are never updated or
// deleted; "latest event for a user" always means highest id.
type Repository interface {
	// Append inserts a new event and returns its id.
	Append(ctx context.Context, e Event) (int64, error)

	// LatestFor returns up to n most recent events for a user, ordered by id descending.
	LatestFor(ctx context.Context, userID int64, n int) ([]Event, error)

	// Range returns a user's events with start <= ts <= end, ordered by timestamp ascending.
	Range(ctx context.Context, userID int64, start, end time.Time) ([]Event, error)

	// RangeAll returns every user's events in the window, ordered by user id
	// then timestamp. One query feeds multi-user reports without re-scanning
	// per user or per day.
	RangeAll(ctx context.Context, start, end time.Time) ([]Event, error)

	// PresentUsers returns users whose latest event is a check-in.
	PresentUsers(ctx context.Context) ([]PresentUser, error)

	// OpenSessionsOlderThan returns open check-ins older than the threshold.
	OpenSessionsOlderThan(ctx context.Context, threshold time.Duration) ([]OpenSession, error)
}
