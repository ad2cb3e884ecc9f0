package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/officetrack/officetrack-backend-go/internal/domain/event"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.Repository {
	return &eventRepository{db: db}
}

// Append implements event.Repository.
func (r *eventRepository) Append(ctx context.Context, e event.Event) (int64, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO events (user_id, username, full_name, location, action, ts)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		e.UserID, e.Username, e.FullName, e.Location, e.Action, e.Timestamp,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to append event: %w", err)
	}

	return id, nil
}

// LatestFor implements event.Repository.
func (r *eventRepository) LatestFor(ctx context.Context, userID int64, n int) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, username, full_name, location, action, ts
		FROM events
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, userID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Range implements event.Repository.
func (r *eventRepository) Range(ctx context.Context, userID int64, start, end time.Time) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, username, full_name, location, action, ts
		FROM events
		WHERE user_id = $1
		  AND ts BETWEEN $2 AND $3
		ORDER BY ts, id
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get events in range: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// RangeAll implements event.Repository.
func (r *eventRepository) RangeAll(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, username, full_name, location, action, ts
		FROM events
		WHERE ts BETWEEN $1 AND $2
		ORDER BY user_id, ts, id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get events in range: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// PresentUsers implements event.Repository. A user is present when their
// latest event overall is a check-in; latest means highest id, not latest
// timestamp.
func (r *eventRepository) PresentUsers(ctx context.Context) ([]event.PresentUser, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT e.user_id, COALESCE(p.full_name, e.full_name, ''), e.username, e.location, e.ts
		FROM events e
		LEFT JOIN people p ON p.external_user_id = e.user_id
		WHERE e.id IN (
			SELECT MAX(id) FROM events GROUP BY user_id
		)
		  AND e.action = 'in'
		ORDER BY e.ts
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get present users: %w", err)
	}
	defer rows.Close()

	var users []event.PresentUser
	for rows.Next() {
		var u event.PresentUser
		if err := rows.Scan(&u.UserID, &u.FullName, &u.Username, &u.Location, &u.Since); err != nil {
			return nil, fmt.Errorf("failed to scan present user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate present users: %w", err)
	}

	return users, nil
}

// OpenSessionsOlderThan implements event.Repository.
func (r *eventRepository) OpenSessionsOlderThan(ctx context.Context, threshold time.Duration) ([]event.OpenSession, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT e.user_id, COALESCE(p.full_name, e.full_name, ''), e.username, e.location, e.ts
		FROM events e
		LEFT JOIN people p ON p.external_user_id = e.user_id
		WHERE e.id IN (
			SELECT MAX(id) FROM events GROUP BY user_id
		)
		  AND e.action = 'in'
		  AND e.ts < NOW() - $1::interval
		ORDER BY e.ts
	`

	interval := fmt.Sprintf("%d seconds", int64(threshold.Seconds()))

	rows, err := q.Query(ctx, query, interval)
	if err != nil {
		return nil, fmt.Errorf("failed to get open sessions: %w", err)
	}
	defer rows.Close()

	var sessions []event.OpenSession
	for rows.Next() {
		var s event.OpenSession
		if err := rows.Scan(&s.UserID, &s.FullName, &s.Username, &s.Location, &s.CheckinAt); err != nil {
			return nil, fmt.Errorf("failed to scan open session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open sessions: %w", err)
	}

	return sessions, nil
}

func scanEvents(rows pgx.Rows) ([]event.Event, error) {
	var events []event.Event
	for rows.Next() {
		var e event.Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.FullName, &e.Location, &e.Action, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}
