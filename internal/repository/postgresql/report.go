package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/officetrack/officetrack-backend-go/internal/domain/report"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepository{db: db}
}

// DailyTallies implements report.Repository.
func (r *reportRepository) DailyTallies(ctx context.Context, start, end time.Time) (report.DailyStats, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*) FILTER (WHERE action = 'in'),
		       COUNT(*) FILTER (WHERE action = 'out'),
		       COUNT(DISTINCT user_id)
		FROM events
		WHERE ts BETWEEN $1 AND $2
	`

	stats := report.DailyStats{Date: start.Format("2006-01-02")}
	err := q.QueryRow(ctx, query, start, end).Scan(&stats.Checkins, &stats.Checkouts, &stats.UniqueUsers)
	if err != nil {
		return report.DailyStats{}, fmt.Errorf("failed to get daily tallies: %w", err)
	}

	return stats, nil
}

// RangeTallies implements report.Repository.
func (r *reportRepository) RangeTallies(ctx context.Context, start, end time.Time) ([]report.DailyStats, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT ts::date,
		       COUNT(*) FILTER (WHERE action = 'in'),
		       COUNT(*) FILTER (WHERE action = 'out'),
		       COUNT(DISTINCT user_id)
		FROM events
		WHERE ts BETWEEN $1 AND $2
		GROUP BY ts::date
		ORDER BY ts::date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get range tallies: %w", err)
	}
	defer rows.Close()

	var stats []report.DailyStats
	for rows.Next() {
		var day time.Time
		var s report.DailyStats
		if err := rows.Scan(&day, &s.Checkins, &s.Checkouts, &s.UniqueUsers); err != nil {
			return nil, fmt.Errorf("failed to scan range tallies: %w", err)
		}
		s.Date = day.Format("2006-01-02")
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate range tallies: %w", err)
	}

	return stats, nil
}

// HourlyTallies implements report.Repository.
func (r *reportRepository) HourlyTallies(ctx context.Context, start, end time.Time) ([]report.HourlyBucket, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT EXTRACT(HOUR FROM ts)::int,
		       COUNT(*) FILTER (WHERE action = 'in'),
		       COUNT(*) FILTER (WHERE action = 'out')
		FROM events
		WHERE ts BETWEEN $1 AND $2
		GROUP BY 1
		ORDER BY 1
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get hourly tallies: %w", err)
	}
	defer rows.Close()

	var buckets []report.HourlyBucket
	for rows.Next() {
		var b report.HourlyBucket
		if err := rows.Scan(&b.Hour, &b.Checkins, &b.Checkouts); err != nil {
			return nil, fmt.Errorf("failed to scan hourly tallies: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hourly tallies: %w", err)
	}

	return buckets, nil
}

// WeekdayTallies implements report.Repository. Weekday follows EXTRACT(DOW):
// 0 is Sunday.
func (r *reportRepository) WeekdayTallies(ctx context.Context, start, end time.Time) ([]report.WeekdayStats, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT EXTRACT(DOW FROM ts)::int,
		       COUNT(*) FILTER (WHERE action = 'in'),
		       COUNT(*) FILTER (WHERE action = 'out'),
		       COUNT(DISTINCT user_id)
		FROM events
		WHERE ts BETWEEN $1 AND $2
		GROUP BY 1
		ORDER BY 1
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekday tallies: %w", err)
	}
	defer rows.Close()

	var stats []report.WeekdayStats
	for rows.Next() {
		var s report.WeekdayStats
		if err := rows.Scan(&s.Weekday, &s.Checkins, &s.Checkouts, &s.UniqueUsers); err != nil {
			return nil, fmt.Errorf("failed to scan weekday tallies: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekday tallies: %w", err)
	}

	return stats, nil
}

// LocationTallies implements report.Repository.
func (r *reportRepository) LocationTallies(ctx context.Context, start, end time.Time) ([]report.LocationStats, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT location,
		       COUNT(*) FILTER (WHERE action = 'in'),
		       COUNT(*) FILTER (WHERE action = 'out'),
		       COUNT(DISTINCT user_id)
		FROM events
		WHERE ts BETWEEN $1 AND $2
		GROUP BY location
		ORDER BY location
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get location tallies: %w", err)
	}
	defer rows.Close()

	var stats []report.LocationStats
	for rows.Next() {
		var s report.LocationStats
		if err := rows.Scan(&s.Location, &s.Checkins, &s.Checkouts, &s.UniqueUsers); err != nil {
			return nil, fmt.Errorf("failed to scan location tallies: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate location tallies: %w", err)
	}

	return stats, nil
}

// LateArrivals implements report.Repository. A late arrival is a day whose
// first check-in lands at or after the threshold hour; Count is the user's
// total late days over the window.
func (r *reportRepository) LateArrivals(ctx context.Context, start, end time.Time, thresholdHour int) ([]report.LateArrival, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		WITH first_in AS (
			SELECT user_id, ts::date AS day, MIN(ts) AS arrival
			FROM events
			WHERE action = 'in'
			  AND ts BETWEEN $1 AND $2
			GROUP BY user_id, ts::date
		)
		SELECT f.user_id,
		       COALESCE(p.full_name, ''),
		       f.day,
		       f.arrival,
		       COUNT(*) OVER (PARTITION BY f.user_id)::int
		FROM first_in f
		LEFT JOIN people p ON p.external_user_id = f.user_id
		WHERE EXTRACT(HOUR FROM f.arrival) >= $3
		ORDER BY f.day, f.arrival
	`

	rows, err := q.Query(ctx, query, start, end, thresholdHour)
	if err != nil {
		return nil, fmt.Errorf("failed to get late arrivals: %w", err)
	}
	defer rows.Close()

	var arrivals []report.LateArrival
	for rows.Next() {
		var a report.LateArrival
		var day, arrival time.Time
		if err := rows.Scan(&a.UserID, &a.FullName, &day, &arrival, &a.Count); err != nil {
			return nil, fmt.Errorf("failed to scan late arrival: %w", err)
		}
		a.Date = day.Format("2006-01-02")
		a.ArrivalTime = arrival.UTC().Format("15:04")
		arrivals = append(arrivals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate late arrivals: %w", err)
	}

	return arrivals, nil
}

// PeriodSummary implements report.Repository.
func (r *reportRepository) PeriodSummary(ctx context.Context, start, end time.Time) (report.PeriodSummary, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(DISTINCT user_id),
		       COUNT(*) FILTER (WHERE action = 'in'),
		       COUNT(*) FILTER (WHERE action = 'out'),
		       COUNT(DISTINCT ts::date) FILTER (WHERE action = 'in')
		FROM events
		WHERE ts BETWEEN $1 AND $2
	`

	var summary report.PeriodSummary
	err := q.QueryRow(ctx, query, start, end).Scan(
		&summary.UniqueUsers, &summary.Checkins, &summary.Checkouts, &summary.WorkDays,
	)
	if err != nil {
		return report.PeriodSummary{}, fmt.Errorf("failed to get period summary: %w", err)
	}

	return summary, nil
}

// UserActivity implements report.Repository.
func (r *reportRepository) UserActivity(ctx context.Context, userID int64) (report.ActivitySummary, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.full_name,
		       COUNT(e.id) FILTER (WHERE e.action = 'in'),
		       COUNT(e.id) FILTER (WHERE e.action = 'out'),
		       COUNT(DISTINCT e.ts::date) FILTER (WHERE e.action = 'in'),
		       MIN(e.ts),
		       MAX(e.ts)
		FROM people p
		LEFT JOIN events e ON e.user_id = p.external_user_id
		WHERE p.external_user_id = $1
		GROUP BY p.full_name
	`

	summary := report.ActivitySummary{UserID: userID}
	var firstSeen, lastSeen *time.Time
	err := q.QueryRow(ctx, query, userID).Scan(
		&summary.FullName, &summary.Checkins, &summary.Checkouts, &summary.WorkDays,
		&firstSeen, &lastSeen,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.ActivitySummary{}, report.ErrUserNotFound
		}
		return report.ActivitySummary{}, fmt.Errorf("failed to get user activity: %w", err)
	}

	if firstSeen != nil {
		s := firstSeen.UTC().Format(time.RFC3339)
		summary.FirstSeen = &s
	}
	if lastSeen != nil {
		s := lastSeen.UTC().Format(time.RFC3339)
		summary.LastSeen = &s
	}

	return summary, nil
}

// SystemHealth implements report.Repository.
func (r *reportRepository) SystemHealth(ctx context.Context) (report.SystemHealth, error) {
	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT (SELECT COUNT(*) FROM people),
		       (SELECT COUNT(*) FROM events),
		       (SELECT COUNT(*) FROM events WHERE ts > NOW() - INTERVAL '24 hours'),
		       (SELECT COUNT(*) FROM tokens WHERE used = FALSE AND expires_at > NOW())
	`

	var health report.SystemHealth
	err := q.QueryRow(ctx, query).Scan(
		&health.TotalPeople, &health.TotalEvents, &health.RecentEvents24, &health.ActiveTokens,
	)
	if err != nil {
		return report.SystemHealth{}, fmt.Errorf("failed to get system health: %w", err)
	}
	health.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	return health, nil
}

// UserNames implements report.Repository.
func (r *reportRepository) UserNames(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	if len(userIDs) == 0 {
		return map[int64]string{}, nil
	}

	q := GetQuerier(ctx, r.db)
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT external_user_id, full_name
		FROM people
		WHERE external_user_id = ANY($1)
	`

	rows, err := q.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get user names: %w", err)
	}
	defer rows.Close()

	names := make(map[int64]string, len(userIDs))
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan user name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user names: %w", err)
	}

	return names, nil
}
