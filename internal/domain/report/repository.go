package report

import (
	"context"
	"time"
)

// Repository holds the grouped tally queries that read raw events directly,
// without interval pairing. Interval-based reports go through the event
// store and the interval engine instead.
type Repository interface {
	// DailyTallies counts in/out events and distinct users for one day.
	DailyTallies(ctx context.Context, start, end time.Time) (DailyStats, error)

	// RangeTallies is the per-day version of DailyTallies over a window,
	// computed in one grouped query.
	RangeTallies(ctx context.Context, start, end time.Time) ([]DailyStats, error)

	// HourlyTallies buckets one day's events by hour of day.
	HourlyTallies(ctx context.Context, start, end time.Time) ([]HourlyBucket, error)

	// WeekdayTallies buckets raw events by day of week (0=Sunday).
	WeekdayTallies(ctx context.Context, start, end time.Time) ([]WeekdayStats, error)

	// LocationTallies buckets raw events by the office/remote tag.
	LocationTallies(ctx context.Context, start, end time.Time) ([]LocationStats, error)

	// LateArrivals groups threshold-or-later check-ins by user, day, and
	// arrival time with repeat counts.
	LateArrivals(ctx context.Context, start, end time.Time, thresholdHour int) ([]LateArrival, error)

	// PeriodSummary computes the comparison metric set for one range.
	PeriodSummary(ctx context.Context, start, end time.Time) (PeriodSummary, error)

	// UserActivity is the lifetime tally for one user.
	UserActivity(ctx context.Context, userID int64) (ActivitySummary, error)

	// SystemHealth counts people, events, and active tokens.
	SystemHealth(ctx context.Context) (SystemHealth, error)

	// UserNames resolves display names for the given external user ids.
	UserNames(ctx context.Context, userIDs []int64) (map[int64]string, error)
}
