package report

import "context"

// Service builds every report the system exposes. All methods are pure
// reads, safe to retry unconditionally, and tolerate concurrent writers
// (including open sessions with no check-out yet).
type Service interface {
	DailyStats(ctx context.Context, req DateRequest) (DailyStats, error)
	WeeklyStats(ctx context.Context, req RangeRequest) ([]DailyStats, error)
	HourlyDistribution(ctx context.Context, req DateRequest) ([]HourlyBucket, error)
	TopWorkers(ctx context.Context, req TopWorkersRequest) ([]TopWorker, error)
	PivotReport(ctx context.Context, req RangeRequest) (PivotReport, error)
	OvertimeReport(ctx context.Context, req OvertimeRequest) ([]OvertimeEntry, error)
	LateArrivalsReport(ctx context.Context, req LateArrivalsRequest) ([]LateArrival, error)
	WeeklyDistribution(ctx context.Context, req RangeRequest) ([]WeekdayStats, error)
	LocationStats(ctx context.Context, req RangeRequest) ([]LocationStats, error)
	PeriodComparison(ctx context.Context, req ComparisonRequest) (PeriodComparison, error)
	UserActivity(ctx context.Context, userID int64) (ActivitySummary, error)
	SystemHealth(ctx context.Context) (SystemHealth, error)
}
