package report

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/officetrack/officetrack-backend-go/internal/domain/event"
	"github.com/officetrack/officetrack-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events []event.Event
}

func (f *fakeEventRepo) Append(_ context.Context, e event.Event) (int64, error) {
	e.ID = int64(len(f.events) + 1)
	f.events = append(f.events, e)
	return e.ID, nil
}

func (f *fakeEventRepo) LatestFor(_ context.Context, userID int64, n int) ([]event.Event, error) {
	var out []event.Event
	for i := len(f.events) - 1; i >= 0 && len(out) < n; i-- {
		if f.events[i].UserID == userID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Range(_ context.Context, userID int64, start, end time.Time) ([]event.Event, error) {
	var out []event.Event
	for _, e := range f.events {
		if e.UserID == userID && !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) RangeAll(_ context.Context, start, end time.Time) ([]event.Event, error) {
	var out []event.Event
	for _, e := range f.events {
		if !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (f *fakeEventRepo) PresentUsers(_ context.Context) ([]event.PresentUser, error) {
	return nil, nil
}

func (f *fakeEventRepo) OpenSessionsOlderThan(_ context.Context, _ time.Duration) ([]event.OpenSession, error) {
	return nil, nil
}

type fakeReportRepo struct {
	names     map[int64]string
	summaries map[string]report.PeriodSummary
	tallies   []report.DailyStats
	hourly    []report.HourlyBucket
	locations []report.LocationStats
}

func (f *fakeReportRepo) DailyTallies(_ context.Context, start, _ time.Time) (report.DailyStats, error) {
	for _, t := range f.tallies {
		if t.Date == start.Format("2006-01-02") {
			return t, nil
		}
	}
	return report.DailyStats{Date: start.Format("2006-01-02")}, nil
}

func (f *fakeReportRepo) RangeTallies(_ context.Context, _, _ time.Time) ([]report.DailyStats, error) {
	return f.tallies, nil
}

func (f *fakeReportRepo) HourlyTallies(_ context.Context, _, _ time.Time) ([]report.HourlyBucket, error) {
	return f.hourly, nil
}

func (f *fakeReportRepo) WeekdayTallies(_ context.Context, _, _ time.Time) ([]report.WeekdayStats, error) {
	return nil, nil
}

func (f *fakeReportRepo) LocationTallies(_ context.Context, _, _ time.Time) ([]report.LocationStats, error) {
	return f.locations, nil
}

func (f *fakeReportRepo) LateArrivals(_ context.Context, _, _ time.Time, _ int) ([]report.LateArrival, error) {
	return nil, nil
}

func (f *fakeReportRepo) PeriodSummary(_ context.Context, start, _ time.Time) (report.PeriodSummary, error) {
	return f.summaries[start.Format("2006-01-02")], nil
}

func (f *fakeReportRepo) UserActivity(_ context.Context, userID int64) (report.ActivitySummary, error) {
	if _, ok := f.names[userID]; !ok {
		return report.ActivitySummary{}, report.ErrUserNotFound
	}
	return report.ActivitySummary{UserID: userID, FullName: f.names[userID]}, nil
}

func (f *fakeReportRepo) SystemHealth(_ context.Context) (report.SystemHealth, error) {
	return report.SystemHealth{}, nil
}

func (f *fakeReportRepo) UserNames(_ context.Context, userIDs []int64) (map[int64]string, error) {
	out := map[int64]string{}
	for _, id := range userIDs {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func workday(events *fakeEventRepo, userID int64, day string, inHour, outHour int) {
	d, _ := time.Parse("2006-01-02", day)
	events.events = append(events.events,
		event.Event{UserID: userID, Action: event.ActionIn, Timestamp: d.Add(time.Duration(inHour) * time.Hour)},
		event.Event{UserID: userID, Action: event.ActionOut, Timestamp: d.Add(time.Duration(outHour) * time.Hour)},
	)
}

func TestReportService_PivotReport(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	workday(eventRepo, 1, "2024-03-04", 9, 17)
	workday(eventRepo, 1, "2024-03-05", 9, 18)
	workday(eventRepo, 2, "2024-03-05", 10, 16)

	reportRepo := &fakeReportRepo{names: map[int64]string{1: "Alice", 2: "Bob"}}
	svc := NewReportService(reportRepo, eventRepo, nil)

	pivot, err := svc.PivotReport(context.Background(), report.RangeRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-06",
	})

	require.NoError(t, err)
	// Every calendar day in the range appears, including the empty one
	assert.Equal(t, []string{"2024-03-04", "2024-03-05", "2024-03-06"}, pivot.Dates)
	require.Len(t, pivot.Rows, 2)

	// Rows sorted by name
	alice, bob := pivot.Rows[0], pivot.Rows[1]
	assert.Equal(t, "Alice", alice.FullName)
	assert.Equal(t, []float64{8, 9, 0}, alice.Hours)
	assert.Equal(t, 17.0, alice.TotalHours)

	assert.Equal(t, "Bob", bob.FullName)
	assert.Equal(t, []float64{0, 6, 0}, bob.Hours)
	assert.Equal(t, 6.0, bob.TotalHours)
}

func TestReportService_PivotReport_EmptyRange(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{names: map[int64]string{}}, &fakeEventRepo{}, nil)

	pivot, err := svc.PivotReport(context.Background(), report.RangeRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-04",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-04"}, pivot.Dates)
	assert.Empty(t, pivot.Rows)
}

func TestReportService_TopWorkers(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	workday(eventRepo, 1, yesterday, 9, 17) // 8h
	workday(eventRepo, 2, yesterday, 9, 13) // 4h

	reportRepo := &fakeReportRepo{names: map[int64]string{1: "Alice", 2: "Bob"}}
	svc := NewReportService(reportRepo, eventRepo, nil)

	workers, err := svc.TopWorkers(context.Background(), report.TopWorkersRequest{Days: 7, Limit: 10})

	require.NoError(t, err)
	require.Len(t, workers, 2)
	assert.Equal(t, int64(1), workers[0].UserID)
	assert.Equal(t, 8.0, workers[0].TotalHours)
	assert.Equal(t, 1, workers[0].WorkDays)
	assert.Equal(t, int64(2), workers[1].UserID)
}

func TestReportService_TopWorkers_LimitAndTies(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	workday(eventRepo, 3, yesterday, 9, 17)
	workday(eventRepo, 1, yesterday, 9, 17)
	workday(eventRepo, 2, yesterday, 9, 17)

	reportRepo := &fakeReportRepo{names: map[int64]string{1: "A", 2: "B", 3: "C"}}
	svc := NewReportService(reportRepo, eventRepo, nil)

	workers, err := svc.TopWorkers(context.Background(), report.TopWorkersRequest{Days: 7, Limit: 2})

	require.NoError(t, err)
	// Equal hours tie-break toward the lower user id; limit applies after sort
	require.Len(t, workers, 2)
	assert.Equal(t, int64(1), workers[0].UserID)
	assert.Equal(t, int64(2), workers[1].UserID)
}

func TestReportService_OvertimeReport(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	workday(eventRepo, 1, "2024-03-04", 9, 19) // 10h: 2h over
	workday(eventRepo, 2, "2024-03-04", 9, 16) // 7h: no overtime

	reportRepo := &fakeReportRepo{names: map[int64]string{1: "Alice", 2: "Bob"}}
	svc := NewReportService(reportRepo, eventRepo, nil)

	entries, err := svc.OvertimeReport(context.Background(), report.OvertimeRequest{
		RangeRequest:        report.RangeRequest{StartDate: "2024-03-04", EndDate: "2024-03-04"},
		StandardHoursPerDay: 8,
	})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].UserID)
	assert.Equal(t, 10.0, entries[0].WorkedHours)
	assert.Equal(t, 2.0, entries[0].OvertimeHours)
}

func TestReportService_WeeklyStats_ZeroFillsMissingDays(t *testing.T) {
	reportRepo := &fakeReportRepo{
		tallies: []report.DailyStats{
			{Date: "2024-03-05", Checkins: 3, Checkouts: 3, UniqueUsers: 3},
		},
	}
	svc := NewReportService(reportRepo, &fakeEventRepo{}, nil)

	stats, err := svc.WeeklyStats(context.Background(), report.RangeRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-06",
	})

	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, report.DailyStats{Date: "2024-03-04"}, stats[0])
	assert.Equal(t, 3, stats[1].Checkins)
	assert.Equal(t, report.DailyStats{Date: "2024-03-06"}, stats[2])
}

func TestReportService_HourlyDistribution_AllHoursPresent(t *testing.T) {
	reportRepo := &fakeReportRepo{
		hourly: []report.HourlyBucket{{Hour: 9, Checkins: 5}},
	}
	svc := NewReportService(reportRepo, &fakeEventRepo{}, nil)

	buckets, err := svc.HourlyDistribution(context.Background(), report.DateRequest{Date: "2024-03-04"})

	require.NoError(t, err)
	require.Len(t, buckets, 24)
	assert.Equal(t, 5, buckets[9].Checkins)
	assert.Zero(t, buckets[10].Checkins)
}

func TestReportService_LocationStats_BothTagsPresent(t *testing.T) {
	reportRepo := &fakeReportRepo{
		locations: []report.LocationStats{
			{Location: "office", Checkins: 12, Checkouts: 11, UniqueUsers: 6},
		},
	}
	svc := NewReportService(reportRepo, &fakeEventRepo{}, nil)

	stats, err := svc.LocationStats(context.Background(), report.RangeRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-08",
	})

	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "office", stats[0].Location)
	assert.Equal(t, 12, stats[0].Checkins)
	// Remote had no events and still gets a zero row
	assert.Equal(t, report.LocationStats{Location: "remote"}, stats[1])
}

func TestReportService_PeriodComparison(t *testing.T) {
	reportRepo := &fakeReportRepo{
		summaries: map[string]report.PeriodSummary{
			"2024-02-01": {UniqueUsers: 5, Checkins: 50, Checkouts: 48, WorkDays: 20},
			"2024-03-01": {UniqueUsers: 7, Checkins: 60, Checkouts: 59, WorkDays: 21},
		},
	}
	svc := NewReportService(reportRepo, &fakeEventRepo{}, nil)

	cmp, err := svc.PeriodComparison(context.Background(), report.ComparisonRequest{
		Period1: report.RangeRequest{StartDate: "2024-02-01", EndDate: "2024-02-29"},
		Period2: report.RangeRequest{StartDate: "2024-03-01", EndDate: "2024-03-31"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, cmp.Delta.UniqueUsers)
	assert.Equal(t, 10, cmp.Delta.Checkins)
	assert.Equal(t, 11, cmp.Delta.Checkouts)
	assert.Equal(t, 1, cmp.Delta.WorkDays)
}

func TestReportService_PeriodComparison_SamePeriodZeroDelta(t *testing.T) {
	reportRepo := &fakeReportRepo{
		summaries: map[string]report.PeriodSummary{
			"2024-03-01": {UniqueUsers: 7, Checkins: 60, Checkouts: 59, WorkDays: 21},
		},
	}
	svc := NewReportService(reportRepo, &fakeEventRepo{}, nil)

	period := report.RangeRequest{StartDate: "2024-03-01", EndDate: "2024-03-31"}
	cmp, err := svc.PeriodComparison(context.Background(), report.ComparisonRequest{
		Period1: period,
		Period2: period,
	})

	require.NoError(t, err)
	assert.Equal(t, report.PeriodSummary{}, cmp.Delta)
}

func TestReportService_UserActivity_UnknownUser(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{names: map[int64]string{}}, &fakeEventRepo{}, nil)

	_, err := svc.UserActivity(context.Background(), 99)

	assert.ErrorIs(t, err, report.ErrUserNotFound)
}
