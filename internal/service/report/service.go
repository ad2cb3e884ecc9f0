package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/officetrack/officetrack-backend-go/internal/domain/event"
	"github.com/officetrack/officetrack-backend-go/internal/domain/report"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/cache"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/interval"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/validator"
)

type reportService struct {
	reportRepo report.Repository
	eventRepo  event.Repository
	cache      *cache.Cache
}

func NewReportService(reportRepo report.Repository, eventRepo event.Repository, c *cache.Cache) report.Service {
	return &reportService{
		reportRepo: reportRepo,
		eventRepo:  eventRepo,
		cache:      c,
	}
}

// DailyStats implements report.Service.
func (s *reportService) DailyStats(ctx context.Context, req report.DateRequest) (report.DailyStats, error) {
	start, end := validator.DayBounds(req.Date)
	return s.reportRepo.DailyTallies(ctx, start, end)
}

// WeeklyStats implements report.Service. Days without events still get a
// zero row so the series covers the whole range.
func (s *reportService) WeeklyStats(ctx context.Context, req report.RangeRequest) ([]report.DailyStats, error) {
	start, end := req.Bounds()

	tallies, err := s.reportRepo.RangeTallies(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]report.DailyStats, len(tallies))
	for _, t := range tallies {
		byDate[t.Date] = t
	}

	var stats []report.DailyStats
	for _, date := range dateAxis(start, end) {
		if t, ok := byDate[date]; ok {
			stats = append(stats, t)
		} else {
			stats = append(stats, report.DailyStats{Date: date})
		}
	}

	return stats, nil
}

// HourlyDistribution implements report.Service. All 24 hours are present in
// the result, zero-filled.
func (s *reportService) HourlyDistribution(ctx context.Context, req report.DateRequest) ([]report.HourlyBucket, error) {
	start, end := validator.DayBounds(req.Date)

	tallies, err := s.reportRepo.HourlyTallies(ctx, start, end)
	if err != nil {
		return nil, err
	}

	buckets := make([]report.HourlyBucket, 24)
	for hour := range buckets {
		buckets[hour].Hour = hour
	}
	for _, t := range tallies {
		if t.Hour >= 0 && t.Hour < 24 {
			buckets[t.Hour].Checkins = t.Checkins
			buckets[t.Hour].Checkouts = t.Checkouts
		}
	}

	return buckets, nil
}

// TopWorkers implements report.Service. Hours come from paired intervals
// over a trailing window ending now; ties break toward the lower user id.
func (s *reportService) TopWorkers(ctx context.Context, req report.TopWorkersRequest) ([]report.TopWorker, error) {
	key := cache.ReportKey("top_workers", fmt.Sprint(req.Days), fmt.Sprint(req.Limit))
	var cached []report.TopWorker
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -req.Days)

	events, err := s.eventRepo.RangeAll(ctx, start, end)
	if err != nil {
		return nil, err
	}

	groups := interval.GroupByUser(events)
	names, err := s.resolveNames(ctx, groups)
	if err != nil {
		return nil, err
	}

	var workers []report.TopWorker
	for userID, userEvents := range groups {
		intervals := interval.FromEvents(userID, userEvents)
		seconds := interval.CompletedSeconds(intervals)
		if seconds == 0 {
			continue
		}
		workers = append(workers, report.TopWorker{
			UserID:     userID,
			FullName:   names[userID],
			TotalHours: round2(float64(seconds) / 3600.0),
			WorkDays:   len(interval.HoursByDay(intervals)),
		})
	}

	sort.Slice(workers, func(i, j int) bool {
		if workers[i].TotalHours != workers[j].TotalHours {
			return workers[i].TotalHours > workers[j].TotalHours
		}
		return workers[i].UserID < workers[j].UserID
	})
	if len(workers) > req.Limit {
		workers = workers[:req.Limit]
	}

	s.cache.SetJSON(ctx, key, workers, cache.ReportTTL)
	return workers, nil
}

// PivotReport implements report.Service. The matrix covers every calendar
// day in the range; rows are users with at least one event in the window.
func (s *reportService) PivotReport(ctx context.Context, req report.RangeRequest) (report.PivotReport, error) {
	key := cache.ReportKey("pivot", req.StartDate, req.EndDate)
	var cached report.PivotReport
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	start, end := req.Bounds()

	events, err := s.eventRepo.RangeAll(ctx, start, end)
	if err != nil {
		return report.PivotReport{}, err
	}

	groups := interval.GroupByUser(events)
	names, err := s.resolveNames(ctx, groups)
	if err != nil {
		return report.PivotReport{}, err
	}

	dates := dateAxis(start, end)
	pivot := report.PivotReport{Dates: dates}

	for userID, userEvents := range groups {
		byDay := interval.HoursByDay(interval.FromEvents(userID, userEvents))

		row := report.PivotRow{
			UserID:   userID,
			FullName: names[userID],
			Hours:    make([]float64, len(dates)),
		}
		for i, date := range dates {
			row.Hours[i] = round2(byDay[date])
			row.TotalHours += row.Hours[i]
		}
		row.TotalHours = round2(row.TotalHours)
		pivot.Rows = append(pivot.Rows, row)
	}

	sort.Slice(pivot.Rows, func(i, j int) bool {
		if pivot.Rows[i].FullName != pivot.Rows[j].FullName {
			return pivot.Rows[i].FullName < pivot.Rows[j].FullName
		}
		return pivot.Rows[i].UserID < pivot.Rows[j].UserID
	})

	s.cache.SetJSON(ctx, key, pivot, cache.ReportTTL)
	return pivot, nil
}

// OvertimeReport implements report.Service. A user-day appears when its
// paired hours exceed the standard; the overtime is the excess only.
func (s *reportService) OvertimeReport(ctx context.Context, req report.OvertimeRequest) ([]report.OvertimeEntry, error) {
	start, end := req.Bounds()

	events, err := s.eventRepo.RangeAll(ctx, start, end)
	if err != nil {
		return nil, err
	}

	groups := interval.GroupByUser(events)
	names, err := s.resolveNames(ctx, groups)
	if err != nil {
		return nil, err
	}

	var entries []report.OvertimeEntry
	for userID, userEvents := range groups {
		byDay := interval.HoursByDay(interval.FromEvents(userID, userEvents))
		for date, hours := range byDay {
			if hours <= req.StandardHoursPerDay {
				continue
			}
			entries = append(entries, report.OvertimeEntry{
				UserID:        userID,
				FullName:      names[userID],
				Date:          date,
				WorkedHours:   round2(hours),
				OvertimeHours: round2(hours - req.StandardHoursPerDay),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].UserID < entries[j].UserID
	})

	return entries, nil
}

// LateArrivalsReport implements report.Service.
func (s *reportService) LateArrivalsReport(ctx context.Context, req report.LateArrivalsRequest) ([]report.LateArrival, error) {
	start, end := req.Bounds()
	return s.reportRepo.LateArrivals(ctx, start, end, req.ThresholdHour)
}

// WeeklyDistribution implements report.Service.
func (s *reportService) WeeklyDistribution(ctx context.Context, req report.RangeRequest) ([]report.WeekdayStats, error) {
	start, end := req.Bounds()
	return s.reportRepo.WeekdayTallies(ctx, start, end)
}

// LocationStats implements report.Service. Both location tags are always
// present in the result, zero-filled.
func (s *reportService) LocationStats(ctx context.Context, req report.RangeRequest) ([]report.LocationStats, error) {
	start, end := req.Bounds()

	tallies, err := s.reportRepo.LocationTallies(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stats := []report.LocationStats{
		{Location: string(event.LocationOffice)},
		{Location: string(event.LocationRemote)},
	}
	for _, t := range tallies {
		for i := range stats {
			if stats[i].Location == t.Location {
				stats[i] = t
			}
		}
	}

	return stats, nil
}

// PeriodComparison implements report.Service.
func (s *reportService) PeriodComparison(ctx context.Context, req report.ComparisonRequest) (report.PeriodComparison, error) {
	start1, end1 := req.Period1.Bounds()
	p1, err := s.reportRepo.PeriodSummary(ctx, start1, end1)
	if err != nil {
		return report.PeriodComparison{}, err
	}

	start2, end2 := req.Period2.Bounds()
	p2, err := s.reportRepo.PeriodSummary(ctx, start2, end2)
	if err != nil {
		return report.PeriodComparison{}, err
	}

	return report.PeriodComparison{
		Period1: p1,
		Period2: p2,
		Delta: report.PeriodSummary{
			UniqueUsers: p2.UniqueUsers - p1.UniqueUsers,
			Checkins:    p2.Checkins - p1.Checkins,
			Checkouts:   p2.Checkouts - p1.Checkouts,
			WorkDays:    p2.WorkDays - p1.WorkDays,
		},
	}, nil
}

// UserActivity implements report.Service.
func (s *reportService) UserActivity(ctx context.Context, userID int64) (report.ActivitySummary, error) {
	return s.reportRepo.UserActivity(ctx, userID)
}

// SystemHealth implements report.Service.
func (s *reportService) SystemHealth(ctx context.Context) (report.SystemHealth, error) {
	return s.reportRepo.SystemHealth(ctx)
}

// resolveNames maps each user id to a display name: the people table first,
// then whatever name the user's events carry.
func (s *reportService) resolveNames(ctx context.Context, groups map[int64][]event.Event) (map[int64]string, error) {
	ids := make([]int64, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}

	names, err := s.reportRepo.UserNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	for id, userEvents := range groups {
		if names[id] != "" {
			continue
		}
		for i := len(userEvents) - 1; i >= 0; i-- {
			if userEvents[i].FullName != nil && *userEvents[i].FullName != "" {
				names[id] = *userEvents[i].FullName
				break
			}
		}
	}

	return names, nil
}

// dateAxis lists every calendar date from start to end inclusive.
func dateAxis(start, end time.Time) []string {
	var dates []string
	for d := start.Truncate(24 * time.Hour); !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
