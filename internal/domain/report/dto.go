package report

import (
	"time"

	"github.com/officetrack/officetrack-backend-go/internal/pkg/validator"
)

// ========================================
// REQUESTS
// ========================================

type DateRequest struct {
	Date string `json:"date"`
}

func (r *DateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Bounds expands the inclusive calendar-date range to UTC instants
// [start 00:00:00, end 23:59:59].
func (r *RangeRequest) Bounds() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return start, end.Add(24*time.Hour - time.Second)
}

type TopWorkersRequest struct {
	Days  int `json:"days"`
	Limit int `json:"limit"`
}

func (r *TopWorkersRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Days < 1 || r.Days > 366 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be between 1 and 366",
		})
	}
	if r.Limit < 1 || r.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OvertimeRequest struct {
	RangeRequest
	StandardHoursPerDay float64 `json:"standard_hours_per_day"`
}

func (r *OvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.RangeRequest.Validate(); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}
	if r.StandardHoursPerDay <= 0 || r.StandardHoursPerDay > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_hours_per_day",
			Message: "standard_hours_per_day must be in (0, 24]",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LateArrivalsRequest struct {
	RangeRequest
	ThresholdHour int `json:"threshold_hour"`
}

func (r *LateArrivalsRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.RangeRequest.Validate(); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}
	if r.ThresholdHour < 0 || r.ThresholdHour > 23 {
		errs = append(errs, validator.ValidationError{
			Field:   "threshold_hour",
			Message: "threshold_hour must be between 0 and 23",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComparisonRequest struct {
	Period1 RangeRequest `json:"period1"`
	Period2 RangeRequest `json:"period2"`
}

func (r *ComparisonRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, period := range map[string]*RangeRequest{"period1": &r.Period1, "period2": &r.Period2} {
		if err := period.Validate(); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				for _, e := range ve {
					errs = append(errs, validator.ValidationError{
						Field:   field + "." + e.Field,
						Message: e.Message,
					})
				}
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESULTS
// ========================================

// DailyStats is a plain event tally for one calendar day; no interval pairing.
type DailyStats struct {
	Date        string `json:"date"`
	Checkins    int    `json:"checkins"`
	Checkouts   int    `json:"checkouts"`
	UniqueUsers int    `json:"unique_users"`
}

type HourlyBucket struct {
	Hour      int `json:"hour"`
	Checkins  int `json:"checkins"`
	Checkouts int `json:"checkouts"`
}

type TopWorker struct {
	UserID     int64   `json:"user_id"`
	FullName   string  `json:"full_name"`
	TotalHours float64 `json:"total_hours"`
	WorkDays   int     `json:"work_days"`
}

// PivotReport is the employee x date hours matrix. Dates covers every
// calendar day in the range; each row's Hours slice is aligned with Dates.
type PivotReport struct {
	Dates []string   `json:"dates"`
	Rows  []PivotRow `json:"rows"`
}

type PivotRow struct {
	UserID     int64     `json:"user_id"`
	FullName   string    `json:"full_name"`
	Hours      []float64 `json:"hours"`
	TotalHours float64   `json:"total_hours"`
}

type OvertimeEntry struct {
	UserID        int64   `json:"user_id"`
	FullName      string  `json:"full_name"`
	Date          string  `json:"date"`
	WorkedHours   float64 `json:"worked_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type LateArrival struct {
	UserID      int64  `json:"user_id"`
	FullName    string `json:"full_name"`
	Date        string `json:"date"`
	ArrivalTime string `json:"arrival_time"`
	Count       int    `json:"count"`
}

// LocationStats tallies raw events for one office/remote tag.
type LocationStats struct {
	Location    string `json:"location"`
	Checkins    int    `json:"checkins"`
	Checkouts   int    `json:"checkouts"`
	UniqueUsers int    `json:"unique_users"`
}

// WeekdayStats tallies raw events by day of week, 0=Sunday through 6=Saturday.
type WeekdayStats struct {
	Weekday     int `json:"weekday"`
	Checkins    int `json:"checkins"`
	Checkouts   int `json:"checkouts"`
	UniqueUsers int `json:"unique_users"`
}

type PeriodSummary struct {
	UniqueUsers int `json:"unique_users"`
	Checkins    int `json:"checkins"`
	Checkouts   int `json:"checkouts"`
	WorkDays    int `json:"work_days"`
}

// PeriodComparison reports Period2 minus Period1 per metric.
type PeriodComparison struct {
	Period1 PeriodSummary `json:"period1"`
	Period2 PeriodSummary `json:"period2"`
	Delta   PeriodSummary `json:"delta"`
}

// ActivitySummary is a per-user lifetime tally.
type ActivitySummary struct {
	UserID    int64   `json:"user_id"`
	FullName  string  `json:"full_name"`
	Checkins  int     `json:"checkins"`
	Checkouts int     `json:"checkouts"`
	WorkDays  int     `json:"work_days"`
	FirstSeen *string `json:"first_seen,omitempty"`
	LastSeen  *string `json:"last_seen,omitempty"`
}

// SystemHealth counts the durable collections for an operational snapshot.
type SystemHealth struct {
	TotalPeople    int    `json:"total_people"`
	TotalEvents    int    `json:"total_events"`
	RecentEvents24 int    `json:"recent_events_24h"`
	ActiveTokens   int    `json:"active_tokens"`
	GeneratedAt    string `json:"generated_at"`
}
