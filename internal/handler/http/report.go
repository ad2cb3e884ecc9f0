package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/officetrack/officetrack-backend-go/internal/domain/report"
	"github.com/officetrack/officetrack-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	DailyStats(w http.ResponseWriter, r *http.Request)
	WeeklyStats(w http.ResponseWriter, r *http.Request)
	HourlyDistribution(w http.ResponseWriter, r *http.Request)
	TopWorkers(w http.ResponseWriter, r *http.Request)
	PivotReport(w http.ResponseWriter, r *http.Request)
	OvertimeReport(w http.ResponseWriter, r *http.Request)
	LateArrivals(w http.ResponseWriter, r *http.Request)
	WeeklyDistribution(w http.ResponseWriter, r *http.Request)
	LocationStats(w http.ResponseWriter, r *http.Request)
	PeriodComparison(w http.ResponseWriter, r *http.Request)
	UserActivity(w http.ResponseWriter, r *http.Request)
	SystemHealth(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service

	// Defaults applied when the query string omits the knob.
	standardHoursPerDay float64
	lateThresholdHour   int
}

func NewReportHandler(reportService report.Service, standardHoursPerDay float64, lateThresholdHour int) ReportHandler {
	return &reportHandlerImpl{
		reportService:       reportService,
		standardHoursPerDay: standardHoursPerDay,
		lateThresholdHour:   lateThresholdHour,
	}
}

// DailyStats implements ReportHandler.
func (h *reportHandlerImpl) DailyStats(w http.ResponseWriter, r *http.Request) {
	req := report.DateRequest{Date: r.URL.Query().Get("date")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.reportService.DailyStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// WeeklyStats implements ReportHandler.
func (h *reportHandlerImpl) WeeklyStats(w http.ResponseWriter, r *http.Request) {
	req := rangeRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.reportService.WeeklyStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// HourlyDistribution implements ReportHandler.
func (h *reportHandlerImpl) HourlyDistribution(w http.ResponseWriter, r *http.Request) {
	req := report.DateRequest{Date: r.URL.Query().Get("date")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	buckets, err := h.reportService.HourlyDistribution(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, buckets)
}

// TopWorkers implements ReportHandler.
func (h *reportHandlerImpl) TopWorkers(w http.ResponseWriter, r *http.Request) {
	req := report.TopWorkersRequest{Days: 30, Limit: 10}

	var err error
	if v := r.URL.Query().Get("days"); v != "" {
		if req.Days, err = strconv.Atoi(v); err != nil {
			response.BadRequest(w, "days must be an integer", nil)
			return
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if req.Limit, err = strconv.Atoi(v); err != nil {
			response.BadRequest(w, "limit must be an integer", nil)
			return
		}
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	workers, err := h.reportService.TopWorkers(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, workers)
}

// PivotReport implements ReportHandler.
func (h *reportHandlerImpl) PivotReport(w http.ResponseWriter, r *http.Request) {
	req := rangeRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	pivot, err := h.reportService.PivotReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pivot)
}

// OvertimeReport implements ReportHandler.
func (h *reportHandlerImpl) OvertimeReport(w http.ResponseWriter, r *http.Request) {
	req := report.OvertimeRequest{
		RangeRequest:        rangeRequestFromQuery(r),
		StandardHoursPerDay: h.standardHoursPerDay,
	}

	if v := r.URL.Query().Get("standard_hours"); v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(w, "standard_hours must be a number", nil)
			return
		}
		req.StandardHoursPerDay = hours
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.reportService.OvertimeReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// LateArrivals implements ReportHandler.
func (h *reportHandlerImpl) LateArrivals(w http.ResponseWriter, r *http.Request) {
	req := report.LateArrivalsRequest{
		RangeRequest:  rangeRequestFromQuery(r),
		ThresholdHour: h.lateThresholdHour,
	}

	if v := r.URL.Query().Get("threshold_hour"); v != "" {
		hour, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "threshold_hour must be an integer", nil)
			return
		}
		req.ThresholdHour = hour
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	arrivals, err := h.reportService.LateArrivalsReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, arrivals)
}

// WeeklyDistribution implements ReportHandler.
func (h *reportHandlerImpl) WeeklyDistribution(w http.ResponseWriter, r *http.Request) {
	req := rangeRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.reportService.WeeklyDistribution(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// LocationStats implements ReportHandler.
func (h *reportHandlerImpl) LocationStats(w http.ResponseWriter, r *http.Request) {
	req := rangeRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.reportService.LocationStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// PeriodComparison implements ReportHandler.
func (h *reportHandlerImpl) PeriodComparison(w http.ResponseWriter, r *http.Request) {
	var req report.ComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	comparison, err := h.reportService.PeriodComparison(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, comparison)
}

// UserActivity implements ReportHandler.
func (h *reportHandlerImpl) UserActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	summary, err := h.reportService.UserActivity(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// SystemHealth implements ReportHandler.
func (h *reportHandlerImpl) SystemHealth(w http.ResponseWriter, r *http.Request) {
	health, err := h.reportService.SystemHealth(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, health)
}

func rangeRequestFromQuery(r *http.Request) report.RangeRequest {
	return report.RangeRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
}
