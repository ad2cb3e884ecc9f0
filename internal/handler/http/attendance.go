package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/officetrack/officetrack-backend-go/internal/domain/attendance"
	"github.com/officetrack/officetrack-backend-go/internal/handler/http/response"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
	RecordAction(w http.ResponseWriter, r *http.Request)
	GetState(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
	ListPresent(w http.ResponseWriter, r *http.Request)
	ListIntervals(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Scan implements AttendanceHandler. One QR scan: consume the token, apply
// the action, mint the next token.
func (h *attendanceHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req attendance.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ProcessScan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RecordAction implements AttendanceHandler. Admin path: appends an event
// without a token, for corrections and trusted integrations.
func (h *attendanceHandlerImpl) RecordAction(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.RecordAction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetState implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetState(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	state, err := h.attendanceService.StateFor(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.StateResponse{UserID: userID, State: state})
}

// ListEvents implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 || limit > 100 {
			response.BadRequest(w, "limit must be between 1 and 100", nil)
			return
		}
	}

	events, err := h.attendanceService.EventsForUser(r.Context(), userID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]attendance.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, attendance.ToEventResponse(e))
	}

	response.Success(w, resp)
}

// ListPresent implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListPresent(w http.ResponseWriter, r *http.Request) {
	users, err := h.attendanceService.PresentUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]attendance.PresentUserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, attendance.ToPresentUserResponse(u))
	}

	response.Success(w, resp)
}

// ListIntervals implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListIntervals(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	startDay, startOK := validator.IsValidDate(startDate)
	endDay, endOK := validator.IsValidDate(endDate)
	if !startOK || !endOK || startDay.After(endDay) {
		response.BadRequest(w, "start_date and end_date must be a valid YYYY-MM-DD range", nil)
		return
	}

	start, _ := validator.DayBounds(startDate)
	_, end := validator.DayBounds(endDate)

	intervals, err := h.attendanceService.WorkIntervals(r.Context(), userID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]attendance.IntervalResponse, 0, len(intervals))
	for _, iv := range intervals {
		resp = append(resp, attendance.ToIntervalResponse(iv))
	}

	response.Success(w, resp)
}
