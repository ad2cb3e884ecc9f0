package attendance

import (
	"time"

	"github.com/officetrack/officetrack-backend-go/internal/domain/event"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/interval"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/validator"
)

// State is the per-user presence state derived from the latest event (by id).
type State string

const (
	StateNone    State = "none"    // no events yet
	StatePresent State = "present" // latest event is a check-in
	StateAbsent  State = "absent"  // latest event is a check-out
)

// Rejection reasons returned alongside Accepted=false.
const (
	ReasonDuplicateState = "duplicate-state"
	ReasonInvalidToken   = "invalid-token"
)

type RecordActionRequest struct {
	UserID   int64   `json:"user_id"`
	FullName string  `json:"full_name"`
	Username *string `json:"username,omitempty"`
	Location string  `json:"location"`
	Action   string  `json:"action"`
}

func (r *RecordActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be positive",
		})
	}
	if !event.ValidLocation(r.Location) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must be one of: office, remote",
		})
	}
	if !event.ValidAction(r.Action) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: in, out",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordActionResult reports whether a transition was accepted. Rejected
// transitions append nothing; callers must inspect Accepted before treating
// a retry as a duplicate success.
type RecordActionResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	EventID  int64  `json:"event_id,omitempty"`
	State    State  `json:"state"`
}

// ScanRequest is one QR scan: a token plus the action it should gate.
type ScanRequest struct {
	Token string `json:"token"`
	RecordActionRequest
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}
	if err := r.RecordActionRequest.Validate(); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ScanResult is the outcome of a full scan: token consumption, the state
// transition, and the replacement token minted after a completed action.
type ScanResult struct {
	Accepted      bool   `json:"accepted"`
	Reason        string `json:"reason,omitempty"`
	State         State  `json:"state"`
	NewTokenValue string `json:"new_token,omitempty"`
}

type StateResponse struct {
	UserID int64 `json:"user_id"`
	State  State `json:"state"`
}

type EventResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  *string   `json:"username,omitempty"`
	FullName  *string   `json:"full_name,omitempty"`
	Location  string    `json:"location"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func ToEventResponse(e event.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Username:  e.Username,
		FullName:  e.FullName,
		Location:  string(e.Location),
		Action:    string(e.Action),
		Timestamp: e.Timestamp,
	}
}

type PresentUserResponse struct {
	UserID   int64     `json:"user_id"`
	FullName string    `json:"full_name"`
	Username *string   `json:"username,omitempty"`
	Location string    `json:"location"`
	Since    time.Time `json:"since"`
}

func ToPresentUserResponse(u event.PresentUser) PresentUserResponse {
	return PresentUserResponse{
		UserID:   u.UserID,
		FullName: u.FullName,
		Username: u.Username,
		Location: string(u.Location),
		Since:    u.Since,
	}
}

type IntervalResponse struct {
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end,omitempty"`
	DurationSeconds int64      `json:"duration_seconds"`
	Open            bool       `json:"open"`
}

func ToIntervalResponse(iv interval.Interval) IntervalResponse {
	return IntervalResponse{
		Start:           iv.Start,
		End:             iv.End,
		DurationSeconds: iv.DurationSeconds,
		Open:            iv.Open(),
	}
}
