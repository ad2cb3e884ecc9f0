package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/officetrack/officetrack-backend-go/internal/domain/attendance"
	"github.com/officetrack/officetrack-backend-go/internal/domain/event"
	"github.com/officetrack/officetrack-backend-go/internal/domain/person"
	"github.com/officetrack/officetrack-backend-go/internal/domain/token"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/database"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/interval"
	"github.com/officetrack/officetrack-backend-go/internal/repository/postgresql"
)

type attendanceService struct {
	db           *database.DB
	eventRepo    event.Repository
	personRepo   person.Repository
	tokenService token.Service
}

func NewAttendanceService(
	db *database.DB,
	eventRepo event.Repository,
	personRepo person.Repository,
	tokenService token.Service,
) attendance.Service {
	return &attendanceService{
		db:           db,
		eventRepo:    eventRepo,
		personRepo:   personRepo,
		tokenService: tokenService,
	}
}

// withTx runs fn inside a database transaction when a database is attached;
// repositories pick the transaction up from the context.
func (s *attendanceService) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

// ProcessScan implements attendance.Service. The token is consumed before the
// transition is checked, so a rejected transition still burns it; the next
// token is minted only after a completed action.
func (s *attendanceService) ProcessScan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResult, error) {
	consumed, err := s.tokenService.Consume(ctx, req.Token)
	if err != nil {
		return attendance.ScanResult{}, err
	}
	if !consumed {
		state, err := s.StateFor(ctx, req.UserID)
		if err != nil {
			return attendance.ScanResult{}, err
		}

		// The scanner gets one uniform rejection; a separate lookup records
		// whether this was a lost consume race or an unknown value.
		if _, lookupErr := s.tokenService.Inspect(ctx, req.Token); lookupErr == nil {
			slog.Info("scan rejected, token already spent or expired", "user_id", req.UserID)
		} else if errors.Is(lookupErr, token.ErrTokenNotFound) {
			slog.Info("scan rejected, unknown token", "user_id", req.UserID)
		} else {
			slog.Warn("scan rejected, token lookup failed", "user_id", req.UserID, "error", lookupErr)
		}

		return attendance.ScanResult{
			Accepted: false,
			Reason:   attendance.ReasonInvalidToken,
			State:    state,
		}, nil
	}

	rec, err := s.RecordAction(ctx, req.RecordActionRequest)
	if err != nil {
		return attendance.ScanResult{}, err
	}

	result := attendance.ScanResult{
		Accepted: rec.Accepted,
		Reason:   rec.Reason,
		State:    rec.State,
	}

	if rec.Accepted {
		next, err := s.tokenService.Create(ctx)
		if err != nil {
			// The action is already recorded; the display loop mints a
			// replacement on its next refresh.
			slog.Error("failed to mint replacement token after scan",
				"user_id", req.UserID,
				"error", err)
		} else {
			result.NewTokenValue = next.Value
		}
	}

	return result, nil
}

// RecordAction implements attendance.Service. The alternation rule reads the
// latest event by id: a check-in is rejected while present, a check-out is
// rejected unless present.
func (s *attendanceService) RecordAction(ctx context.Context, req attendance.RecordActionRequest) (attendance.RecordActionResult, error) {
	// Handlers validate the DTO, but this service is also called by internal
	// paths that skip it.
	if !event.ValidAction(req.Action) {
		return attendance.RecordActionResult{}, event.ErrInvalidAction
	}
	if !event.ValidLocation(req.Location) {
		return attendance.RecordActionResult{}, event.ErrInvalidLocation
	}

	state, err := s.StateFor(ctx, req.UserID)
	if err != nil {
		return attendance.RecordActionResult{}, err
	}

	action := event.Action(req.Action)
	if (action == event.ActionIn && state == attendance.StatePresent) ||
		(action == event.ActionOut && state != attendance.StatePresent) {
		return attendance.RecordActionResult{
			Accepted: false,
			Reason:   attendance.ReasonDuplicateState,
			State:    state,
		}, nil
	}

	e := event.Event{
		UserID:    req.UserID,
		Username:  req.Username,
		Location:  event.Location(req.Location),
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	if req.FullName != "" {
		e.FullName = &req.FullName
	}

	// Person registration and the event append commit together.
	var id int64
	err = s.withTx(ctx, func(ctx context.Context) error {
		if _, err := s.personRepo.Create(ctx, person.Person{
			ExternalUserID: req.UserID,
			FullName:       req.FullName,
			Username:       req.Username,
		}); err != nil {
			return fmt.Errorf("failed to register person: %w", err)
		}

		id, err = s.eventRepo.Append(ctx, e)
		return err
	})
	if err != nil {
		return attendance.RecordActionResult{}, err
	}

	newState := attendance.StatePresent
	if action == event.ActionOut {
		newState = attendance.StateAbsent
	}

	slog.Info("attendance event recorded",
		"event_id", id,
		"user_id", req.UserID,
		"action", req.Action,
		"location", req.Location)

	return attendance.RecordActionResult{
		Accepted: true,
		EventID:  id,
		State:    newState,
	}, nil
}

// StateFor implements attendance.Service.
func (s *attendanceService) StateFor(ctx context.Context, userID int64) (attendance.State, error) {
	latest, err := s.eventRepo.LatestFor(ctx, userID, 1)
	if err != nil {
		return attendance.StateNone, err
	}
	if len(latest) == 0 {
		return attendance.StateNone, nil
	}
	if latest[0].Action == event.ActionIn {
		return attendance.StatePresent, nil
	}
	return attendance.StateAbsent, nil
}

// EventsForUser implements attendance.Service.
func (s *attendanceService) EventsForUser(ctx context.Context, userID int64, limit int) ([]event.Event, error) {
	return s.eventRepo.LatestFor(ctx, userID, limit)
}

// PresentUsers implements attendance.Service.
func (s *attendanceService) PresentUsers(ctx context.Context) ([]event.PresentUser, error) {
	return s.eventRepo.PresentUsers(ctx)
}

// WorkIntervals implements attendance.Service.
func (s *attendanceService) WorkIntervals(ctx context.Context, userID int64, start, end time.Time) ([]interval.Interval, error) {
	events, err := s.eventRepo.Range(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return interval.FromEvents(userID, events), nil
}
