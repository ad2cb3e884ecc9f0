package attendance

import (
	"context"
	"time"

	"github.com/officetrack/officetrack-backend-go/internal/domain/event"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/interval"
)

// Service is the presence state machine plus the scan orchestration around it.
type Service interface {
	// ProcessScan consumes the token, records the action, and mints a fresh
	// token after a completed action. The token consume happens first: a
	// rejected transition still burns the token.
	ProcessScan(ctx context.Context, req ScanRequest) (ScanResult, error)

	// RecordAction validates the in/out alternation for the user and appends
	// the event on success. Registers the person on first interaction.
	RecordAction(ctx context.Context, req RecordActionRequest) (RecordActionResult, error)

	// StateFor derives the user's current presence state.
	StateFor(ctx context.Context, userID int64) (State, error)

	// EventsForUser returns the user's most recent events, newest first.
	EventsForUser(ctx context.Context, userID int64, limit int) ([]event.Event, error)

	// PresentUsers returns everyone currently checked in.
	PresentUsers(ctx context.Context) ([]event.PresentUser, error)

	// WorkIntervals pairs the user's events in [start, end] into intervals.
	WorkIntervals(ctx context.Context, userID int64, start, end time.Time) ([]interval.Interval, error)
}
