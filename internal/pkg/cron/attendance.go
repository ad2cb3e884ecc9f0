package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/officetrack/officetrack-backend-go/internal/domain/event"
	"github.com/officetrack/officetrack-backend-go/internal/pkg/email"
)

// Notifier delivers checkout reminders. Delivery and "already reminded"
// de-duplication belong to the notification collaborator, not this core.
type Notifier interface {
	NotifyForgottenCheckout(ctx context.Context, session event.OpenSession) error
}

// LogNotifier is the default notifier: it records the reminder in the log.
// Deployments with a chat transport swap in a real one.
type LogNotifier struct{}

func (LogNotifier) NotifyForgottenCheckout(ctx context.Context, session event.OpenSession) error {
	slog.Warn("forgotten checkout",
		"user_id", session.UserID,
		"full_name", session.FullName,
		"checkin_at", session.CheckinAt)
	return nil
}

// EmailNotifier mails reminders to a fixed operations address.
type EmailNotifier struct {
	mailer email.EmailService
	to     string
}

func NewEmailNotifier(mailer email.EmailService, to string) EmailNotifier {
	return EmailNotifier{mailer: mailer, to: to}
}

func (n EmailNotifier) NotifyForgottenCheckout(_ context.Context, session event.OpenSession) error {
	return n.mailer.SendCheckoutReminder(n.to, session.FullName, session.CheckinAt)
}

type AttendanceJobs struct {
	eventRepo event.Repository
	notifier  Notifier

	// Sessions open longer than this trigger a reminder.
	staleAfter time.Duration
}

func NewAttendanceJobs(eventRepo event.Repository, notifier Notifier, staleAfter time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		eventRepo:  eventRepo,
		notifier:   notifier,
		staleAfter: staleAfter,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("remind_forgotten_checkouts", 1*time.Hour, j.RemindForgottenCheckouts)
}

// RemindForgottenCheckouts finds sessions that have been open past the
// threshold and hands each to the notifier.
func (j *AttendanceJobs) RemindForgottenCheckouts(ctx context.Context) error {
	sessions, err := j.eventRepo.OpenSessionsOlderThan(ctx, j.staleAfter)
	if err != nil {
		return fmt.Errorf("failed to get stale open sessions: %w", err)
	}

	if len(sessions) == 0 {
		slog.Debug("Cron: no stale open sessions")
		return nil
	}

	notified := 0
	for _, session := range sessions {
		if j.notifier == nil {
			continue
		}
		if err := j.notifier.NotifyForgottenCheckout(ctx, session); err != nil {
			slog.Error("Cron: failed to send checkout reminder",
				"user_id", session.UserID,
				"checkin_at", session.CheckinAt,
				"error", err)
			continue
		}
		notified++
	}

	slog.Info("Cron: checkout reminders sent", "open_sessions", len(sessions), "notified", notified)
	return nil
}
