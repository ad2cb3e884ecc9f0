// Package interval pairs a user's check-in/check-out events into work
// intervals. It is the single source of worked-hours numbers for every
// report; it never touches storage.
package interval

import (
	"time"

	"github.com/officetrack/officetrack-backend-go/internal/domain/event"
)

// MaxSessionSeconds caps a plausible single work session. Completed
// intervals outside (0, MaxSessionSeconds) are treated as corrupt data
// (missing intermediate event, clock skew) and dropped from aggregates.
const MaxSessionSeconds = 24 * 60 * 60

// Interval is one continuous stretch of presence. End is nil for a session
// that is still open; open intervals contribute zero completed duration.
type Interval struct {
	UserID          int64
	Start           time.Time
	End             *time.Time
	DurationSeconds int64
}

// Open reports whether the interval has no check-out yet.
func (iv Interval) Open() bool {
	return iv.End == nil
}

// FromEvents scans one user's events, ordered by timestamp ascending, and
// pairs them into intervals. A second check-in while one is already open
// supersedes the earlier pointer without emitting anything: the state
// machine rejects double check-ins on write, but historical rows from before
// that guard (or from a bypassing path) must still aggregate sanely.
func FromEvents(userID int64, events []event.Event) []Interval {
	var intervals []Interval
	var open *time.Time

	for _, e := range events {
		switch e.Action {
		case event.ActionIn:
			ts := e.Timestamp
			open = &ts
		case event.ActionOut:
			if open == nil {
				continue
			}
			dur := int64(e.Timestamp.Sub(*open) / time.Second)
			if dur > 0 && dur < MaxSessionSeconds {
				end := e.Timestamp
				intervals = append(intervals, Interval{
					UserID:          userID,
					Start:           *open,
					End:             &end,
					DurationSeconds: dur,
				})
			}
			open = nil
		}
	}

	if open != nil {
		intervals = append(intervals, Interval{UserID: userID, Start: *open})
	}

	return intervals
}

// CompletedSeconds sums the durations of closed intervals.
func CompletedSeconds(intervals []Interval) int64 {
	var total int64
	for _, iv := range intervals {
		total += iv.DurationSeconds
	}
	return total
}

// SecondsAsOf sums durations counting any trailing open interval up to now.
// An open interval older than MaxSessionSeconds contributes nothing, same
// as an implausible completed one.
func SecondsAsOf(intervals []Interval, now time.Time) int64 {
	total := CompletedSeconds(intervals)
	for _, iv := range intervals {
		if !iv.Open() {
			continue
		}
		dur := int64(now.Sub(iv.Start) / time.Second)
		if dur > 0 && dur < MaxSessionSeconds {
			total += dur
		}
	}
	return total
}

// HoursByDay buckets completed intervals by the UTC calendar date of their
// start. An interval spanning midnight is attributed entirely to the day it
// began on; it is never split.
func HoursByDay(intervals []Interval) map[string]float64 {
	hours := make(map[string]float64)
	for _, iv := range intervals {
		if iv.Open() {
			continue
		}
		day := iv.Start.UTC().Format("2006-01-02")
		hours[day] += float64(iv.DurationSeconds) / 3600.0
	}
	return hours
}

// GroupByUser splits a user_id-then-timestamp ordered event slice (the
// shape RangeAll returns) into per-user sub-slices without copying.
func GroupByUser(events []event.Event) map[int64][]event.Event {
	groups := make(map[int64][]event.Event)
	start := 0
	for i := 1; i <= len(events); i++ {
		if i == len(events) || events[i].UserID != events[start].UserID {
			groups[events[start].UserID] = events[start:i]
			start = i
		}
	}
	return groups
}
