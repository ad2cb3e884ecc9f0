package event

import (
	"time"
)

type Action string

const (
	ActionIn  Action = "in"
	ActionOut Action = "out"
)

type Location string

const (
	LocationOffice Location = "office"
	LocationRemote Location = "remote"
)

// Event is one immutable attendance record. Rows are append-only: the id
// (insertion order) is the authoritative tie-break when timestamps collide.
type Event struct {
	ID        int64
	UserID    int64
	Username  *string
	FullName  *string
	Location  Location
	Action    Action
	Timestamp time.Time
}

// PresentUser is a user whose latest event (by id) is a check-in.
type PresentUser struct {
	UserID   int64
	FullName string
	Username *string
	Location Location
	Since    time.Time
}

// OpenSession is a check-in with no matching check-out yet.
type OpenSession struct {
	UserID    int64
	FullName  string
	Username  *string
	Location  Location
	CheckinAt time.Time
}

// ValidAction reports whether s is a known attendance action.
func ValidAction(s string) bool {
	return s == string(ActionIn) || s == string(ActionOut)
}

// ValidLocation reports whether s is a known location tag.
func ValidLocation(s string) bool {
	return s == string(LocationOffice) || s == string(LocationRemote)
}
