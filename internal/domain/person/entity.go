package person

import "time"

// Person is an employee known to the system. Rows are created on the first
// recorded action and never deleted by the normal flow.
type Person struct {
	ID             int64
	ExternalUserID int64
	FullName       string
	Username       *string
	CreatedAt      time.Time
}
