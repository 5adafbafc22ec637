package domain

import "time"

// Event is an organization-run event staff can apply to.
type Event struct {
	ID          int64
	Title       string
	Description string
	Date        time.Time
	Shift       Shift
	CreatedBy   int64
	CreatedAt   time.Time
}

// EventApplication records a user's application to an event.
type EventApplication struct {
	ID        int64
	EventID   int64
	UserID    int64
	AppliedAt time.Time
}

// Applicant is the directory view of someone who applied to an event or
// donation campaign.
type Applicant struct {
	ID    int64
	Name  string
	Email string
	Shift *Shift
}
