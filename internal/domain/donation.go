package domain

import "time"

// Donation is a fundraising campaign. A campaign with no deadline, or a
// deadline in the future, counts as active.
type Donation struct {
	ID          int64
	Title       string
	Description string
	Deadline    *time.Time
	CreatedBy   int64
	CreatedAt   time.Time
}

// Active reports whether the campaign still accepts payments at now.
func (d Donation) Active(now time.Time) bool {
	return d.Deadline == nil || d.Deadline.After(now)
}

// DonationPayment records a confirmed contribution to a campaign.
type DonationPayment struct {
	ID         int64
	DonationID int64
	UserID     int64
	Amount     float64
	PaidAt     time.Time
}
