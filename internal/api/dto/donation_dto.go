package dto

import (
	"time"

	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/pkg/util"
)

// CreateDonationRequest payload for POST /api/donations.
type CreateDonationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

// Validate checks the payload.
func (r CreateDonationRequest) Validate() []util.FieldError {
	var fields []util.FieldError
	if r.Title == "" {
		fields = append(fields, util.FieldError{Msg: "Title is required", Path: "title"})
	}
	if r.Description == "" {
		fields = append(fields, util.FieldError{Msg: "Description is required", Path: "description"})
	}
	if r.Deadline != "" {
		if _, err := time.Parse(time.RFC3339, r.Deadline); err != nil {
			fields = append(fields, util.FieldError{Msg: "Invalid date", Path: "deadline"})
		}
	}
	return fields
}

// ParsedDeadline returns the optional campaign deadline; Validate must have
// passed.
func (r CreateDonationRequest) ParsedDeadline() *time.Time {
	if r.Deadline == "" {
		return nil
	}
	deadline, _ := time.Parse(time.RFC3339, r.Deadline)
	return &deadline
}

// ConfirmPaymentRequest payload for confirming a donation payment.
type ConfirmPaymentRequest struct {
	Amount *float64 `json:"amount"`
}

// Validate checks the payload.
func (r ConfirmPaymentRequest) Validate() []util.FieldError {
	var fields []util.FieldError
	if r.Amount == nil {
		fields = append(fields, util.FieldError{Msg: "Amount is required", Path: "amount"})
	}
	return fields
}

// DonationResponse is the wire shape for a campaign.
type DonationResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	CreatedBy   int64      `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	Active      bool       `json:"active"`
}

// NewDonationResponse maps a stored campaign.
func NewDonationResponse(donation *domain.Donation) DonationResponse {
	return DonationResponse{
		ID:          donation.ID,
		Title:       donation.Title,
		Description: donation.Description,
		Deadline:    donation.Deadline,
		CreatedBy:   donation.CreatedBy,
		CreatedAt:   donation.CreatedAt,
		Active:      donation.Active(time.Now()),
	}
}

// NewDonationResponses maps a listing.
func NewDonationResponses(donations []domain.Donation) []DonationResponse {
	result := make([]DonationResponse, 0, len(donations))
	for i := range donations {
		result = append(result, NewDonationResponse(&donations[i]))
	}
	return result
}

// PaymentResponse is the wire shape for a confirmed payment.
type PaymentResponse struct {
	ID         int64     `json:"id"`
	DonationID int64     `json:"donationId"`
	UserID     int64     `json:"userId"`
	Amount     float64   `json:"amount"`
	PaidAt     time.Time `json:"paidAt"`
}

// NewPaymentResponse maps a stored payment.
func NewPaymentResponse(payment *domain.DonationPayment) PaymentResponse {
	return PaymentResponse{
		ID:         payment.ID,
		DonationID: payment.DonationID,
		UserID:     payment.UserID,
		Amount:     payment.Amount,
		PaidAt:     payment.PaidAt,
	}
}
