package events

import (
	"time"

	"github.com/spec-kit/bakery-crew/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered      EventType = "user_registered"
	EventUserApproved        EventType = "user_approved"
	EventMessageSent         EventType = "message_sent"
	EventCrewEventCreated    EventType = "crew_event_created"
	EventApplicationAdded    EventType = "event_application_added"
	EventDonationPaymentMade EventType = "donation_payment_made"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID    int64         `json:"user_id"`
	Shift     *domain.Shift `json:"shift,omitempty"`
	ManagerID *int64        `json:"manager_id,omitempty"`
}

// UserApprovedPayload payload.
type UserApprovedPayload struct {
	UserID int64 `json:"user_id"`
}

// MessageSentPayload payload.
type MessageSentPayload struct {
	MessageID  int64              `json:"message_id"`
	ReceiverID int64              `json:"receiver_id"`
	Type       domain.MessageType `json:"message_type"`
}

// CrewEventCreatedPayload payload.
type CrewEventCreatedPayload struct {
	EventID int64        `json:"event_id"`
	Shift   domain.Shift `json:"shift"`
	Title   string       `json:"title"`
}

// ApplicationAddedPayload payload.
type ApplicationAddedPayload struct {
	EventID   int64  `json:"event_id"`
	CreatorID int64  `json:"creator_id"`
	Title     string `json:"title"`
}

// DonationPaymentMadePayload payload.
type DonationPaymentMadePayload struct {
	DonationID int64   `json:"donation_id"`
	CreatorID  int64   `json:"creator_id"`
	Title      string  `json:"title"`
	Amount     float64 `json:"amount"`
}
