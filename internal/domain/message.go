package domain

import "time"

// MessageType differentiates personal messages from system-generated ones
// linked to an event or donation.
type MessageType string

const (
	MessagePersonal MessageType = "personal"
	MessageSystem   MessageType = "system"
)

// RelatedEntityType names the entity a system message is linked to.
type RelatedEntityType string

const (
	RelatedEvent    RelatedEntityType = "event"
	RelatedDonation RelatedEntityType = "donation"
)

// Message is a directed communication between two users. SenderName and
// ReceiverName are populated on reads that join the directory.
type Message struct {
	ID                int64
	SenderID          int64
	ReceiverID        int64
	Content           string
	MessageType       MessageType
	RelatedEntityID   *int64
	RelatedEntityType *RelatedEntityType
	SentAt            time.Time
	IsRead            bool
	SenderName        string
	ReceiverName      string
}
