package dto

import (
	"time"

	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/pkg/util"
)

// SendMessageRequest payload for POST /api/messages.
type SendMessageRequest struct {
	RecipientID *int64 `json:"recipientId"`
	Content     string `json:"content"`
	MessageType string `json:"messageType"`
}

// Validate checks the payload.
func (r SendMessageRequest) Validate() []util.FieldError {
	var fields []util.FieldError
	if r.RecipientID == nil {
		fields = append(fields, util.FieldError{Msg: "Recipient ID is required", Path: "recipientId"})
	}
	if r.Content == "" {
		fields = append(fields, util.FieldError{Msg: "Message content is required", Path: "content"})
	}
	if r.MessageType != "" {
		switch domain.MessageType(r.MessageType) {
		case domain.MessagePersonal, domain.MessageSystem:
		default:
			fields = append(fields, util.FieldError{Msg: "Invalid message type", Path: "messageType"})
		}
	}
	return fields
}

// MessageResponse is the wire shape for a message.
type MessageResponse struct {
	ID                int64                     `json:"id"`
	SenderID          int64                     `json:"senderId"`
	ReceiverID        int64                     `json:"receiverId"`
	Content           string                    `json:"content"`
	MessageType       domain.MessageType        `json:"messageType"`
	RelatedEntityID   *int64                    `json:"relatedEntityId"`
	RelatedEntityType *domain.RelatedEntityType `json:"relatedEntityType"`
	SentDate          time.Time                 `json:"sentDate"`
	IsRead            bool                      `json:"isRead"`
	SenderName        string                    `json:"senderName,omitempty"`
	ReceiverName      string                    `json:"receiverName,omitempty"`
}

// NewMessageResponse maps a stored message.
func NewMessageResponse(msg *domain.Message) MessageResponse {
	return MessageResponse{
		ID:                msg.ID,
		SenderID:          msg.SenderID,
		ReceiverID:        msg.ReceiverID,
		Content:           msg.Content,
		MessageType:       msg.MessageType,
		RelatedEntityID:   msg.RelatedEntityID,
		RelatedEntityType: msg.RelatedEntityType,
		SentDate:          msg.SentAt,
		IsRead:            msg.IsRead,
		SenderName:        msg.SenderName,
		ReceiverName:      msg.ReceiverName,
	}
}

// NewMessageResponses maps a listing.
func NewMessageResponses(msgs []domain.Message) []MessageResponse {
	result := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		result = append(result, NewMessageResponse(&msgs[i]))
	}
	return result
}
