package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bakery-crew/internal/auth"
	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/internal/events"
	"github.com/spec-kit/bakery-crew/internal/repository"
	apperrors "github.com/spec-kit/bakery-crew/pkg/util"
)

const msgMessageNotFound = "Message not found"

// MessageService coordinates restricted messaging between crew members.
type MessageService struct {
	messages   repository.MessageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewMessageService builds the service.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, dispatcher events.Dispatcher) *MessageService {
	return &MessageService{messages: messages, users: users, dispatcher: dispatcher}
}

// Send delivers a message after the authorization engine clears the pair.
// The rule runs against the recipient's current directory record, not the
// sender's credential snapshot of it.
func (s *MessageService) Send(ctx context.Context, sender *auth.Principal, recipientID int64, content string, messageType domain.MessageType) (*domain.Message, error) {
	recipient, err := s.users.GetByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recipient = nil
		} else {
			return nil, err
		}
	}
	if err := auth.CanMessage(sender, recipient); err != nil {
		return nil, err
	}

	if messageType == "" {
		messageType = domain.MessagePersonal
	}
	msg := &domain.Message{
		SenderID:    sender.ID,
		ReceiverID:  recipientID,
		Content:     content,
		MessageType: messageType,
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventMessageSent,
			ActorID:   sender.ID,
			Timestamp: time.Now(),
			Payload: events.MessageSentPayload{
				MessageID:  msg.ID,
				ReceiverID: msg.ReceiverID,
				Type:       msg.MessageType,
			},
		})
	}
	return msg, nil
}

// Inbox lists messages received by the caller, newest first.
func (s *MessageService) Inbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	return s.messages.ListInbox(ctx, userID)
}

// Sent lists messages sent by the caller, newest first.
func (s *MessageService) Sent(ctx context.Context, userID int64) ([]domain.Message, error) {
	return s.messages.ListSent(ctx, userID)
}

// Get returns a single message, visible only to its sender or receiver.
func (s *MessageService) Get(ctx context.Context, id, userID int64) (*domain.Message, error) {
	msg, err := s.messages.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(msgMessageNotFound)
		}
		return nil, err
	}
	return msg, nil
}

// MarkRead flips the read flag.
func (s *MessageService) MarkRead(ctx context.Context, id int64) (*domain.Message, error) {
	msg, err := s.messages.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(msgMessageNotFound)
		}
		return nil, err
	}
	return msg, nil
}
