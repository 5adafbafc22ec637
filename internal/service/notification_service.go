package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/internal/events"
	"github.com/spec-kit/bakery-crew/internal/repository"
)

// NotificationService turns domain events into log lines and, for event
// applications and donation payments, into system-linked messages delivered
// to the entity's creator.
type NotificationService struct {
	dispatcher events.Dispatcher
	messages   repository.MessageRepository
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, messages repository.MessageRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		messages:   messages,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventUserApproved, n.handleUserApproved)
	n.dispatcher.Subscribe(events.EventMessageSent, n.handleMessageSent)
	n.dispatcher.Subscribe(events.EventCrewEventCreated, n.handleCrewEventCreated)
	n.dispatcher.Subscribe(events.EventApplicationAdded, n.handleApplicationAdded)
	n.dispatcher.Subscribe(events.EventDonationPaymentMade, n.handleDonationPayment)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.Int64("user_id", event.ActorID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserApproved(_ context.Context, event events.Event) error {
	n.logger.Info("UserApproved", zap.Int64("user_id", event.ActorID))
	return nil
}

func (n *NotificationService) handleMessageSent(_ context.Context, event events.Event) error {
	n.logger.Info("MessageSent", zap.Int64("sender_id", event.ActorID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleCrewEventCreated(_ context.Context, event events.Event) error {
	n.logger.Info("CrewEventCreated", zap.Int64("creator_id", event.ActorID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleApplicationAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationAddedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("EventApplicationAdded",
		zap.Int64("applicant_id", event.ActorID),
		zap.Int64("event_id", payload.EventID))

	// The applicant notifying the creator is a system message, not subject
	// to the messaging rule.
	if event.ActorID == payload.CreatorID {
		return nil
	}
	entityType := domain.RelatedEvent
	msg := &domain.Message{
		SenderID:          event.ActorID,
		ReceiverID:        payload.CreatorID,
		Content:           fmt.Sprintf("New application for event %q.", payload.Title),
		MessageType:       domain.MessageSystem,
		RelatedEntityID:   &payload.EventID,
		RelatedEntityType: &entityType,
	}
	if err := n.messages.Insert(ctx, msg); err != nil {
		n.logger.Warn("failed to write application notification", zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleDonationPayment(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DonationPaymentMadePayload)
	if !ok {
		return nil
	}
	n.logger.Info("DonationPaymentMade",
		zap.Int64("payer_id", event.ActorID),
		zap.Int64("donation_id", payload.DonationID),
		zap.Float64("amount", payload.Amount))

	if event.ActorID == payload.CreatorID {
		return nil
	}
	entityType := domain.RelatedDonation
	msg := &domain.Message{
		SenderID:          event.ActorID,
		ReceiverID:        payload.CreatorID,
		Content:           fmt.Sprintf("New payment of %.2f for donation %q.", payload.Amount, payload.Title),
		MessageType:       domain.MessageSystem,
		RelatedEntityID:   &payload.DonationID,
		RelatedEntityType: &entityType,
	}
	if err := n.messages.Insert(ctx, msg); err != nil {
		n.logger.Warn("failed to write payment notification", zap.Error(err))
	}
	return nil
}
