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

const (
	msgEventNotFound       = "Event not found"
	msgApplicationNotFound = "Application not found"
	msgEventCreateDenied   = "Access denied. Only managers can create events."
	msgEventDeleteDenied   = "Access denied. You do not have permission to delete this event"
)

// EventCreateInput describes a validated event payload.
type EventCreateInput struct {
	Title       string
	Description string
	Date        time.Time
	Shift       domain.Shift
}

// EventService coordinates organization events and staff applications.
type EventService struct {
	repo       repository.EventRepository
	dispatcher events.Dispatcher
}

// NewEventService builds the service.
func NewEventService(repo repository.EventRepository, dispatcher events.Dispatcher) *EventService {
	return &EventService{repo: repo, dispatcher: dispatcher}
}

// Create registers a new event. Creation is limited to managers and the
// elevated role class.
func (s *EventService) Create(ctx context.Context, actor *auth.Principal, input EventCreateInput) (*domain.Event, error) {
	if actor.Role != domain.RoleManager && !actor.Role.Elevated() {
		return nil, apperrors.NewForbidden(msgEventCreateDenied)
	}

	event := &domain.Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Shift:       input.Shift,
		CreatedBy:   actor.ID,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventCrewEventCreated,
			ActorID:   actor.ID,
			Timestamp: time.Now(),
			Payload: events.CrewEventCreatedPayload{
				EventID: event.ID,
				Shift:   event.Shift,
				Title:   event.Title,
			},
		})
	}
	return event, nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(msgEventNotFound)
		}
		return nil, err
	}
	return event, nil
}

// List returns all events ordered by date.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx)
}

// Delete removes an event; only its creator or an elevated actor may.
func (s *EventService) Delete(ctx context.Context, actor *auth.Principal, id int64) error {
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if event.CreatedBy != actor.ID && !actor.Role.Elevated() {
		return apperrors.NewForbidden(msgEventDeleteDenied)
	}
	return s.repo.Delete(ctx, id)
}

// Apply records the caller's application to the event. Reapplying is a
// no-op, not an error.
func (s *EventService) Apply(ctx context.Context, actor *auth.Principal, eventID int64) (*domain.EventApplication, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	app, err := s.repo.Apply(ctx, eventID, actor.ID)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventApplicationAdded,
			ActorID:   actor.ID,
			Timestamp: time.Now(),
			Payload: events.ApplicationAddedPayload{
				EventID:   event.ID,
				CreatorID: event.CreatedBy,
				Title:     event.Title,
			},
		})
	}
	return app, nil
}

// CancelApplication withdraws the caller's application.
func (s *EventService) CancelApplication(ctx context.Context, actor *auth.Principal, eventID int64) error {
	if err := s.repo.CancelApplication(ctx, eventID, actor.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(msgApplicationNotFound)
		}
		return err
	}
	return nil
}

// Applicants lists everyone who applied to the event.
func (s *EventService) Applicants(ctx context.Context, eventID int64) ([]domain.Applicant, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListApplicants(ctx, eventID)
}
