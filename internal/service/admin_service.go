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
	msgManagerNotFound = "Manager not found."
	// MsgManagerInvalid is returned when an assignment would break the
	// directory invariant: manager role, matching shift, never self.
	MsgManagerInvalid = "Assigned manager must have the manager role and share the user's shift."
)

// AdminService covers the elevated-role actions: approval and manager
// relationship management. Route middleware has already verified the actor's
// role class before these run.
type AdminService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository, dispatcher events.Dispatcher) *AdminService {
	return &AdminService{users: users, dispatcher: dispatcher}
}

// ApproveUser moves a pending account to the approved state. The transition
// is a single atomic flag flip; approved is terminal.
func (s *AdminService) ApproveUser(ctx context.Context, id int64) (*domain.User, error) {
	if err := s.users.UpdateApproval(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventUserApproved,
			ActorID:   id,
			Timestamp: time.Now(),
			Payload:   events.UserApprovedPayload{UserID: id},
		})
	}
	return user, nil
}

// AssignManager points target at the given manager after checking the
// invariant that the manager holds the manager role on the same shift.
func (s *AdminService) AssignManager(ctx context.Context, targetID, managerID int64) (*domain.User, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, err
	}
	manager, err := s.users.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(msgManagerNotFound)
		}
		return nil, err
	}
	if !auth.ValidManagerFor(target, manager) {
		return nil, apperrors.NewDomainError("VALIDATION_FAILED", MsgManagerInvalid, 400)
	}

	if err := s.users.UpdateManager(ctx, targetID, &managerID); err != nil {
		return nil, err
	}
	target.ManagerID = &managerID
	return target, nil
}

// RevokeManager clears the target's manager assignment.
func (s *AdminService) RevokeManager(ctx context.Context, targetID int64) (*domain.User, error) {
	if err := s.users.UpdateManager(ctx, targetID, nil); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, err
	}
	return s.users.GetByID(ctx, targetID)
}

// ListPending returns accounts awaiting approval.
func (s *AdminService) ListPending(ctx context.Context) ([]domain.User, error) {
	return s.users.ListPending(ctx)
}
