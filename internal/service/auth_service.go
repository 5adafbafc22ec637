package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bakery-crew/internal/auth"
	"github.com/spec-kit/bakery-crew/internal/config"
	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/internal/events"
	"github.com/spec-kit/bakery-crew/internal/repository"
	apperrors "github.com/spec-kit/bakery-crew/pkg/util"
)

// Account-flow messages that are part of the API contract. Login failures
// collapse to one string so callers cannot probe which check failed.
const (
	MsgEmailTaken   = "User with this email already exists."
	MsgLoginFailed  = "Invalid credentials or account not approved."
	MsgUserNotFound = "User not found."
)

// RegisterInput describes a registration payload after validation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
	Shift    *domain.Shift
	Role     domain.Role
}

// AuthService coordinates registration, login and account flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLDays),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account in the pending state. A user-role
// registration that supplies a shift is auto-assigned the first manager on
// that shift; no manager on the shift is not an error.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict(MsgEmailTaken)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	var managerID *int64
	if role == domain.RoleUser && input.Shift != nil {
		manager, err := s.users.FindManagerByShift(ctx, *input.Shift)
		if err == nil {
			managerID = &manager.ID
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Role:         role,
		Shift:        input.Shift,
		Approved:     false,
		ManagerID:    managerID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventUserRegistered,
			ActorID:   user.ID,
			Timestamp: time.Now(),
			Payload: events.UserRegisteredPayload{
				UserID:    user.ID,
				Shift:     user.Shift,
				ManagerID: user.ManagerID,
			},
		})
	}
	return user, nil
}

// Login authenticates an approved account and issues a 30-day credential.
// Unknown email, pending approval and wrong password are indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized(MsgLoginFailed)
		}
		return nil, "", time.Time{}, err
	}
	if !user.Approved {
		return nil, "", time.Time{}, apperrors.NewUnauthorized(MsgLoginFailed)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized(MsgLoginFailed)
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout is a client instruction only: the credential stays valid until
// expiry, there is no server-side revocation list.
func (s *AuthService) Logout(_ context.Context) error {
	return nil
}

// GetProfile loads the caller's current directory record.
func (s *AuthService) GetProfile(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(MsgUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes name, phone and shift for the caller.
func (s *AuthService) UpdateProfile(ctx context.Context, id int64, name string, phone *string, shift *domain.Shift) (*domain.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.Phone = phone
	user.Shift = shift
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(MsgUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account when the actor is elevated or the owner.
func (s *AuthService) DeleteUser(ctx context.Context, actor *auth.Principal, id int64) (*domain.User, error) {
	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, err
	}
	if err := auth.CanDelete(actor, target); err != nil {
		return nil, err
	}
	return s.users.Delete(ctx, id)
}

// ListUsers returns the whole directory.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
