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
	msgDonationNotFound     = "Donation not found"
	msgDonationCreateDenied = "Access denied. Only managers can create donation campaigns."
	msgDonationDeleteDenied = "Access denied. You do not have permission to delete this donation"
	msgDonationClosed       = "Donation campaign is no longer active."
)

// DonationCreateInput describes a validated campaign payload.
type DonationCreateInput struct {
	Title       string
	Description string
	Deadline    *time.Time
}

// DonationService coordinates donation campaigns and payments.
type DonationService struct {
	repo       repository.DonationRepository
	dispatcher events.Dispatcher
}

// NewDonationService builds the service.
func NewDonationService(repo repository.DonationRepository, dispatcher events.Dispatcher) *DonationService {
	return &DonationService{repo: repo, dispatcher: dispatcher}
}

// Create opens a campaign. Limited to managers and the elevated role class.
func (s *DonationService) Create(ctx context.Context, actor *auth.Principal, input DonationCreateInput) (*domain.Donation, error) {
	if actor.Role != domain.RoleManager && !actor.Role.Elevated() {
		return nil, apperrors.NewForbidden(msgDonationCreateDenied)
	}

	donation := &domain.Donation{
		Title:       input.Title,
		Description: input.Description,
		Deadline:    input.Deadline,
		CreatedBy:   actor.ID,
	}
	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, err
	}
	return donation, nil
}

// Get returns a single campaign.
func (s *DonationService) Get(ctx context.Context, id int64) (*domain.Donation, error) {
	donation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(msgDonationNotFound)
		}
		return nil, err
	}
	return donation, nil
}

// List returns every campaign, newest first.
func (s *DonationService) List(ctx context.Context) ([]domain.Donation, error) {
	return s.repo.List(ctx)
}

// ListActive returns campaigns still accepting payments.
func (s *DonationService) ListActive(ctx context.Context) ([]domain.Donation, error) {
	return s.repo.ListActive(ctx)
}

// Delete removes a campaign; only its creator or an elevated actor may.
func (s *DonationService) Delete(ctx context.Context, actor *auth.Principal, id int64) error {
	donation, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if donation.CreatedBy != actor.ID && !actor.Role.Elevated() {
		return apperrors.NewForbidden(msgDonationDeleteDenied)
	}
	return s.repo.Delete(ctx, id)
}

// ConfirmPayment records a contribution to an active campaign.
func (s *DonationService) ConfirmPayment(ctx context.Context, actor *auth.Principal, donationID int64, amount float64) (*domain.DonationPayment, error) {
	donation, err := s.Get(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if !donation.Active(time.Now()) {
		return nil, apperrors.NewDomainError("VALIDATION_FAILED", msgDonationClosed, 400)
	}

	payment := &domain.DonationPayment{
		DonationID: donationID,
		UserID:     actor.ID,
		Amount:     amount,
	}
	if err := s.repo.RecordPayment(ctx, payment); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventDonationPaymentMade,
			ActorID:   actor.ID,
			Timestamp: time.Now(),
			Payload: events.DonationPaymentMadePayload{
				DonationID: donation.ID,
				CreatorID:  donation.CreatedBy,
				Title:      donation.Title,
				Amount:     amount,
			},
		})
	}
	return payment, nil
}

// Applicants lists everyone who contributed to the campaign.
func (s *DonationService) Applicants(ctx context.Context, donationID int64) ([]domain.Applicant, error) {
	if _, err := s.Get(ctx, donationID); err != nil {
		return nil, err
	}
	return s.repo.ListApplicants(ctx, donationID)
}
