package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bakery-crew/internal/auth"
	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/internal/events"
)

func TestDonationCreateRequiresManagerOrElevated(t *testing.T) {
	svc := NewDonationService(newFakeDonationRepo(), nil)

	_, err := svc.Create(context.Background(), &auth.Principal{ID: 20, Role: domain.RoleUser}, DonationCreateInput{Title: "New Oven Fund"})
	requireDomainErr(t, err, 403, msgDonationCreateDenied)

	donation, err := svc.Create(context.Background(), &auth.Principal{ID: 7, Role: domain.RoleManager}, DonationCreateInput{Title: "New Oven Fund"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), donation.CreatedBy)
}

func TestConfirmPaymentRejectsExpiredCampaign(t *testing.T) {
	svc := NewDonationService(newFakeDonationRepo(), events.NewInMemoryDispatcher())
	manager := &auth.Principal{ID: 7, Role: domain.RoleManager}

	past := time.Now().Add(-time.Hour)
	expired, err := svc.Create(context.Background(), manager, DonationCreateInput{Title: "Closed Fund", Deadline: &past})
	require.NoError(t, err)

	payer := &auth.Principal{ID: 20, Role: domain.RoleUser}
	_, err = svc.ConfirmPayment(context.Background(), payer, expired.ID, 25)
	requireDomainErr(t, err, 400, msgDonationClosed)

	future := time.Now().Add(24 * time.Hour)
	open, err := svc.Create(context.Background(), manager, DonationCreateInput{Title: "Open Fund", Deadline: &future})
	require.NoError(t, err)

	payment, err := svc.ConfirmPayment(context.Background(), payer, open.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(20), payment.UserID)
	assert.Equal(t, 25.0, payment.Amount)

	_, err = svc.ConfirmPayment(context.Background(), payer, 9999, 25)
	requireDomainErr(t, err, 404, msgDonationNotFound)
}

func TestDonationListActiveFiltersExpired(t *testing.T) {
	svc := NewDonationService(newFakeDonationRepo(), nil)
	manager := &auth.Principal{ID: 7, Role: domain.RoleManager}

	past := time.Now().Add(-time.Hour)
	_, err := svc.Create(context.Background(), manager, DonationCreateInput{Title: "Closed", Deadline: &past})
	require.NoError(t, err)
	open, err := svc.Create(context.Background(), manager, DonationCreateInput{Title: "Evergreen"})
	require.NoError(t, err)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, open.ID, active[0].ID)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDonationDeleteCreatorOrElevated(t *testing.T) {
	svc := NewDonationService(newFakeDonationRepo(), nil)
	creator := &auth.Principal{ID: 7, Role: domain.RoleManager}
	donation, err := svc.Create(context.Background(), creator, DonationCreateInput{Title: "Fund"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), &auth.Principal{ID: 8, Role: domain.RoleManager}, donation.ID)
	requireDomainErr(t, err, 403, msgDonationDeleteDenied)

	require.NoError(t, svc.Delete(context.Background(), &auth.Principal{ID: 1, Role: domain.RoleAdmin}, donation.ID))
}

func TestDonationApplicantsDeduplicates(t *testing.T) {
	svc := NewDonationService(newFakeDonationRepo(), nil)
	manager := &auth.Principal{ID: 7, Role: domain.RoleManager}
	donation, err := svc.Create(context.Background(), manager, DonationCreateInput{Title: "Fund"})
	require.NoError(t, err)

	payer := &auth.Principal{ID: 20, Role: domain.RoleUser}
	_, err = svc.ConfirmPayment(context.Background(), payer, donation.ID, 10)
	require.NoError(t, err)
	_, err = svc.ConfirmPayment(context.Background(), payer, donation.ID, 15)
	require.NoError(t, err)

	applicants, err := svc.Applicants(context.Background(), donation.ID)
	require.NoError(t, err)
	assert.Len(t, applicants, 1)
}
