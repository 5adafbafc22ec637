package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/internal/events"
)

func TestApproveUser(t *testing.T) {
	repo := newFakeUserRepo()
	pending := repo.add(domain.User{Name: "Pending", Email: "p@bakery.test", Role: domain.RoleUser})
	svc := NewAdminService(repo, events.NewInMemoryDispatcher())

	user, err := svc.ApproveUser(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.True(t, user.Approved)

	// Idempotent: approving twice is still a success.
	user, err = svc.ApproveUser(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.True(t, user.Approved)

	_, err = svc.ApproveUser(context.Background(), 9999)
	requireDomainErr(t, err, 404, "User not found")
}

func TestAssignManagerEnforcesInvariant(t *testing.T) {
	repo := newFakeUserRepo()
	target := repo.add(domain.User{Name: "Baker", Email: "b@bakery.test", Role: domain.RoleUser, Shift: shiftPtr(domain.ShiftNight), Approved: true})
	nightManager := repo.add(domain.User{Name: "NM", Email: "nm@bakery.test", Role: domain.RoleManager, Shift: shiftPtr(domain.ShiftNight), Approved: true})
	dayManager := repo.add(domain.User{Name: "DM", Email: "dm@bakery.test", Role: domain.RoleManager, Shift: shiftPtr(domain.ShiftFirst), Approved: true})
	plainUser := repo.add(domain.User{Name: "PU", Email: "pu@bakery.test", Role: domain.RoleUser, Shift: shiftPtr(domain.ShiftNight), Approved: true})
	svc := NewAdminService(repo, nil)

	updated, err := svc.AssignManager(context.Background(), target.ID, nightManager.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.ManagerID)
	assert.Equal(t, nightManager.ID, *updated.ManagerID)

	_, err = svc.AssignManager(context.Background(), target.ID, dayManager.ID)
	requireDomainErr(t, err, 400, MsgManagerInvalid)

	_, err = svc.AssignManager(context.Background(), target.ID, plainUser.ID)
	requireDomainErr(t, err, 400, MsgManagerInvalid)

	_, err = svc.AssignManager(context.Background(), 9999, nightManager.ID)
	requireDomainErr(t, err, 404, "User not found")

	_, err = svc.AssignManager(context.Background(), target.ID, 9999)
	requireDomainErr(t, err, 404, msgManagerNotFound)
}

func TestAssignManagerRejectsSelfAssignment(t *testing.T) {
	repo := newFakeUserRepo()
	manager := repo.add(domain.User{Name: "NM", Email: "nm@bakery.test", Role: domain.RoleManager, Shift: shiftPtr(domain.ShiftNight), Approved: true})
	svc := NewAdminService(repo, nil)

	_, err := svc.AssignManager(context.Background(), manager.ID, manager.ID)
	requireDomainErr(t, err, 400, MsgManagerInvalid)

	stored, getErr := repo.GetByID(context.Background(), manager.ID)
	require.NoError(t, getErr)
	assert.Nil(t, stored.ManagerID)
}

func TestRevokeManager(t *testing.T) {
	repo := newFakeUserRepo()
	manager := repo.add(domain.User{Name: "NM", Email: "nm@bakery.test", Role: domain.RoleManager, Shift: shiftPtr(domain.ShiftNight), Approved: true})
	target := repo.add(domain.User{Name: "Baker", Email: "b@bakery.test", Role: domain.RoleUser, Shift: shiftPtr(domain.ShiftNight), Approved: true, ManagerID: &manager.ID})
	svc := NewAdminService(repo, nil)

	updated, err := svc.RevokeManager(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.ManagerID)

	_, err = svc.RevokeManager(context.Background(), 9999)
	requireDomainErr(t, err, 404, "User not found")
}

func TestListPending(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(domain.User{Name: "A", Email: "a@bakery.test", Role: domain.RoleUser, Approved: true})
	pending := repo.add(domain.User{Name: "B", Email: "b@bakery.test", Role: domain.RoleUser})
	svc := NewAdminService(repo, nil)

	got, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)
}
