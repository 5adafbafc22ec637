package auth

import (
	"github.com/spec-kit/bakery-crew/internal/domain"
	apperrors "github.com/spec-kit/bakery-crew/pkg/util"
)

// Messaging and administration denial messages, part of the API contract.
const (
	MsgRecipientNotFound = "Recipient not found."
	MsgUserMessageRule   = "Users can only message their assigned manager."
	MsgManagerShiftRule  = "Managers can only message users in their shift."
	MsgAdminRequired     = "Access denied. Admin privileges required."
	MsgDeleteForbidden   = "Access denied. You do not have permission to delete this user"
)

// CanMessage decides whether sender may message recipient. The rule is
// evaluated against the recipient's current directory record, never against
// a cached claim about the recipient:
//   - a user's only legitimate counterpart is their assigned manager,
//   - a manager's reach is bounded to user-role accounts on their own shift,
//   - elevated roles are unrestricted.
//
// Returns nil when allowed, a typed DomainError otherwise.
func CanMessage(sender *Principal, recipient *domain.User) error {
	if recipient == nil {
		return apperrors.NewNotFound(MsgRecipientNotFound)
	}

	switch sender.Role {
	case domain.RoleUser:
		if sender.ManagerID == nil || recipient.ID != *sender.ManagerID {
			return apperrors.NewForbidden(MsgUserMessageRule)
		}
	case domain.RoleManager:
		if recipient.Role != domain.RoleUser || !sameShift(sender.Shift, recipient.Shift) {
			return apperrors.NewForbidden(MsgManagerShiftRule)
		}
	}
	return nil
}

// CanAdminister gates approve, assign-manager, revoke-manager and the
// pending-users listing behind the elevated role class.
func CanAdminister(actor *Principal) error {
	if !actor.Role.Elevated() {
		return apperrors.NewForbidden(MsgAdminRequired)
	}
	return nil
}

// CanDelete allows an elevated actor to delete anyone, and every account to
// delete itself.
func CanDelete(actor *Principal, target *domain.User) error {
	if actor.Role.Elevated() || actor.ID == target.ID {
		return nil
	}
	return apperrors.NewForbidden(MsgDeleteForbidden)
}

// ValidManagerFor checks the directory invariant behind a manager
// assignment: the manager must hold the manager role, share the target's
// shift, and never be the target itself.
func ValidManagerFor(target, manager *domain.User) bool {
	return target.ID != manager.ID &&
		manager.Role == domain.RoleManager &&
		sameShift(target.Shift, manager.Shift)
}

func sameShift(a, b *domain.Shift) bool {
	return a != nil && b != nil && *a == *b
}
