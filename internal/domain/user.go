package domain

import "time"

// Role enumerates account roles. Admin and developer form the elevated
// class allowed to run administrative actions.
type Role string

const (
	RoleUser      Role = "user"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

// Elevated reports whether the role may approve accounts and manage
// manager assignments.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleDeveloper
}

// Shift is a scheduling group used to scope manager-user messaging.
type Shift string

const (
	ShiftFirst  Shift = "1st"
	ShiftSecond Shift = "2nd"
	ShiftNight  Shift = "night"
)

// ValidShift reports whether s names a known shift.
func ValidShift(s string) bool {
	switch Shift(s) {
	case ShiftFirst, ShiftSecond, ShiftNight:
		return true
	}
	return false
}

// User is the directory record for a crew member. ManagerID, when set on a
// user-role account, references a manager-role account sharing the same shift.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Role         Role
	Shift        *Shift
	Approved     bool
	ManagerID    *int64
	CreatedAt    time.Time
}
