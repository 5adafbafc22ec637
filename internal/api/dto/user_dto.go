package dto

import "github.com/spec-kit/bakery-crew/internal/domain"

// RegisteredUser is the registration response's user shape.
type RegisteredUser struct {
	ID                int64         `json:"id"`
	Name              string        `json:"name"`
	Email             string        `json:"email"`
	Phone             *string       `json:"phone"`
	Shift             *domain.Shift `json:"shift"`
	Role              domain.Role   `json:"role"`
	IsApproved        bool          `json:"isApproved"`
	AssignedManagerID *int64        `json:"assignedManagerId"`
}

// NewRegisteredUser maps a directory record to the registration response.
func NewRegisteredUser(user *domain.User) RegisteredUser {
	return RegisteredUser{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		Phone:             user.Phone,
		Shift:             user.Shift,
		Role:              user.Role,
		IsApproved:        user.Approved,
		AssignedManagerID: user.ManagerID,
	}
}

// UserProfile is the profile shape used by the protected, update and listing
// endpoints.
type UserProfile struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      *string       `json:"phone"`
	Role       domain.Role   `json:"role"`
	Shift      *domain.Shift `json:"shift"`
	IsApproved bool          `json:"isApproved"`
	ManagerID  *int64        `json:"managerId"`
}

// NewUserProfile maps a directory record to the profile shape.
func NewUserProfile(user *domain.User) UserProfile {
	return UserProfile{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Role:       user.Role,
		Shift:      user.Shift,
		IsApproved: user.Approved,
		ManagerID:  user.ManagerID,
	}
}

// NewUserProfiles maps a directory listing.
func NewUserProfiles(users []domain.User) []UserProfile {
	result := make([]UserProfile, 0, len(users))
	for i := range users {
		result = append(result, NewUserProfile(&users[i]))
	}
	return result
}
