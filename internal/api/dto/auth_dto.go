package dto

import (
	"net/mail"

	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/pkg/util"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
	Shift    string  `json:"shift"`
	Role     string  `json:"role"`
}

// Validate checks the payload and reports every failure. The message
// strings match what clients already depend on.
func (r RegisterRequest) Validate() []util.FieldError {
	var fields []util.FieldError
	if r.Name == "" {
		fields = append(fields, util.FieldError{Msg: "Name is required", Path: "name"})
	}
	if !validEmail(r.Email) {
		fields = append(fields, util.FieldError{Msg: "Valid email is required", Path: "email"})
	}
	if len(r.Password) < 6 {
		fields = append(fields, util.FieldError{Msg: "Password must be at least 6 characters", Path: "password"})
	}
	if !domain.ValidShift(r.Shift) {
		fields = append(fields, util.FieldError{Msg: "Valid shift is required", Path: "shift"})
	}
	if r.Role != "" {
		switch domain.Role(r.Role) {
		case domain.RoleUser, domain.RoleManager, domain.RoleDeveloper:
		default:
			fields = append(fields, util.FieldError{Msg: "Invalid role", Path: "role"})
		}
	}
	return fields
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the payload.
func (r LoginRequest) Validate() []util.FieldError {
	var fields []util.FieldError
	if r.Email == "" {
		fields = append(fields, util.FieldError{Msg: "Email is required", Path: "email"})
	} else if !validEmail(r.Email) {
		fields = append(fields, util.FieldError{Msg: "Valid email is required", Path: "email"})
	}
	if r.Password == "" {
		fields = append(fields, util.FieldError{Msg: "Password is required", Path: "password"})
	}
	return fields
}

// UpdateProfileRequest payload for PATCH /api/users/me.
type UpdateProfileRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Shift *string `json:"shift"`
}

// Validate checks the payload.
func (r UpdateProfileRequest) Validate() []util.FieldError {
	var fields []util.FieldError
	if r.Name == "" {
		fields = append(fields, util.FieldError{Msg: "Name is required", Path: "name"})
	}
	if r.Shift != nil && !domain.ValidShift(*r.Shift) {
		fields = append(fields, util.FieldError{Msg: "Valid shift is required", Path: "shift"})
	}
	return fields
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
