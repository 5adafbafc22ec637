package dto

import "github.com/spec-kit/bakery-crew/pkg/util"

// AssignManagerRequest payload for PATCH /api/admin/users/:id/assign-manager.
type AssignManagerRequest struct {
	ManagerID *int64 `json:"managerId"`
}

// Validate checks the payload.
func (r AssignManagerRequest) Validate() []util.FieldError {
	var fields []util.FieldError
	if r.ManagerID == nil {
		fields = append(fields, util.FieldError{Msg: "Manager ID is required", Path: "managerId"})
	}
	return fields
}
