package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bakery-crew/internal/api/dto"
	"github.com/spec-kit/bakery-crew/internal/service"
	apperrors "github.com/spec-kit/bakery-crew/pkg/util"
)

// AdminHandler exposes the elevated-role endpoints. The route group is
// already gated behind auth.RequireElevated.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// Approve handles PATCH /api/admin/users/:id/approve.
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.admin.ApproveUser(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"msg":  "User approved successfully",
		"user": dto.NewUserProfile(user),
	})
}

// AssignManager handles PATCH /api/admin/users/:id/assign-manager.
func (h *AdminHandler) AssignManager(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AssignManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError([]apperrors.FieldError{{Msg: "Invalid request body", Path: "body"}})
	}
	if fields := req.Validate(); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	user, err := h.admin.AssignManager(c.Context(), id, *req.ManagerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"msg":  "Manager assigned successfully",
		"user": dto.NewUserProfile(user),
	})
}

// RevokeManager handles PATCH /api/admin/users/:id/revoke-manager.
func (h *AdminHandler) RevokeManager(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.admin.RevokeManager(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"msg":  "Manager revoked successfully",
		"user": dto.NewUserProfile(user),
	})
}

// Pending handles GET /api/admin/users/pending.
func (h *AdminHandler) Pending(c *fiber.Ctx) error {
	users, err := h.admin.ListPending(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"users": dto.NewUserProfiles(users)})
}
