package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bakery-crew/internal/api/dto"
	"github.com/spec-kit/bakery-crew/internal/auth"
	"github.com/spec-kit/bakery-crew/internal/service"
	apperrors "github.com/spec-kit/bakery-crew/pkg/util"
)

// DonationsHandler exposes donation campaign endpoints.
type DonationsHandler struct {
	donations *service.DonationService
}

// NewDonationsHandler constructs handler.
func NewDonationsHandler(donationService *service.DonationService) *DonationsHandler {
	return &DonationsHandler{donations: donationService}
}

// Create handles POST /api/donations.
func (h *DonationsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}

	var req dto.CreateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError([]apperrors.FieldError{{Msg: "Invalid request body", Path: "body"}})
	}
	if fields := req.Validate(); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	donation, err := h.donations.Create(c.Context(), principal, service.DonationCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.ParsedDeadline(),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"msg":      "Donation campaign created successfully",
		"donation": dto.NewDonationResponse(donation),
	})
}

// ListActive handles GET /api/donations/active.
func (h *DonationsHandler) ListActive(c *fiber.Ctx) error {
	donations, err := h.donations.ListActive(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"donations": dto.NewDonationResponses(donations)})
}

// List handles GET /api/donations.
func (h *DonationsHandler) List(c *fiber.Ctx) error {
	donations, err := h.donations.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"donations": dto.NewDonationResponses(donations)})
}

// Get handles GET /api/donations/:donationId.
func (h *DonationsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "donationId")
	if err != nil {
		return err
	}
	donation, err := h.donations.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"donation": dto.NewDonationResponse(donation)})
}

// ConfirmPayment handles POST /api/donations/:donationId/confirm-payment.
func (h *DonationsHandler) ConfirmPayment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	id, err := parseID(c, "donationId")
	if err != nil {
		return err
	}

	var req dto.ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError([]apperrors.FieldError{{Msg: "Invalid request body", Path: "body"}})
	}
	if fields := req.Validate(); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	payment, err := h.donations.ConfirmPayment(c.Context(), principal, id, *req.Amount)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"msg":     "Payment confirmed successfully",
		"payment": dto.NewPaymentResponse(payment),
	})
}

// Applicants handles GET /api/donations/:donationId/applicants.
func (h *DonationsHandler) Applicants(c *fiber.Ctx) error {
	id, err := parseID(c, "donationId")
	if err != nil {
		return err
	}
	applicants, err := h.donations.Applicants(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applicants": dto.NewApplicantResponses(applicants)})
}

// Delete handles DELETE /api/donations/:donationId.
func (h *DonationsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	id, err := parseID(c, "donationId")
	if err != nil {
		return err
	}
	if err := h.donations.Delete(c.Context(), principal, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "Donation deleted successfully"})
}
