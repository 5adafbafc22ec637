package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bakery-crew/internal/api/dto"
	"github.com/spec-kit/bakery-crew/internal/auth"
	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/internal/service"
	apperrors "github.com/spec-kit/bakery-crew/pkg/util"
)

// EventsHandler exposes organization event endpoints.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{events: eventService}
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError([]apperrors.FieldError{{Msg: "Invalid request body", Path: "body"}})
	}
	if fields := req.Validate(); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	event, err := h.events.Create(c.Context(), principal, service.EventCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.ParsedDate(),
		Shift:       domain.Shift(req.Shift),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"msg":   "Event created successfully",
		"event": dto.NewEventResponse(event),
	})
}

// List handles GET /api/events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	eventList, err := h.events.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": dto.NewEventResponses(eventList)})
}

// Get handles GET /api/events/:eventId.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "eventId")
	if err != nil {
		return err
	}
	event, err := h.events.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"event": dto.NewEventResponse(event)})
}

// Delete handles DELETE /api/events/:eventId.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	id, err := parseID(c, "eventId")
	if err != nil {
		return err
	}
	if err := h.events.Delete(c.Context(), principal, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "Event deleted successfully"})
}

// Apply handles POST /api/events/:eventId/apply.
func (h *EventsHandler) Apply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	id, err := parseID(c, "eventId")
	if err != nil {
		return err
	}

	app, err := h.events.Apply(c.Context(), principal, id)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"msg": "Applied to event successfully",
		"application": fiber.Map{
			"id":        app.ID,
			"eventId":   app.EventID,
			"userId":    app.UserID,
			"appliedAt": app.AppliedAt,
		},
	})
}

// CancelApplication handles DELETE /api/events/:eventId/cancel.
func (h *EventsHandler) CancelApplication(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	id, err := parseID(c, "eventId")
	if err != nil {
		return err
	}
	if err := h.events.CancelApplication(c.Context(), principal, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "Application cancelled successfully"})
}

// Applicants handles GET /api/events/:eventId/applicants.
func (h *EventsHandler) Applicants(c *fiber.Ctx) error {
	id, err := parseID(c, "eventId")
	if err != nil {
		return err
	}
	applicants, err := h.events.Applicants(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applicants": dto.NewApplicantResponses(applicants)})
}
