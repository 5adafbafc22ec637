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

// MessagesHandler exposes the messaging endpoints.
type MessagesHandler struct {
	messages *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{messages: messageService}
}

// Send handles POST /api/messages.
func (h *MessagesHandler) Send(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError([]apperrors.FieldError{{Msg: "Invalid request body", Path: "body"}})
	}
	if fields := req.Validate(); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	msg, err := h.messages.Send(c.Context(), principal, *req.RecipientID, req.Content, domain.MessageType(req.MessageType))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"msg":     "Message sent successfully.",
		"message": dto.NewMessageResponse(msg),
	})
}

// Inbox handles GET /api/messages/inbox.
func (h *MessagesHandler) Inbox(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	msgs, err := h.messages.Inbox(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"inbox": dto.NewMessageResponses(msgs)})
}

// Sent handles GET /api/messages/sent.
func (h *MessagesHandler) Sent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	msgs, err := h.messages.Sent(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"sent": dto.NewMessageResponses(msgs)})
}

// Get handles GET /api/messages/:id. Only the sender or receiver can see a
// message; anyone else gets the same 404 as a missing row.
func (h *MessagesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	msg, err := h.messages.Get(c.Context(), id, principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": dto.NewMessageResponse(msg)})
}

// MarkRead handles PATCH /api/messages/:id/read.
func (h *MessagesHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	msg, err := h.messages.MarkRead(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"updated": dto.NewMessageResponse(msg),
	})
}
