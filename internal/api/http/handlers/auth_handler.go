package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bakery-crew/internal/api/dto"
	"github.com/spec-kit/bakery-crew/internal/auth"
	"github.com/spec-kit/bakery-crew/internal/config"
	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/internal/service"
	apperrors "github.com/spec-kit/bakery-crew/pkg/util"
)

const tokenCookieMaxAge = 30 * 24 * 60 * 60

// AuthHandler exposes registration, login and account endpoints.
type AuthHandler struct {
	auth *service.AuthService
	app  config.AppConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, app config.AppConfig) *AuthHandler {
	return &AuthHandler{auth: authService, app: app}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError([]apperrors.FieldError{{Msg: "Invalid request body", Path: "body"}})
	}
	if fields := req.Validate(); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	shift := domain.Shift(req.Shift)
	input := service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Shift:    &shift,
		Role:     domain.Role(req.Role),
	}
	user, err := h.auth.Register(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"msg":  "User registered successfully. Awaiting approval.",
		"user": dto.NewRegisteredUser(user),
	})
}

// Login handles POST /api/login. On success it sets the token cookie; the
// raw token is echoed in the body outside production for client convenience.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError([]apperrors.FieldError{{Msg: "Invalid request body", Path: "body"}})
	}
	if fields := req.Validate(); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	_, token, _, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.TokenCookie,
		Value:    token,
		HTTPOnly: true,
		MaxAge:   tokenCookieMaxAge,
		SameSite: fiber.CookieSameSiteNoneMode,
		Secure:   h.app.Production(),
	})

	if h.app.Production() {
		return c.JSON(fiber.Map{"msg": "Login successful"})
	}
	return c.JSON(fiber.Map{"msg": "Login successful", "token": token})
}

// Logout handles DELETE /api/logout. Purely a client instruction: the
// credential stays valid until its expiry.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context()); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     auth.TokenCookie,
		Value:    "",
		HTTPOnly: true,
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		SameSite: fiber.CookieSameSiteNoneMode,
		Secure:   h.app.Production(),
	})
	return c.JSON(fiber.Map{"msg": "Logout successful"})
}

// Me handles GET /api/protected.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	user, err := h.auth.GetProfile(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserProfile(user))
}

// UpdateMe handles PATCH /api/users/me.
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError([]apperrors.FieldError{{Msg: "Invalid request body", Path: "body"}})
	}
	if fields := req.Validate(); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	var shift *domain.Shift
	if req.Shift != nil {
		s := domain.Shift(*req.Shift)
		shift = &s
	}
	user, err := h.auth.UpdateProfile(c.Context(), principal.ID, req.Name, req.Phone, shift)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserProfile(user))
}

// Delete handles DELETE /api/users/:id.
func (h *AuthHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.auth.DeleteUser(c.Context(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"msg": "User deleted successfully",
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError([]apperrors.FieldError{{Msg: "Invalid id", Path: name}})
	}
	return id, nil
}
