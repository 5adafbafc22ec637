package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/bakery-crew/pkg/util"
)

// RequireElevated gates a route group behind the admin/developer role class.
func RequireElevated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(MsgNoToken)
		}
		if err := CanAdminister(principal); err != nil {
			return err
		}
		return c.Next()
	}
}
