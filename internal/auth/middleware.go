package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/internal/repository"
	apperrors "github.com/spec-kit/bakery-crew/pkg/util"
)

const principalKey = "auth_principal"

// Cookie name the login flow sets and the resolver falls back to.
const TokenCookie = "token"

// Client-facing rejection messages. These strings are part of the API
// contract and must not drift.
const (
	MsgNoToken      = "Access denied. No token provided."
	MsgInvalidToken = "Invalid or expired token."
)

// Principal is the authenticated identity attached to a request. By default
// it reflects directory state at credential issuance, not current state.
type Principal struct {
	ID        int64
	Email     string
	Role      domain.Role
	Shift     *domain.Shift
	ManagerID *int64
}

// SessionResolver extracts a raw credential from the request, decodes it,
// and attaches the resulting principal. Carrier precedence is fixed: the
// Authorization header wins over the token cookie, so a request with a valid
// header and a stale cookie still succeeds.
type SessionResolver struct {
	tokens *TokenManager
	users  repository.UserRepository
	strict bool
}

// NewSessionResolver constructs the resolver. When strict is true the
// principal is re-resolved against the directory on every request instead of
// trusting the credential snapshot.
func NewSessionResolver(tokens *TokenManager, users repository.UserRepository, strict bool) *SessionResolver {
	return &SessionResolver{tokens: tokens, users: users, strict: strict}
}

// Handle enforces authentication for protected routes.
func (m *SessionResolver) Handle(c *fiber.Ctx) error {
	raw := ""
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		raw = strings.TrimPrefix(header, "Bearer ")
	}
	if raw == "" {
		raw = c.Cookies(TokenCookie)
	}
	if raw == "" {
		return apperrors.NewUnauthorized(MsgNoToken)
	}

	claims, err := m.tokens.Parse(raw)
	if err != nil {
		return apperrors.NewForbidden(MsgInvalidToken)
	}

	principal := &Principal{
		ID:        claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		Shift:     claims.Shift,
		ManagerID: claims.ManagerID,
	}

	if m.strict {
		user, err := m.users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewForbidden(MsgInvalidToken)
			}
			return apperrors.MapError(err)
		}
		principal = &Principal{
			ID:        user.ID,
			Email:     user.Email,
			Role:      user.Role,
			Shift:     user.Shift,
			ManagerID: user.ManagerID,
		}
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
