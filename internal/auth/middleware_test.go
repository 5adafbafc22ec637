package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bakery-crew/internal/domain"
	apperrors "github.com/spec-kit/bakery-crew/pkg/util"
)

// staticUserRepo serves a fixed set of users; only GetByID matters here.
type staticUserRepo struct {
	users map[int64]*domain.User
}

func (r *staticUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *staticUserRepo) Create(context.Context, *domain.User) error { return errors.New("unused") }
func (r *staticUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (r *staticUserRepo) FindManagerByShift(context.Context, domain.Shift) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (r *staticUserRepo) UpdateProfile(context.Context, *domain.User) error    { return nil }
func (r *staticUserRepo) UpdateApproval(context.Context, int64) error          { return nil }
func (r *staticUserRepo) UpdateManager(context.Context, int64, *int64) error   { return nil }
func (r *staticUserRepo) Delete(context.Context, int64) (*domain.User, error)  { return nil, pgx.ErrNoRows }
func (r *staticUserRepo) List(context.Context) ([]domain.User, error)          { return nil, nil }
func (r *staticUserRepo) ListPending(context.Context) ([]domain.User, error)   { return nil, nil }

func newResolverApp(resolver *SessionResolver) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"msg": domainErr.Message})
		},
	})
	app.Get("/protected", resolver.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return errors.New("principal missing")
		}
		return c.JSON(fiber.Map{"id": principal.ID, "role": principal.Role})
	})
	return app
}

func decodeMsg(t *testing.T, resp *nethttp.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Msg
}

func TestSessionResolverRejectsMissingToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 30)
	app := newResolverApp(NewSessionResolver(tm, &staticUserRepo{}, false))

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, MsgNoToken, decodeMsg(t, resp))
}

func TestSessionResolverRejectsInvalidToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 30)
	app := newResolverApp(NewSessionResolver(tm, &staticUserRepo{}, false))

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, MsgInvalidToken, decodeMsg(t, resp))
}

func TestSessionResolverAcceptsCookie(t *testing.T) {
	tm := NewTokenManager(testSecret, 30)
	app := newResolverApp(NewSessionResolver(tm, &staticUserRepo{}, false))

	token, _, err := tm.Issue(&domain.User{ID: 11, Email: "c@bakery.test", Role: domain.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	req.AddCookie(&nethttp.Cookie{Name: TokenCookie, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

// A valid Authorization header wins even when the cookie carries a stale
// credential.
func TestSessionResolverHeaderWinsOverCookie(t *testing.T) {
	tm := NewTokenManager(testSecret, 30)
	app := newResolverApp(NewSessionResolver(tm, &staticUserRepo{}, false))

	token, _, err := tm.Issue(&domain.User{ID: 11, Email: "c@bakery.test", Role: domain.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	req.AddCookie(&nethttp.Cookie{Name: TokenCookie, Value: "stale-garbage"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

// And an invalid header is not papered over by a valid cookie.
func TestSessionResolverInvalidHeaderNotRescuedByCookie(t *testing.T) {
	tm := NewTokenManager(testSecret, 30)
	app := newResolverApp(NewSessionResolver(tm, &staticUserRepo{}, false))

	token, _, err := tm.Issue(&domain.User{ID: 11, Email: "c@bakery.test", Role: domain.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer tampered")
	req.AddCookie(&nethttp.Cookie{Name: TokenCookie, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
}

func TestSessionResolverStrictModeRefreshesPrincipal(t *testing.T) {
	tm := NewTokenManager(testSecret, 30)
	shift := domain.ShiftFirst
	repo := &staticUserRepo{users: map[int64]*domain.User{
		11: {ID: 11, Email: "c@bakery.test", Role: domain.RoleManager, Shift: &shift},
	}}
	app := newResolverApp(NewSessionResolver(tm, repo, true))

	// Credential still says user; the directory has since promoted them.
	token, _, err := tm.Issue(&domain.User{ID: 11, Email: "c@bakery.test", Role: domain.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload struct {
		Role domain.Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, domain.RoleManager, payload.Role)
}

func TestSessionResolverStrictModeRejectsDeletedAccount(t *testing.T) {
	tm := NewTokenManager(testSecret, 30)
	app := newResolverApp(NewSessionResolver(tm, &staticUserRepo{}, true))

	token, _, err := tm.Issue(&domain.User{ID: 404, Email: "gone@bakery.test", Role: domain.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, MsgInvalidToken, decodeMsg(t, resp))
}
