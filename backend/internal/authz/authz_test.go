package authz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	role Role
	err  error
}

func (s *stubResolver) ResolveRole(_ context.Context, _ uuid.UUID) (Role, error) {
	return s.role, s.err
}

func setupApp(resolver RoleResolver, userID interface{}) *fiber.App {
	app := fiber.New()
	app.Get("/admin", func(c *fiber.Ctx) error {
		if userID != nil {
			c.Locals("userID", userID)
		}
		return c.Next()
	}, RequireAdmin(resolver), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	app := setupApp(&stubResolver{role: RoleAdmin}, uuid.New())
	resp := doGet(t, app)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdminRejectsOrdinaryUser(t *testing.T) {
	app := setupApp(&stubResolver{role: RoleUser}, uuid.New())
	resp := doGet(t, app)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Resolution failures must never fail open.
func TestRequireAdminFailsClosedOnResolverError(t *testing.T) {
	app := setupApp(&stubResolver{err: errors.New("role store unavailable")}, uuid.New())
	resp := doGet(t, app)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAdminRejectsMissingIdentity(t *testing.T) {
	app := setupApp(&stubResolver{role: RoleAdmin}, nil)
	resp := doGet(t, app)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
