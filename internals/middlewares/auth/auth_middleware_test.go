package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkubator_backend/internals/constants"
	authModel "inkubator_backend/internals/features/users/auth/model"
	authService "inkubator_backend/internals/features/users/auth/service"
)

type fakeResolver struct {
	users map[string]*authModel.UserModel
	err   error
}

func (f *fakeResolver) ResolveAccessToken(_ context.Context, token string) (*authModel.UserModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[token]
	if !ok {
		return nil, authService.ErrInvalidIDToken
	}
	return u, nil
}

func newTestApp(resolver TokenResolver) *fiber.App {
	app := fiber.New()
	app.Get("/admin", AuthMiddleware(resolver), OnlyRoles("admin only", constants.RoleAdmin), func(c *fiber.Ctx) error {
		id, err := GetUserID(c)
		if err != nil {
			return err
		}
		return c.SendString(id.String() + "|" + GetRole(c))
	})
	return app
}

func decodeDetail(t *testing.T, body io.Reader) string {
	t.Helper()
	var out struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out.Detail
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	app := newTestApp(&fakeResolver{})
	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, decodeDetail(t, resp.Body), "no token")
}

func TestAuthMiddleware_AdminPasses(t *testing.T) {
	admin := &authModel.UserModel{ID: uuid.New(), Role: constants.RoleAdmin, IsActive: true}
	app := newTestApp(&fakeResolver{users: map[string]*authModel.UserModel{"tok-admin": admin}})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer   tok-admin")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, admin.ID.String()+"|ADMIN", string(body))
}

func TestAuthMiddleware_TenantForbidden(t *testing.T) {
	tenant := &authModel.UserModel{ID: uuid.New(), Role: constants.RoleTenant, IsActive: true}
	app := newTestApp(&fakeResolver{users: map[string]*authModel.UserModel{"tok": tenant}})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "admin only", decodeDetail(t, resp.Body))
}

func TestAuthMiddleware_InactiveAccount(t *testing.T) {
	app := newTestApp(&fakeResolver{err: authService.ErrAccountInactive})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_InvalidFormat(t *testing.T) {
	app := newTestApp(&fakeResolver{})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, decodeDetail(t, resp.Body), "invalid token format")
}
