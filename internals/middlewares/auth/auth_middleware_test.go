package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/constants"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

const secret = "mw-test-secret"

func newApp(bl helperAuth.Blacklist) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(Config{Secret: secret, Blacklist: bl}))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(helperAuth.LocUserID).(string) + "|" + helperAuth.GetRoleFromLocals(c))
	})
	app.Get("/admin", AtLeast(constants.RoleAdmin, "admin only"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/staff", OnlyRoles("staff only", constants.TeacherAndAbove...), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func token(t *testing.T, role string) (string, uuid.UUID) {
	t.Helper()
	uid := uuid.New()
	raw, _, err := helperAuth.IssueAccessToken(secret, uid, role, "x@school.test", time.Now(), time.Hour)
	require.NoError(t, err)
	return raw, uid
}

func TestAuthMiddleware(t *testing.T) {
	bl := helperAuth.NewMemoryBlacklist(secret)
	app := newApp(bl)

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	raw, uid := token(t, constants.RoleTeacher)
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, uid.String()+"|TEACHER", string(body))

	// cookie juga diterima
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", "access_token="+raw)
	resp, _ = app.Test(req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, bl.Add(context.Background(), raw, time.Now().Add(time.Hour)))
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	resp, _ = app.Test(req)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRoleMiddlewares(t *testing.T) {
	app := newApp(nil)
	cases := []struct {
		role   string
		path   string
		status int
	}{
		{constants.RoleAdmin, "/admin", fiber.StatusOK},
		{constants.RoleTeacher, "/admin", fiber.StatusForbidden},
		{constants.RoleTeacher, "/staff", fiber.StatusOK},
		{constants.RoleStudent, "/staff", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		raw, _ := token(t, tc.role)
		req := httptest.NewRequest("GET", tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "%s %s", tc.role, tc.path)
	}
}
