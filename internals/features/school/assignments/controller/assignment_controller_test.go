package controller

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/assignments/repository"
	"schooldesk_backend/internals/features/school/assignments/service"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

func newApp(role string) *fiber.App {
	ctl := &AssignmentController{Svc: service.NewAssignmentService(repository.NewMemoryAssignmentRepository(), nil)}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocRole, role)
		return c.Next()
	})
	app.Get("/assignments", ctl.List)
	app.Post("/assignments", ctl.Create)
	return app
}

func listCount(t *testing.T, app *fiber.App, url string) int {
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(raw, &body))
	require.NotNil(t, body.Data)
	return len(body.Data)
}

func TestListByRole(t *testing.T) {
	app := newApp(constants.RoleTeacher)
	req := httptest.NewRequest("POST", "/assignments",
		strings.NewReader(`{"title":"Read ch.1","assignmentDate":"2024-05-10"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	assert.Equal(t, 1, listCount(t, app, "/assignments?date=2020-01-01"))

	// app siswa: repo baru, hanya cek filter tanggal kosong tetap []
	student := newApp(constants.RoleStudent)
	assert.Equal(t, 0, listCount(t, student, "/assignments?date=2024-05-10"))

	resp, _ = app.Test(httptest.NewRequest("GET", "/assignments?date=10-05-2024", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateValidation(t *testing.T) {
	app := newApp(constants.RoleTeacher)
	req := httptest.NewRequest("POST", "/assignments", strings.NewReader(`{"description":"no title"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
