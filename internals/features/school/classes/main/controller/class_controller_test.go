package controller

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/features/school/classes/main/model"
	"schooldesk_backend/internals/features/school/classes/main/repository"
	"schooldesk_backend/internals/features/school/classes/main/service"
	helper "schooldesk_backend/internals/helpers"
)

func newTestApp(seed ...model.ClassModel) *fiber.App {
	ctl := &ClassController{Svc: service.NewClassService(repository.NewMemoryClassRepository(seed...), nil)}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Get("/classes", ctl.List)
	app.Get("/classes/:id", ctl.GetByID)
	app.Post("/classes", ctl.Create)
	return app
}

func TestClassHandlers(t *testing.T) {
	app := newTestApp(model.ClassModel{Name: "Grade 5", Section: "C"})

	resp, err := app.Test(httptest.NewRequest("GET", "/classes", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var list struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(body, &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Grade 5", list.Data[0]["name"])
	assert.Contains(t, list.Data[0], "createdAt")

	resp, _ = app.Test(httptest.NewRequest("GET", "/classes/"+uuid.NewString(), nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest("GET", "/classes/not-a-uuid", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest("POST", "/classes", strings.NewReader(`{"name":"","capacity":10}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	req = httptest.NewRequest("POST", "/classes", strings.NewReader(`{"name":"Grade 6","section":"A","capacity":40}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
