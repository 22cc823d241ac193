package controller

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/classwork/dto"
	"schooldesk_backend/internals/features/school/classwork/repository"
	"schooldesk_backend/internals/features/school/classwork/service"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	studentRepo "schooldesk_backend/internals/features/school/students/repository"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

func newApp(svc *service.ClassworkService, role, userID string) *fiber.App {
	ctl := &ClassworkController{Svc: svc}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocRole, role)
		if userID != "" {
			c.Locals(helperAuth.LocUserID, userID)
		}
		return c.Next()
	})
	app.Get("/classwork", ctl.List)
	app.Get("/classwork/:id", ctl.GetByID)
	app.Post("/classwork", ctl.Create)
	return app
}

func TestStudentCannotBrowseOtherClass(t *testing.T) {
	own, other := uuid.New(), uuid.New()
	userID := uuid.New()
	students := studentRepo.NewMemoryStudentRepository(
		studentModel.StudentModel{ID: uuid.New(), Name: "Ravi", ClassID: &own, UserID: &userID},
	)
	svc := service.NewClassworkService(repository.NewMemoryClassworkRepository(), students, nil)
	foreign, err := svc.Create(context.Background(), dto.ClassworkRequest{Title: "Maps", ClassID: other}, nil)
	require.NoError(t, err)

	app := newApp(svc, constants.RoleStudent, userID.String())

	resp, err := app.Test(httptest.NewRequest("GET", "/classwork?classId="+other.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest("GET", "/classwork/"+foreign.ID.String(), nil))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest("GET", "/classwork", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest("GET", "/classwork?classId=nope", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	anon := newApp(svc, constants.RoleStudent, "")
	resp, _ = anon.Test(httptest.NewRequest("GET", "/classwork", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreateRequiresClass(t *testing.T) {
	svc := service.NewClassworkService(repository.NewMemoryClassworkRepository(), studentRepo.NewMemoryStudentRepository(), nil)
	app := newApp(svc, constants.RoleTeacher, uuid.NewString())

	req := httptest.NewRequest("POST", "/classwork", strings.NewReader(`{"title":"Clay models"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	req = httptest.NewRequest("POST", "/classwork",
		strings.NewReader(`{"title":"Clay models","classId":"`+uuid.NewString()+`","date":"2024-06-03"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
