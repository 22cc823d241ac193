package controller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/interactive_assignments/dto"
	"schooldesk_backend/internals/features/school/interactive_assignments/model"
	"schooldesk_backend/internals/features/school/interactive_assignments/repository"
	"schooldesk_backend/internals/features/school/interactive_assignments/service"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	studentRepo "schooldesk_backend/internals/features/school/students/repository"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

func newApp(svc *service.InteractiveAssignmentService, role string) *fiber.App {
	ctl := &InteractiveAssignmentController{Svc: svc}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocRole, role)
		return c.Next()
	})
	app.Get("/ia", ctl.List)
	app.Get("/ia/:id", ctl.GetByID)
	app.Post("/ia", ctl.Create)
	app.Put("/ia/:id/questions", ctl.UpdateQuestions)
	return app
}

func TestCreateOutputsCamelCase(t *testing.T) {
	svc := service.NewInteractiveAssignmentService(repository.NewMemoryRepository())
	app := newApp(svc, constants.RoleTeacher)

	req := httptest.NewRequest("POST", "/ia", strings.NewReader(`{
		"title":"Shapes","type":"MATCHING","status":"PUBLISHED",
		"questions":[{"question_type":"MATCHING","question_text":"Match","hint_image_url":"https://x/h.png"}]
	}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Data struct {
			ID        string           `json:"id"`
			Questions []map[string]any `json:"questions"`
		} `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(raw, &body))
	require.Len(t, body.Data.Questions, 1)
	q := body.Data.Questions[0]
	assert.Equal(t, "Match", q["questionText"])
	assert.Equal(t, "https://x/h.png", q["hintImageUrl"])
	assert.EqualValues(t, 1, q["questionOrder"])
	assert.NotContains(t, q, "question_text")

	student := newApp(svc, constants.RoleStudent)
	resp, _ = student.Test(httptest.NewRequest("GET", "/ia/"+body.Data.ID, nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	app := newApp(service.NewInteractiveAssignmentService(repository.NewMemoryRepository()), constants.RoleTeacher)
	req := httptest.NewRequest("POST", "/ia", strings.NewReader(`{"title":"x","type":"ESSAY"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestBadQuestionPayloadIs400(t *testing.T) {
	svc := service.NewInteractiveAssignmentService(repository.NewMemoryRepository())
	app := newApp(svc, constants.RoleTeacher)

	req := httptest.NewRequest("POST", "/ia", strings.NewReader(`{"title":"x","type":"COUNTING","questions":[{"text":"no type"}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// submitApp: route submit + submission dengan user_id/role dari locals.
func submitApp(svc *service.InteractiveAssignmentService, students StudentLookup, role string, userID uuid.UUID) *fiber.App {
	ctl := &InteractiveAssignmentController{Svc: svc, Students: students}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocRole, role)
		c.Locals(helperAuth.LocUserID, userID.String())
		return c.Next()
	})
	app.Post("/ia/:id/submit", ctl.Submit)
	app.Get("/ia/:id/submission", ctl.StudentSubmission)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestStudentSubmitUsesOwnIdentity(t *testing.T) {
	ctx := context.Background()
	svc := service.NewInteractiveAssignmentService(repository.NewMemoryRepository())
	a, err := svc.Create(ctx, dto.CreateInteractiveAssignmentRequest{
		Title: "Count", Type: "COUNTING", Status: model.StatusPublished,
		Questions: []map[string]any{{"questionType": "COUNTING", "questionText": "How many?"}},
	}, nil)
	require.NoError(t, err)

	ownerAccount, otherAccount := uuid.New(), uuid.New()
	own := studentModel.StudentModel{ID: uuid.New(), Name: "Ana", UserID: &ownerAccount}
	other := studentModel.StudentModel{ID: uuid.New(), Name: "Budi", UserID: &otherAccount}
	students := studentRepo.NewMemoryStudentRepository(own, other)

	app := submitApp(svc, students, constants.RoleStudent, ownerAccount)
	base := "/ia/" + a.ID.String()

	// studentId milik siswa lain ditolak dan tidak membuat submission
	resp := postJSON(t, app, base+"/submit", `{"studentId":"`+other.ID.String()+`","responses":[]}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	got, err := svc.GetStudentSubmission(ctx, a.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// tanpa studentId: siswa diambil dari akun login
	resp = postJSON(t, app, base+"/submit", `{"responses":[]}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got, err = svc.GetStudentSubmission(ctx, a.ID, own.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.SubmissionSubmitted, got.Status)

	resp, _ = app.Test(httptest.NewRequest("GET", base+"/submission?studentId="+other.ID.String(), nil))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = app.Test(httptest.NewRequest("GET", base+"/submission", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// akun tanpa siswa tertaut tidak bisa submit
	stranger := submitApp(svc, students, constants.RoleStudent, uuid.New())
	resp = postJSON(t, stranger, base+"/submit", `{"studentId":"`+own.ID.String()+`"}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// guru boleh membaca submission siswa mana pun, tapi wajib menyebut studentId
	teacher := submitApp(svc, students, constants.RoleTeacher, uuid.New())
	resp, _ = teacher.Test(httptest.NewRequest("GET", base+"/submission?studentId="+own.ID.String(), nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = teacher.Test(httptest.NewRequest("GET", base+"/submission", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
