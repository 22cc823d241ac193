package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	publicDto "schooldesk_backend/internals/features/public/dto"
	idCardRepo "schooldesk_backend/internals/features/school/id_cards/repository"
	"schooldesk_backend/internals/features/school/parent_feedback/repository"
	"schooldesk_backend/internals/features/school/parent_feedback/service"
	helper "schooldesk_backend/internals/helpers"
)

func newApp() *fiber.App {
	svc := service.NewParentFeedbackService(
		repository.NewMemoryParentFeedbackRepository(),
		idCardRepo.NewMemoryIDCardRepository(),
		nil,
		publicDto.SchoolInfo{Name: "Green Valley School"},
	)
	ctl := &ParentFeedbackController{Svc: svc}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Post("/submissions", ctl.Submit)
	app.Get("/submissions/check", ctl.CheckExisting)
	app.Post("/feedback", ctl.Create)
	app.Get("/feedback/:id/certificate/download", ctl.Download)
	return app
}

func send(t *testing.T, app *fiber.App, method, url, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func TestParentSubmissionOverHTTP(t *testing.T) {
	app := newApp()
	class := uuid.New().String()
	body := `{"classId":"` + class + `","studentName":"Meera","parentName":"Lakshmi","parentRelation":"Mother","month":"March","feedback":"Thanks"}`

	code, _ := send(t, app, "POST", "/submissions", body)
	assert.Equal(t, fiber.StatusCreated, code)
	code, _ = send(t, app, "POST", "/submissions", body)
	assert.Equal(t, fiber.StatusOK, code)

	code, raw := send(t, app, "GET", "/submissions/check?classId="+class+"&studentName=meera&month=March", "")
	require.Equal(t, fiber.StatusOK, code)
	var out struct {
		Data struct {
			Exists bool `json:"exists"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Data.Exists)

	code, _ = send(t, app, "POST", "/submissions", strings.Replace(body, "March", "Smarch", 1))
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = send(t, app, "POST", "/submissions", `{"classId":"`+class+`"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	code, _ = send(t, app, "GET", "/submissions/check?studentName=meera", "")
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestCertificateDownloadStreamsPNG(t *testing.T) {
	app := newApp()
	class := uuid.New().String()
	code, raw := send(t, app, "POST", "/feedback", `{"classId":"`+class+`","studentName":"Arjun","month":"July","goodThings":"Curious","needToImprove":"Focus","bestCanDo":"Read daily","attendancePercentage":88}`)
	require.Equal(t, fiber.StatusCreated, code)
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, err := app.Test(httptest.NewRequest("GET", "/feedback/"+created.Data.ID+"/certificate/download", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "arjun-july.png")

	code, _ = send(t, app, "GET", "/feedback/"+uuid.New().String()+"/certificate/download", "")
	assert.Equal(t, fiber.StatusNotFound, code)
}
