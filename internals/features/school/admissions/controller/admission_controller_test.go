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

	"schooldesk_backend/internals/features/school/admissions/repository"
	"schooldesk_backend/internals/features/school/admissions/service"
	helper "schooldesk_backend/internals/helpers"
)

func newApp() *fiber.App {
	ctl := &AdmissionController{Svc: service.NewAdmissionService(repository.NewMemoryAdmissionRepository(), nil)}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Post("/enquiries", ctl.CreateEnquiry)
	app.Get("/enquiries", ctl.ListEnquiries)
	app.Get("/enquiries/:id/progress", ctl.Progress)
	app.Put("/enquiries/:id/status", ctl.UpdateStatus)
	return app
}

func send(t *testing.T, app *fiber.App, method, url, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = sonic.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestEnquiryFlowOverHTTP(t *testing.T) {
	app := newApp()

	code, _ := send(t, app, "POST", "/enquiries", `{"studentName":"Raka","gender":"Male"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	code, body := send(t, app, "POST", "/enquiries", `{
		"studentName":"Raka","parentName":"Sari","gender":"Male","email":"sari@mail.test",
		"contactNumber":"0812","gradeApplying":"Grade 1","address":"Jl. Melati 2","dateOfBirth":"2018-02-01"}`)
	require.Equal(t, fiber.StatusCreated, code)
	data := body["data"].(map[string]any)
	id := data["id"].(string)
	assert.Equal(t, "NEW", data["status"])

	code, body = send(t, app, "GET", "/enquiries/"+id+"/progress", "")
	require.Equal(t, fiber.StatusOK, code)
	progress := body["data"].(map[string]any)
	assert.EqualValues(t, 1, progress["currentStep"])
	assert.Equal(t, "IN_REVIEW", progress["nextStep"])

	code, _ = send(t, app, "PUT", "/enquiries/"+id+"/status", `{"status":"in_review"}`)
	assert.Equal(t, fiber.StatusOK, code)

	code, _ = send(t, app, "PUT", "/enquiries/"+id+"/status", `{"status":"lost"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, body = send(t, app, "GET", "/enquiries?status=in_review&per_page=5", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, body["data"], 1)

	code, _ = send(t, app, "GET", "/enquiries?from=01-04-2024", "")
	assert.Equal(t, fiber.StatusBadRequest, code)
}
