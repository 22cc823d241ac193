package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	publicService "schooldesk_backend/internals/features/public/service"
	idCardRepo "schooldesk_backend/internals/features/school/id_cards/repository"
	"schooldesk_backend/internals/features/school/parent_feedback/dto"
	"schooldesk_backend/internals/features/school/parent_feedback/repository"
	"schooldesk_backend/internals/features/school/parent_feedback/service"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

var validate = validator.New()

type ParentFeedbackController struct {
	Svc *service.ParentFeedbackService
}

func NewParentFeedbackController(db *gorm.DB, blob helperOSS.BlobService) *ParentFeedbackController {
	return &ParentFeedbackController{Svc: service.NewParentFeedbackService(
		repository.NewGormParentFeedbackRepository(db),
		idCardRepo.NewGormIDCardRepository(db),
		blob,
		publicService.SchoolInfoFromEnv(),
	)}
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, param+" tidak valid")
	}
	return id, nil
}

func queryClassID(c *fiber.Ctx) (*uuid.UUID, error) {
	s := strings.TrimSpace(c.Query("classId"))
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "classId tidak valid")
	}
	return &id, nil
}

func actorID(c *fiber.Ctx) *uuid.UUID {
	id, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return nil
	}
	return &id
}

// parseBody: true = respons error sudah ditulis.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return true, helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return true, helper.ValidationError(c, err)
	}
	return false, nil
}

// GET /parent-feedback?classId=&studentName=&month=
func (ctl *ParentFeedbackController) List(c *fiber.Ctx) error {
	classID, err := queryClassID(c)
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.List(c.UserContext(), dto.SearchFilter{
		ClassID:     classID,
		StudentName: c.Query("studentName"),
		Month:       c.Query("month"),
	})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /parent-feedback/:id
func (ctl *ParentFeedbackController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// GET /parent-feedback/photos?classId=&studentName=
func (ctl *ParentFeedbackController) Photos(c *fiber.Ctx) error {
	classID, err := queryClassID(c)
	if err != nil {
		return err
	}
	if classID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "classId wajib diisi")
	}
	p, err := ctl.Svc.Photos(c.UserContext(), *classID, c.Query("studentName"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", p)
}

// POST /parent-feedback
func (ctl *ParentFeedbackController) Create(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if done, err := parseBody(c, &req); done {
		return err
	}
	m, err := ctl.Svc.Create(c.UserContext(), req, actorID(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Feedback created successfully", m)
}

// PUT /parent-feedback/:id
func (ctl *ParentFeedbackController) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if done, err := parseBody(c, &req); done {
		return err
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Feedback updated successfully", m)
}

// DELETE /parent-feedback/:id
func (ctl *ParentFeedbackController) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Feedback deleted successfully", fiber.Map{"id": id})
}

// POST /parent-feedback/:id/certificate
func (ctl *ParentFeedbackController) GenerateCertificate(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	res, err := ctl.Svc.GenerateCertificate(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if res.Created {
		return helper.JsonCreated(c, "Certificate generated", res)
	}
	return helper.JsonOK(c, "Certificate already exists", res)
}

// GET /parent-feedback/:id/certificate
func (ctl *ParentFeedbackController) Certificate(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Certificate(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// POST /parent-feedback/:id/certificate/downloads
func (ctl *ParentFeedbackController) IncrementDownload(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.IncrementDownload(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Download counted", m)
}

// GET /parent-feedback/:id/certificate/download
func (ctl *ParentFeedbackController) Download(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	png, name, err := ctl.Svc.Download(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Attachment(name)
	return c.Send(png)
}

/* ===== feedback dari orang tua ===== */

// POST /parent-feedback/submissions (publik)
func (ctl *ParentFeedbackController) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if done, err := parseBody(c, &req); done {
		return err
	}
	m, created, err := ctl.Svc.Submit(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Feedback submitted", m)
	}
	return helper.JsonUpdated(c, "Feedback updated", m)
}

// GET /parent-feedback/submissions/check?classId=&studentName=&month=
func (ctl *ParentFeedbackController) CheckExisting(c *fiber.Ctx) error {
	classID, err := queryClassID(c)
	if err != nil {
		return err
	}
	if classID == nil || strings.TrimSpace(c.Query("studentName")) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "classId dan studentName wajib diisi")
	}
	m, err := ctl.Svc.CheckExisting(c.UserContext(), *classID, c.Query("studentName"), c.Query("month"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"exists": m != nil, "feedback": m})
}

// GET /parent-feedback/submissions?classId=&month=&status=
func (ctl *ParentFeedbackController) ListSubmitted(c *fiber.Ctx) error {
	classID, err := queryClassID(c)
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.ListSubmitted(c.UserContext(), dto.SubmittedFilter{
		ClassID: classID,
		Month:   c.Query("month"),
		Status:  c.Query("status"),
	})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /parent-feedback/submissions/:id
func (ctl *ParentFeedbackController) GetSubmitted(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.GetSubmitted(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// PATCH /parent-feedback/submissions/:id/status
func (ctl *ParentFeedbackController) UpdateSubmittedStatus(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SubmittedStatusRequest
	if done, err := parseBody(c, &req); done {
		return err
	}
	m, err := ctl.Svc.UpdateSubmittedStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Status updated", m)
}

// POST /parent-feedback/submissions/:id/response
func (ctl *ParentFeedbackController) Respond(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AdminResponseRequest
	if done, err := parseBody(c, &req); done {
		return err
	}
	m, err := ctl.Svc.Respond(c.UserContext(), id, req.AdminFeedback, actorID(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Response saved", m)
}
