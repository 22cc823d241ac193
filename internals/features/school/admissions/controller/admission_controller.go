package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/admissions/dto"
	"schooldesk_backend/internals/features/school/admissions/repository"
	"schooldesk_backend/internals/features/school/admissions/service"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
	"schooldesk_backend/internals/helpers/dbtime"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

var validate = validator.New()

type AdmissionController struct {
	Svc *service.AdmissionService
}

func NewAdmissionController(db *gorm.DB, blob helperOSS.BlobService) *AdmissionController {
	return &AdmissionController{Svc: service.NewAdmissionService(repository.NewGormAdmissionRepository(db), blob)}
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, param+" tidak valid")
	}
	return id, nil
}

func actorID(c *fiber.Ctx) *uuid.UUID {
	id, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return nil
	}
	return &id
}

// parseBody: false = response error sudah ditulis.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return false, helper.ValidationError(c, err)
	}
	return true, nil
}

// POST /admissions/enquiries (publik)
func (ctl *AdmissionController) CreateEnquiry(c *fiber.Ctx) error {
	var req dto.EnquiryRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.CreateEnquiry(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Enquiry submitted successfully", m)
}

func parseDay(s string, endOfDay bool) (*time.Time, error) {
	if s = strings.TrimSpace(s); s == "" {
		return nil, nil
	}
	d, err := dbtime.ParseDate(s)
	if err != nil {
		return nil, err
	}
	t := d.Time.UTC()
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// GET /admissions/enquiries?status=NEW,IN_REVIEW&from=&to=&search=&grade=&page=&per_page=
func (ctl *AdmissionController) ListEnquiries(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 100)
	p := dto.ListParams{
		Search:        strings.TrimSpace(c.Query("search")),
		GradeApplying: strings.TrimSpace(c.Query("grade")),
		Offset:        pg.Offset,
		Limit:         pg.Limit,
	}
	for _, st := range strings.Split(c.Query("status"), ",") {
		if st = strings.ToUpper(strings.TrimSpace(st)); st != "" {
			p.Statuses = append(p.Statuses, st)
		}
	}
	var err error
	if p.From, err = parseDay(c.Query("from"), false); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "from harus YYYY-MM-DD")
	}
	if p.To, err = parseDay(c.Query("to"), true); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "to harus YYYY-MM-DD")
	}

	rows, total, err := ctl.Svc.ListEnquiries(c.UserContext(), p)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, rows, &pagination)
}

// GET /admissions/stats
func (ctl *AdmissionController) Stats(c *fiber.Ctx) error {
	st, err := ctl.Svc.Stats(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", st)
}

// GET /admissions/enquiries/:id
func (ctl *AdmissionController) GetEnquiry(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.GetEnquiry(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// PATCH /admissions/enquiries/:id
func (ctl *AdmissionController) UpdateEnquiry(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateEnquiryRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.UpdateEnquiry(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Enquiry updated successfully", m)
}

// PUT /admissions/enquiries/:id/status
func (ctl *AdmissionController) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.UpdateStatus(c.UserContext(), id, strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Status updated", m)
}

// GET /admissions/enquiries/:id/progress
func (ctl *AdmissionController) Progress(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	p, err := ctl.Svc.Progress(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", p)
}

// PUT /admissions/enquiries/:id/progress
func (ctl *AdmissionController) UpdateProgress(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ProgressUpdateRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	if req.Status != nil {
		st := strings.ToUpper(strings.TrimSpace(*req.Status))
		req.Status = &st
	}
	p, err := ctl.Svc.UpdateProgress(c.UserContext(), id, req, actorID(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Admission progress updated", p)
}

// GET /admissions/enquiries/:id/documents
func (ctl *AdmissionController) Documents(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	docs, err := ctl.Svc.Documents(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", docs)
}

// POST /admissions/enquiries/:id/documents/:docType (multipart: file)
func (ctl *AdmissionController) UploadDocument(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	fh, err := helperOSS.GetFormFile(c, "file", "document")
	if err != nil {
		return err
	}
	st, err := ctl.Svc.UploadDocument(c.UserContext(), id, c.Params("docType"), fh)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Document uploaded", st)
}

// PUT /admissions/enquiries/:id/documents/:docType/verify
func (ctl *AdmissionController) VerifyDocument(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.VerifyDocumentRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	st, err := ctl.Svc.VerifyDocument(c.UserContext(), id, c.Params("docType"), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Document "+strings.ToLower(req.Status), st)
}

// GET /admissions/enquiries/:id/notes
func (ctl *AdmissionController) Notes(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.Notes(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// POST /admissions/enquiries/:id/notes
func (ctl *AdmissionController) AddNote(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.NoteRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	n, err := ctl.Svc.AddNote(c.UserContext(), id, req.Content, actorID(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Note added", n)
}

// GET /admissions/enquiries/:id/communications
func (ctl *AdmissionController) Communications(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.Communications(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// POST /admissions/enquiries/:id/communications
func (ctl *AdmissionController) AddCommunication(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CommunicationRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.AddCommunication(c.UserContext(), id, req, actorID(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Communication logged", m)
}
