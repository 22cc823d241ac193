package controller

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/interactive_assignments/dto"
	"schooldesk_backend/internals/features/school/interactive_assignments/repository"
	"schooldesk_backend/internals/features/school/interactive_assignments/service"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	studentRepo "schooldesk_backend/internals/features/school/students/repository"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

var validate = validator.New()

// StudentLookup: siswa yang tertaut ke akun login.
type StudentLookup interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]studentModel.StudentModel, error)
}

type InteractiveAssignmentController struct {
	Svc      *service.InteractiveAssignmentService
	Students StudentLookup
}

func NewInteractiveAssignmentController(db *gorm.DB) *InteractiveAssignmentController {
	return &InteractiveAssignmentController{
		Svc:      service.NewInteractiveAssignmentService(repository.NewGormInteractiveAssignmentRepository(db)),
		Students: studentRepo.NewGormStudentRepository(db),
	}
}

/*
actingStudent menentukan siswa yang dipakai untuk submit / lihat jawaban.
Role STUDENT hanya boleh memakai siswa yang tertaut ke akunnya sendiri;
studentId dari body/query yang bukan miliknya ditolak 403. Kalau kosong
dan akun hanya punya satu siswa, siswa itu yang dipakai.
Role lain (guru/admin) wajib menyebut studentId.
*/
func (ctl *InteractiveAssignmentController) actingStudent(c *fiber.Ctx, requested *uuid.UUID) (uuid.UUID, error) {
	if helperAuth.GetRoleFromLocals(c) != constants.RoleStudent {
		if requested == nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "studentId wajib diisi")
		}
		return *requested, nil
	}

	userID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return uuid.Nil, err
	}
	if ctl.Students == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Akun tidak terhubung ke data siswa")
	}
	own, err := ctl.Students.FindByUserID(c.UserContext(), userID)
	if err != nil {
		return uuid.Nil, err
	}
	if len(own) == 0 {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Akun tidak terhubung ke data siswa")
	}
	if requested == nil {
		if len(own) > 1 {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "studentId wajib diisi")
		}
		return own[0].ID, nil
	}
	for _, st := range own {
		if st.ID == *requested {
			return st.ID, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Tidak boleh mengakses submission siswa lain")
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, param+" tidak valid")
	}
	return id, nil
}

func optionalUUID(s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// GET /interactive-assignments?classId=&type=&status=&search=
func (ctl *InteractiveAssignmentController) List(c *fiber.Ctx) error {
	classID, err := optionalUUID(c.Query("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "classId tidak valid")
	}
	rows, err := ctl.Svc.GetAll(c.UserContext(), helperAuth.GetRoleFromLocals(c), repository.ListFilter{
		ClassID: classID,
		Type:    strings.ToUpper(strings.TrimSpace(c.Query("type"))),
		Status:  strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Search:  c.Query("search"),
	})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /interactive-assignments/:id
func (ctl *InteractiveAssignmentController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.GetByID(c.UserContext(), id, helperAuth.GetRoleFromLocals(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// POST /interactive-assignments
func (ctl *InteractiveAssignmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateInteractiveAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	var actor *uuid.UUID
	if id, err := helperAuth.GetUserIDFromLocals(c); err == nil {
		actor = &id
	}
	m, err := ctl.Svc.Create(c.UserContext(), req, actor)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Interactive assignment created", m)
}

// PATCH /interactive-assignments/:id
func (ctl *InteractiveAssignmentController) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateInteractiveAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Interactive assignment updated", m)
}

// DELETE /interactive-assignments/:id
func (ctl *InteractiveAssignmentController) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Interactive assignment deleted", fiber.Map{"id": id})
}

// PUT /interactive-assignments/:id/questions
func (ctl *InteractiveAssignmentController) UpdateQuestions(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	qs, err := ctl.Svc.UpdateQuestions(c.UserContext(), id, req.Questions)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Questions updated successfully", qs)
}

// GET /interactive-assignments/:id/submissions
func (ctl *InteractiveAssignmentController) Submissions(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.GetSubmissions(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /interactive-assignments/:id/submission?studentId=
func (ctl *InteractiveAssignmentController) StudentSubmission(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	requested, err := optionalUUID(c.Query("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "studentId tidak valid")
	}
	studentID, err := ctl.actingStudent(c, requested)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	sub, err := ctl.Svc.GetStudentSubmission(c.UserContext(), id, studentID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", sub)
}

// POST /interactive-assignments/:id/submit
func (ctl *InteractiveAssignmentController) Submit(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	var requested *uuid.UUID
	if req.StudentID != uuid.Nil {
		requested = &req.StudentID
	}
	if req.StudentID, err = ctl.actingStudent(c, requested); err != nil {
		return helper.FromServiceError(c, err)
	}
	sub, err := ctl.Svc.Submit(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Assignment submitted successfully", sub)
}

// PATCH /interactive-assignments/submissions/:submissionId/grade
func (ctl *InteractiveAssignmentController) Grade(c *fiber.Ctx) error {
	id, err := parseUUID(c, "submissionId")
	if err != nil {
		return err
	}
	var req dto.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	sub, err := ctl.Svc.Grade(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Submission graded successfully", sub)
}

// POST /interactive-assignments/:id/share
func (ctl *InteractiveAssignmentController) Share(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ShareLinkRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return helper.ValidationError(c, err)
		}
	}
	m, err := ctl.Svc.GenerateShareableLink(c.UserContext(), id, req.ExpiresInDays)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Shareable link generated successfully", fiber.Map{
		"link":      m.ShareableLink,
		"expiresAt": m.ShareableLinkExpiresAt,
	})
}

// GET /api/public/interactive-assignments/play/:link
func (ctl *InteractiveAssignmentController) Play(c *fiber.Ctx) error {
	m, err := ctl.Svc.GetByShareableLink(c.UserContext(), c.Params("link"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}
