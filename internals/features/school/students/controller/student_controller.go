package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/students/dto"
	"schooldesk_backend/internals/features/school/students/repository"
	"schooldesk_backend/internals/features/school/students/service"
	authRepo "schooldesk_backend/internals/features/users/auth/repository"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

var validate = validator.New()

type StudentController struct {
	Svc *service.StudentService
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{Svc: service.NewStudentService(
		repository.NewGormStudentRepository(db),
		authRepo.NewGormProfileRepository(db),
	)}
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, param+" tidak valid")
	}
	return id, nil
}

// GET /api/a/students?classId=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	var classID *uuid.UUID
	if s := strings.TrimSpace(c.Query("classId")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classId tidak valid")
		}
		classID = &id
	}
	rows, err := ctl.Svc.FindMany(c.UserContext(), classID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /api/a/students/:id
func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.FindOne(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// GET /api/a/students/by-class/:classId (autocomplete, foto dari kartu pelajar)
func (ctl *StudentController) ByClass(c *fiber.Ctx) error {
	classID, err := parseUUID(c, "classId")
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.StudentsByClass(c.UserContext(), classID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /api/u/my-student: data anak berdasarkan email akun orang tua.
func (ctl *StudentController) Mine(c *fiber.Ctx) error {
	email, _ := c.Locals(helperAuth.LocEmail).(string)
	if strings.TrimSpace(email) == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	m, err := ctl.Svc.FindByEmail(c.UserContext(), email)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// POST /api/a/students
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	res, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Siswa berhasil didaftarkan", res)
}

// PATCH /api/a/students/:id
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStudentRequest
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
	return helper.JsonUpdated(c, "Siswa berhasil diperbarui", m)
}

// DELETE /api/a/students/:id
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Siswa berhasil dihapus", fiber.Map{"id": id})
}
