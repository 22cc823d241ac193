package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/classes/main/dto"
	"schooldesk_backend/internals/features/school/classes/main/repository"
	"schooldesk_backend/internals/features/school/classes/main/service"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/cache"
)

var validate = validator.New()

type ClassController struct {
	Svc *service.ClassService
}

func NewClassController(db *gorm.DB, store cache.Store) *ClassController {
	return &ClassController{Svc: service.NewClassService(repository.NewGormClassRepository(db), store)}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "id tidak valid")
	}
	return id, nil
}

// GET /classes?schoolId=
func (ctl *ClassController) List(c *fiber.Ctx) error {
	var schoolID *uuid.UUID
	if s := strings.TrimSpace(c.Query("schoolId")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "schoolId tidak valid")
		}
		schoolID = &id
	}
	rows, err := ctl.Svc.FindMany(c.UserContext(), schoolID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, dto.NewClassResponses(rows), nil)
}

// GET /classes/:id
func (ctl *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	m, err := ctl.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.NewClassResponse(m))
}

// POST /classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", dto.NewClassResponse(m))
}

// PATCH /classes/:id
func (ctl *ClassController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateClassRequest
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
	return helper.JsonUpdated(c, "Kelas berhasil diperbarui", dto.NewClassResponse(m))
}

// DELETE /classes/:id
func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Kelas berhasil dihapus", fiber.Map{"id": id})
}
