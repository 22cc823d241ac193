package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/classwork/dto"
	"schooldesk_backend/internals/features/school/classwork/repository"
	"schooldesk_backend/internals/features/school/classwork/service"
	studentRepo "schooldesk_backend/internals/features/school/students/repository"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

var validate = validator.New()

type ClassworkController struct {
	Svc *service.ClassworkService
}

func NewClassworkController(db *gorm.DB, blob helperOSS.BlobService) *ClassworkController {
	return &ClassworkController{Svc: service.NewClassworkService(
		repository.NewGormClassworkRepository(db),
		studentRepo.NewGormStudentRepository(db),
		blob,
	)}
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, param+" tidak valid")
	}
	return id, nil
}

func viewer(c *fiber.Ctx) (service.Viewer, error) {
	id, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return service.Viewer{}, err
	}
	return service.Viewer{Role: helperAuth.GetRoleFromLocals(c), UserID: id}, nil
}

// GET /classwork?classId=
func (ctl *ClassworkController) List(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	var classID *uuid.UUID
	if s := strings.TrimSpace(c.Query("classId")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classId tidak valid")
		}
		classID = &id
	}
	rows, err := ctl.Svc.List(c.UserContext(), v, classID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /classwork/:id
func (ctl *ClassworkController) GetByID(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.GetByID(c.UserContext(), v, id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

func actorID(c *fiber.Ctx) *uuid.UUID {
	id, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return nil
	}
	return &id
}

func (ctl *ClassworkController) save(c *fiber.Ctx, editingID *uuid.UUID) error {
	var req dto.ClassworkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if editingID != nil {
		m, err := ctl.Svc.Update(c.UserContext(), *editingID, req)
		if err != nil {
			return helper.FromServiceError(c, err)
		}
		return helper.JsonUpdated(c, "Classwork updated successfully", m)
	}
	m, err := ctl.Svc.Create(c.UserContext(), req, actorID(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Classwork created successfully", m)
}

// POST /classwork
func (ctl *ClassworkController) Create(c *fiber.Ctx) error {
	return ctl.save(c, nil)
}

// PUT /classwork/:id
func (ctl *ClassworkController) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	return ctl.save(c, &id)
}

// DELETE /classwork/:id
func (ctl *ClassworkController) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Classwork deleted successfully", fiber.Map{"id": id})
}

// POST /classwork/:id/files (multipart: file)
func (ctl *ClassworkController) UploadFile(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	fh, err := helperOSS.GetFormFile(c, "file")
	if err != nil {
		return err
	}
	f, err := ctl.Svc.AttachFile(c.UserContext(), id, fh, actorID(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "File uploaded", f)
}

// DELETE /classwork/:id/files/:fileId
func (ctl *ClassworkController) DeleteFile(c *fiber.Ctx) error {
	fileID, err := parseUUID(c, "fileId")
	if err != nil {
		return err
	}
	if err := ctl.Svc.RemoveFile(c.UserContext(), fileID); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "File deleted", fiber.Map{"id": fileID})
}
