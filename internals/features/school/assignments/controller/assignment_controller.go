package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/assignments/dto"
	"schooldesk_backend/internals/features/school/assignments/repository"
	"schooldesk_backend/internals/features/school/assignments/service"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
	"schooldesk_backend/internals/helpers/dbtime"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

var validate = validator.New()

type AssignmentController struct {
	Svc *service.AssignmentService
}

func NewAssignmentController(db *gorm.DB, blob helperOSS.BlobService) *AssignmentController {
	return &AssignmentController{Svc: service.NewAssignmentService(repository.NewGormAssignmentRepository(db), blob)}
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

// GET /assignments?date=YYYY-MM-DD
// Guru/admin melihat semua; siswa hanya tugas tanggal itu (default hari ini).
func (ctl *AssignmentController) List(c *fiber.Ctx) error {
	date := time.Now()
	if s := strings.TrimSpace(c.Query("date")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date harus YYYY-MM-DD")
		}
		date = d.Time
	}
	editable := constants.HasPermission(helperAuth.GetRoleFromLocals(c), constants.RoleTeacher)
	return helper.JsonList(c, ctl.Svc.LoadAssignments(c.UserContext(), date, editable), nil)
}

// GET /assignments/all
func (ctl *AssignmentController) ListAll(c *fiber.Ctx) error {
	return helper.JsonList(c, ctl.Svc.LoadAllAssignments(c.UserContext()), nil)
}

// GET /assignments/:id
func (ctl *AssignmentController) GetByID(c *fiber.Ctx) error {
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

func (ctl *AssignmentController) save(c *fiber.Ctx, editingID *uuid.UUID) error {
	var req dto.AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ctl.Svc.CreateOrUpdate(c.UserContext(), req, editingID, actorID(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if editingID != nil {
		return helper.JsonUpdated(c, "Assignment updated successfully", m)
	}
	return helper.JsonCreated(c, "Assignment created successfully", m)
}

// POST /assignments
func (ctl *AssignmentController) Create(c *fiber.Ctx) error {
	return ctl.save(c, nil)
}

// PUT /assignments/:id
func (ctl *AssignmentController) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	return ctl.save(c, &id)
}

// DELETE /assignments/:id
func (ctl *AssignmentController) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Assignment deleted successfully", fiber.Map{"id": id})
}

// POST /assignments/:id/files (multipart: file)
func (ctl *AssignmentController) UploadFile(c *fiber.Ctx) error {
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

// DELETE /assignments/:id/files/:fileId
func (ctl *AssignmentController) DeleteFile(c *fiber.Ctx) error {
	fileID, err := parseUUID(c, "fileId")
	if err != nil {
		return err
	}
	if err := ctl.Svc.RemoveFile(c.UserContext(), fileID); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "File deleted", fiber.Map{"id": fileID})
}
