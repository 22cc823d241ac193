package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/slips/dto"
	"schooldesk_backend/internals/features/school/slips/repository"
	"schooldesk_backend/internals/features/school/slips/service"
	helper "schooldesk_backend/internals/helpers"
	helperXLSX "schooldesk_backend/internals/helpers/xlsx"
)

var validate = validator.New()

type SlipController struct {
	Svc *service.SlipService
}

func NewSlipController(db *gorm.DB) *SlipController {
	return &SlipController{Svc: service.NewSlipService(repository.NewGormSlipRepository(db))}
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, param+" tidak valid")
	}
	return id, nil
}

// bind: ok=false berarti response error sudah ditulis.
func bind(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return false, helper.ValidationError(c, err)
	}
	return true, nil
}

/* ===================== fields ===================== */

func (ctl *SlipController) ListFields(c *fiber.Ctx) error {
	rows, err := ctl.Svc.GetFields(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

func (ctl *SlipController) AddField(c *fiber.Ctx) error {
	var req dto.FieldRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.AddField(c.UserContext(), req.Name)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Field dibuat", m)
}

func (ctl *SlipController) UpdateField(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.FieldRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.UpdateField(c.UserContext(), id, req.Name)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Field diperbarui", m)
}

func (ctl *SlipController) RemoveField(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.RemoveField(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Field dihapus", fiber.Map{"id": id})
}

/* ===================== templates ===================== */

func (ctl *SlipController) ListTemplates(c *fiber.Ctx) error {
	rows, err := ctl.Svc.GetTemplates(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

func (ctl *SlipController) GetTemplate(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.GetTemplate(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

func (ctl *SlipController) CreateTemplate(c *fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.CreateTemplate(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Template dibuat", m)
}

func (ctl *SlipController) UpdateTemplate(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTemplateRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.UpdateTemplate(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Template diperbarui", m)
}

func (ctl *SlipController) DeleteTemplate(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.DeleteTemplate(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Template dihapus", fiber.Map{"id": id})
}

// GET /slips/templates/:id/export
func (ctl *SlipController) Export(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	data, filename, err := ctl.Svc.Export(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helperXLSX.Send(c, filename, data)
}

/* ===================== slip data ===================== */

// GET /slips/data?templateId=
func (ctl *SlipController) ListData(c *fiber.Ctx) error {
	var templateID *uuid.UUID
	if s := strings.TrimSpace(c.Query("templateId")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "templateId tidak valid")
		}
		templateID = &id
	}
	rows, err := ctl.Svc.GetSlipData(c.UserContext(), templateID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

func (ctl *SlipController) CreateData(c *fiber.Ctx) error {
	var req dto.SlipDataRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.CreateSlipData(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Slip disimpan", m)
}

func (ctl *SlipController) UpdateData(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateSlipDataRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.UpdateSlipData(c.UserContext(), id, req.Values)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Slip diperbarui", m)
}

func (ctl *SlipController) DeleteData(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.DeleteSlipData(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Slip dihapus", fiber.Map{"id": id})
}
