package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/id_cards/dto"
	"schooldesk_backend/internals/features/school/id_cards/repository"
	"schooldesk_backend/internals/features/school/id_cards/service"
	helper "schooldesk_backend/internals/helpers"
	helperOSS "schooldesk_backend/internals/helpers/oss"
	helperXLSX "schooldesk_backend/internals/helpers/xlsx"
)

var validate = validator.New()

type IDCardController struct {
	Svc *service.IDCardService
}

func NewIDCardController(db *gorm.DB, blob helperOSS.BlobService) *IDCardController {
	return &IDCardController{Svc: service.NewIDCardService(repository.NewGormIDCardRepository(db), blob)}
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, param+" tidak valid")
	}
	return id, nil
}

// GET /id-cards?search=&classId=&sortBy=&sortOrder=&page=&per_page=
func (ctl *IDCardController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 100)
	p := dto.ListParams{
		Search:   c.Query("search"),
		SortBy:   c.Query("sortBy"),
		SortDesc: !strings.EqualFold(strings.TrimSpace(c.Query("sortOrder")), "asc"),
		Offset:   pg.Offset,
		Limit:    pg.Limit,
	}
	if s := strings.TrimSpace(c.Query("classId")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "classId tidak valid")
		}
		p.ClassID = &id
	}

	rows, total, err := ctl.Svc.List(c.UserContext(), p)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, rows, &pagination)
}

func (ctl *IDCardController) GetByID(c *fiber.Ctx) error {
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

func (ctl *IDCardController) Create(c *fiber.Ctx) error {
	var req dto.SaveIDCardRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ctl.Svc.Save(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "ID card disimpan", m)
}

func (ctl *IDCardController) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateIDCardRequest
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
	return helper.JsonUpdated(c, "ID card diperbarui", m)
}

func (ctl *IDCardController) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "ID card dihapus", fiber.Map{"id": id})
}

// POST /id-cards/:id/photos/:photoType (multipart: file|photo)
func (ctl *IDCardController) UploadPhoto(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	fh, err := helperOSS.GetFormFile(c, "file", "photo")
	if err != nil {
		return err
	}
	url, err := ctl.Svc.UploadPhoto(c.UserContext(), id, c.Params("photoType"), fh)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Foto diunggah", fiber.Map{"id": id, "photoType": c.Params("photoType"), "url": url})
}

// POST /id-cards/:id/download
func (ctl *IDCardController) Download(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.IncrementDownloadCount(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"id": id})
}

// POST /id-cards/export {ids?}
func (ctl *IDCardController) Export(c *fiber.Ctx) error {
	var req dto.ExportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	data, err := ctl.Svc.ExportXLSX(c.UserContext(), req.IDs)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helperXLSX.Send(c, "id-cards.xlsx", data)
}
