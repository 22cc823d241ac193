package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classRepo "schooldesk_backend/internals/features/school/classes/main/repository"
	"schooldesk_backend/internals/features/school/sports_enrollments/dto"
	"schooldesk_backend/internals/features/school/sports_enrollments/repository"
	"schooldesk_backend/internals/features/school/sports_enrollments/service"
	helper "schooldesk_backend/internals/helpers"
	helperXLSX "schooldesk_backend/internals/helpers/xlsx"
)

var validate = validator.New()

type SportsEnrollmentController struct {
	Svc *service.SportsEnrollmentService
}

func NewSportsEnrollmentController(db *gorm.DB) *SportsEnrollmentController {
	return &SportsEnrollmentController{Svc: service.NewSportsEnrollmentService(
		repository.NewGormSportsEnrollmentRepository(db),
		classRepo.NewGormClassRepository(db),
	)}
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

// POST /sports-enrollments
func (ctl *SportsEnrollmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ctl.Svc.CreateEnrollment(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Pendaftaran berhasil", m)
}

// GET /sports-enrollments/check?name=&classId=
func (ctl *SportsEnrollmentController) Check(c *fiber.Ctx) error {
	classID, err := queryClassID(c)
	if err != nil {
		return err
	}
	if classID == nil {
		return fiber.NewError(fiber.StatusBadRequest, "classId wajib")
	}
	exists, err := ctl.Svc.CheckExistingEnrollment(c.UserContext(), c.Query("name"), *classID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"exists": exists})
}

// GET /sports-enrollments/count
func (ctl *SportsEnrollmentController) Count(c *fiber.Ctx) error {
	n, err := ctl.Svc.GetEnrollmentCount(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"count": n})
}

// GET /sports-enrollments?search=&classId=
func (ctl *SportsEnrollmentController) List(c *fiber.Ctx) error {
	classID, err := queryClassID(c)
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.GetAll(c.UserContext(), dto.ListParams{ClassID: classID, Search: c.Query("search")})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /sports-enrollments/grouped?by=class|sport
func (ctl *SportsEnrollmentController) Grouped(c *fiber.Ctx) error {
	groups, err := ctl.Svc.Grouped(c.UserContext(), c.Query("by"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, groups, nil)
}

func (ctl *SportsEnrollmentController) Export(c *fiber.Ctx) error {
	classID, err := queryClassID(c)
	if err != nil {
		return err
	}
	data, err := ctl.Svc.Export(c.UserContext(), dto.ListParams{ClassID: classID, Search: c.Query("search")})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helperXLSX.Send(c, "sports-enrollments.xlsx", data)
}

func (ctl *SportsEnrollmentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "id tidak valid")
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Pendaftaran dihapus", fiber.Map{"id": id})
}
