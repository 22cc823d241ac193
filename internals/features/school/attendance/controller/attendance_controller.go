package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/attendance/dto"
	"schooldesk_backend/internals/features/school/attendance/repository"
	"schooldesk_backend/internals/features/school/attendance/service"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
)

var validate = validator.New()

type AttendanceController struct {
	Svc *service.AttendanceService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{Svc: service.NewAttendanceService(repository.NewGormAttendanceRepository(db))}
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, param+" tidak valid")
	}
	return id, nil
}

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	d, err := dbtime.ParseDate(s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" harus YYYY-MM-DD")
	}
	return &d.Time, nil
}

// GET /attendance?classId=&from=&to=
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	var classID *uuid.UUID
	if s := strings.TrimSpace(c.Query("classId")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "classId tidak valid")
		}
		classID = &id
	}
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.GetAll(c.UserContext(), classID, from, to)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /attendance/students/:studentId?month=YYYY-MM
func (ctl *AttendanceController) ByStudent(c *fiber.Ctx) error {
	studentID, err := parseUUID(c, "studentId")
	if err != nil {
		return err
	}
	var month *time.Time
	if s := strings.TrimSpace(c.Query("month")); s != "" {
		y, m, err := dbtime.ParseMonth(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "month harus YYYY-MM")
		}
		t := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		month = &t
	}
	rows, err := ctl.Svc.GetByStudent(c.UserContext(), studentID, month)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /attendance/students/:studentId/stats
func (ctl *AttendanceController) Stats(c *fiber.Ctx) error {
	studentID, err := parseUUID(c, "studentId")
	if err != nil {
		return err
	}
	stats, err := ctl.Svc.StudentStats(c.UserContext(), studentID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", stats)
}

// POST /attendance
func (ctl *AttendanceController) Create(c *fiber.Ctx) error {
	var req dto.CreateAttendanceRequest
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
	return helper.JsonCreated(c, "Attendance recorded", m)
}

// POST /attendance/mark
func (ctl *AttendanceController) MarkClass(c *fiber.Ctx) error {
	var req dto.MarkClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	rows, err := ctl.Svc.MarkClass(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Attendance saved", rows)
}

// PATCH /attendance/:id
func (ctl *AttendanceController) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ctl.Svc.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Attendance updated", m)
}

// DELETE /attendance/:id
func (ctl *AttendanceController) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Attendance deleted", fiber.Map{"id": id})
}
