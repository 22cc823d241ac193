package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/finance/fees/dto"
	"schooldesk_backend/internals/features/finance/fees/repository"
	"schooldesk_backend/internals/features/finance/fees/service"
	classRepo "schooldesk_backend/internals/features/school/classes/main/repository"
	studentRepo "schooldesk_backend/internals/features/school/students/repository"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
	"schooldesk_backend/internals/helpers/dbtime"
	helperXLSX "schooldesk_backend/internals/helpers/xlsx"
)

var validate = validator.New()

type FeeController struct {
	Svc *service.FeeService
}

func NewFeeController(db *gorm.DB, gw service.PaymentGateway, serverKey string) *FeeController {
	svc := service.NewFeeService(
		repository.NewGormFeeRepository(db),
		studentRepo.NewGormStudentRepository(db),
		classRepo.NewGormClassRepository(db),
	)
	if gw != nil {
		svc.WithGateway(gw, serverKey)
	}
	return &FeeController{Svc: svc}
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, param+" tidak valid")
	}
	return id, nil
}

func optionalUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" tidak valid")
	}
	return &id, nil
}

// ?classId=&studentId=&status=&month=YYYY-MM
func parseFilter(c *fiber.Ctx) (dto.FeeFilter, error) {
	var f dto.FeeFilter
	var err error
	if f.ClassID, err = optionalUUID(c, "classId"); err != nil {
		return f, err
	}
	if f.StudentID, err = optionalUUID(c, "studentId"); err != nil {
		return f, err
	}
	f.Status = strings.ToUpper(strings.TrimSpace(c.Query("status")))
	if s := strings.TrimSpace(c.Query("month")); s != "" {
		y, m, err := dbtime.ParseMonth(s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "month harus YYYY-MM")
		}
		f.Year, f.Month = y, int(m)
	}
	return f, nil
}

// GET /fees
func (ctl *FeeController) List(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.GetByFilter(c.UserContext(), f)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /fees/export
func (ctl *FeeController) Export(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return err
	}
	data, err := ctl.Svc.Export(c.UserContext(), f)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helperXLSX.Send(c, fmt.Sprintf("fees-%s.xlsx", time.Now().Format("20060102")), data)
}

// GET /fees/classes
func (ctl *FeeController) Classes(c *fiber.Ctx) error {
	rows, err := ctl.Svc.GetClasses(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /fees/students/:studentId
func (ctl *FeeController) ByStudent(c *fiber.Ctx) error {
	id, err := parseUUID(c, "studentId")
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.GetByStudent(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /api/u/my-fees
func (ctl *FeeController) Mine(c *fiber.Ctx) error {
	email, _ := c.Locals(helperAuth.LocEmail).(string)
	if strings.TrimSpace(email) == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	rows, err := ctl.Svc.GetMyFees(c.UserContext(), email)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /fees/:id
func (ctl *FeeController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.GetFeeDetails(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// GET /fees/:id/receipt
func (ctl *FeeController) Receipt(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	r, err := ctl.Svc.Receipt(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", r)
}

// POST /fees
func (ctl *FeeController) Create(c *fiber.Ctx) error {
	var req dto.CreateFeeRequest
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
	return helper.JsonCreated(c, "Fee created", m)
}

// PATCH /fees/:id
func (ctl *FeeController) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateFeeRequest
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
	return helper.JsonUpdated(c, "Fee updated", m)
}

// DELETE /fees/:id
func (ctl *FeeController) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Fee deleted", fiber.Map{"id": id})
}

// POST /fees/:id/pay
func (ctl *FeeController) Pay(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	resp, err := ctl.Svc.Pay(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Transaksi pembayaran dibuat", resp)
}

// POST /api/fees/notification (dipanggil Midtrans, tanpa JWT)
func (ctl *FeeController) Notification(c *fiber.Ctx) error {
	var n dto.Notification
	if err := c.BodyParser(&n); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Svc.HandleNotification(c.UserContext(), n); err != nil {
		log.Warn().Err(err).Str("order_id", n.OrderID).Msg("[FEES] notifikasi ditolak")
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", nil)
}
