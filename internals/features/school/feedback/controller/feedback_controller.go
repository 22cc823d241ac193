package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/feedback/dto"
	"schooldesk_backend/internals/features/school/feedback/repository"
	"schooldesk_backend/internals/features/school/feedback/service"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

var validate = validator.New()

type FeedbackController struct {
	Svc *service.FeedbackService
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{Svc: service.NewFeedbackService(repository.NewGormFeedbackRepository(db))}
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, param+" tidak valid")
	}
	return id, nil
}

// POST /feedback
func (ctl *FeedbackController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var req dto.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ctl.Svc.Create(c.UserContext(), userID, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Feedback terkirim", m)
}

// GET /feedback/mine
func (ctl *FeedbackController) Mine(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	rows, err := ctl.Svc.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /feedback/:id
func (ctl *FeedbackController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	userID, _ := helperAuth.GetUserIDFromLocals(c)
	m, err := ctl.Svc.GetByID(c.UserContext(), id, userID, helperAuth.GetRoleFromLocals(c))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// GET /api/a/feedback
func (ctl *FeedbackController) List(c *fiber.Ctx) error {
	rows, err := ctl.Svc.GetAll(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// GET /api/a/feedback/users/:userId
func (ctl *FeedbackController) ByUser(c *fiber.Ctx) error {
	userID, err := parseUUID(c, "userId")
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}

// PATCH /api/a/feedback/:id/status
func (ctl *FeedbackController) UpdateStatus(c *fiber.Ctx) error {
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
	return helper.JsonUpdated(c, "Status diperbarui", m)
}

// POST /api/a/feedback/:id/replies
func (ctl *FeedbackController) Reply(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return err
	}
	userID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var req dto.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	r, err := ctl.Svc.AddReply(c.UserContext(), id, userID, req.Reply)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Balasan terkirim", r)
}
