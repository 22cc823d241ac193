package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/dashboard/repository"
	"schooldesk_backend/internals/features/school/dashboard/service"
	studentRepo "schooldesk_backend/internals/features/school/students/repository"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
	"schooldesk_backend/internals/helpers/cache"
)

type DashboardController struct {
	Svc *service.DashboardService
}

func NewDashboardController(db *gorm.DB, store cache.Store) *DashboardController {
	return &DashboardController{Svc: service.NewDashboardService(
		repository.NewGormCounter(db),
		studentRepo.NewGormStudentRepository(db),
		store,
	)}
}

// GET /dashboard/summary
func (ctl *DashboardController) Summary(c *fiber.Ctx) error {
	out, err := ctl.Svc.Summary(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /dashboard/me
func (ctl *DashboardController) Mine(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	rows, err := ctl.Svc.StudentSummaries(c.UserContext(), userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, rows, nil)
}
