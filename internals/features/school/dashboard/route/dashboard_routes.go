package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/dashboard/controller"
	"schooldesk_backend/internals/helpers/cache"
)

// DashboardUserRoutes: /api/u/dashboard/me
func DashboardUserRoutes(r fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewDashboardController(db, store)
	r.Get("/dashboard/me", ctrl.Mine)
}

// DashboardStaffRoutes: /api/a/dashboard/summary
func DashboardStaffRoutes(r fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewDashboardController(db, store)
	r.Get("/dashboard/summary", ctrl.Summary)
}
