package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/sports_enrollments/controller"
	authMiddleware "schooldesk_backend/internals/middlewares/auth"
)

// SportsEnrollmentPublicRoutes: form pendaftaran di landing page (tanpa login).
func SportsEnrollmentPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSportsEnrollmentController(db)
	g := r.Group("/sports-enrollments")
	g.Post("/", ctrl.Create)
	g.Get("/check", ctrl.Check)
	g.Get("/count", ctrl.Count)
}

// SportsEnrollmentAdminRoutes: /api/a/sports-enrollments
func SportsEnrollmentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSportsEnrollmentController(db)
	g := r.Group("/sports-enrollments")
	g.Get("/", ctrl.List)
	g.Get("/grouped", ctrl.Grouped)
	g.Get("/export", ctrl.Export)
	g.Delete("/:id", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("menghapus pendaftaran"), constants.AdminOnly...), ctrl.Delete)
}
