package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/students/controller"
	authMiddleware "schooldesk_backend/internals/middlewares/auth"
)

// LegacyStudentRoutes: /api/students (tanpa auth) dan /api/u/students (authMw dengan 401 {error}).
func LegacyStudentRoutes(app *fiber.App, db *gorm.DB, legacyAuth fiber.Handler) {
	ctrl := controller.NewStudentController(db)

	open := app.Group("/api/students")
	open.Get("/", ctrl.LegacyList)
	open.Post("/", ctrl.LegacyCreate)

	authed := app.Group("/api/u/students", legacyAuth)
	authed.Get("/", ctrl.LegacyList)
	authed.Post("/", ctrl.LegacyCreate)
}

// StudentUserRoutes: /api/u/my-student
func StudentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentController(db)
	r.Get("/my-student", ctrl.Mine)
}

// StudentAdminRoutes: /api/a/students (TEACHER ke atas baca, ADMIN tulis)
func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("students"), constants.AdminOnly...)

	g := r.Group("/students")
	g.Get("/", ctrl.List)
	g.Get("/by-class/:classId", ctrl.ByClass)
	g.Get("/:id", ctrl.GetByID)
	g.Post("/", adminOnly, ctrl.Create)
	g.Patch("/:id", adminOnly, ctrl.Update)
	g.Delete("/:id", adminOnly, ctrl.Delete)
}
