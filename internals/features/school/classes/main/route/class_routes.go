package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/classes/main/controller"
	"schooldesk_backend/internals/helpers/cache"
	authMiddleware "schooldesk_backend/internals/middlewares/auth"
)

// ClassUserRoutes: /api/u/classes (read-only)
func ClassUserRoutes(r fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewClassController(db, store)
	g := r.Group("/classes")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
}

// ClassAdminRoutes: /api/a/classes (ADMIN)
func ClassAdminRoutes(r fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewClassController(db, store)
	g := r.Group("/classes", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("classes"), constants.AdminOnly...))
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
