package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/slips/controller"
	authMiddleware "schooldesk_backend/internals/middlewares/auth"
)

// SlipAdminRoutes: /api/a/slips; konfigurasi field/template khusus admin,
// isian slip boleh staff.
func SlipAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSlipController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("mengatur template slip"), constants.AdminOnly...)

	g := r.Group("/slips")

	fields := g.Group("/fields")
	fields.Get("/", ctrl.ListFields)
	fields.Post("/", adminOnly, ctrl.AddField)
	fields.Patch("/:id", adminOnly, ctrl.UpdateField)
	fields.Delete("/:id", adminOnly, ctrl.RemoveField)

	tpl := g.Group("/templates")
	tpl.Get("/", ctrl.ListTemplates)
	tpl.Get("/:id", ctrl.GetTemplate)
	tpl.Get("/:id/export", ctrl.Export)
	tpl.Post("/", adminOnly, ctrl.CreateTemplate)
	tpl.Patch("/:id", adminOnly, ctrl.UpdateTemplate)
	tpl.Delete("/:id", adminOnly, ctrl.DeleteTemplate)

	data := g.Group("/data")
	data.Get("/", ctrl.ListData)
	data.Post("/", ctrl.CreateData)
	data.Patch("/:id", ctrl.UpdateData)
	data.Delete("/:id", ctrl.DeleteData)
}
