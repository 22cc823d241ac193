package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/id_cards/controller"
	helperOSS "schooldesk_backend/internals/helpers/oss"
	authMiddleware "schooldesk_backend/internals/middlewares/auth"
)

// IDCardAdminRoutes: /api/a/id-cards (staff); hapus khusus admin.
func IDCardAdminRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewIDCardController(db, blob)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("menghapus ID card"), constants.AdminOnly...)

	g := r.Group("/id-cards")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Post("/export", ctrl.Export)
	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", adminOnly, ctrl.Delete)
	g.Post("/:id/photos/:photoType", ctrl.UploadPhoto)
	g.Post("/:id/download", ctrl.Download)
}
