package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/finance/fees/controller"
	"schooldesk_backend/internals/features/finance/fees/service"
	authMiddleware "schooldesk_backend/internals/middlewares/auth"
)

// FeePublicRoutes: webhook Midtrans di /api/fees/notification (tanpa auth).
func FeePublicRoutes(app fiber.Router, db *gorm.DB, gw service.PaymentGateway, serverKey string) {
	ctrl := controller.NewFeeController(db, gw, serverKey)
	app.Post("/api/fees/notification", ctrl.Notification)
}

// FeeUserRoutes: /api/u (orang tua / siswa)
func FeeUserRoutes(r fiber.Router, db *gorm.DB, gw service.PaymentGateway, serverKey string) {
	ctrl := controller.NewFeeController(db, gw, serverKey)
	r.Get("/my-fees", ctrl.Mine)
	r.Get("/fees/:id/receipt", ctrl.Receipt)
	r.Post("/fees/:id/pay", ctrl.Pay)
}

// FeeAdminRoutes: /api/a/fees; baca untuk staff, tulis khusus admin.
func FeeAdminRoutes(r fiber.Router, db *gorm.DB, gw service.PaymentGateway, serverKey string) {
	ctrl := controller.NewFeeController(db, gw, serverKey)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("mengelola tagihan"), constants.AdminOnly...)

	g := r.Group("/fees")
	g.Get("/", ctrl.List)
	g.Get("/export", ctrl.Export)
	g.Get("/classes", ctrl.Classes)
	g.Get("/students/:studentId", ctrl.ByStudent)
	g.Get("/:id", ctrl.GetByID)
	g.Get("/:id/receipt", ctrl.Receipt)

	g.Post("/", adminOnly, ctrl.Create)
	g.Patch("/:id", adminOnly, ctrl.Update)
	g.Delete("/:id", adminOnly, ctrl.Delete)
}
