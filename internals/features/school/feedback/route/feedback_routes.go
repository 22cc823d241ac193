package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/feedback/controller"
)

// FeedbackUserRoutes: /api/u/feedback (orang tua kirim & lihat miliknya)
func FeedbackUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFeedbackController(db)
	g := r.Group("/feedback")
	g.Post("/", ctrl.Create)
	g.Get("/mine", ctrl.Mine)
	g.Get("/:id", ctrl.GetByID)
}

// FeedbackStaffRoutes: /api/a/feedback
func FeedbackStaffRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFeedbackController(db)
	g := r.Group("/feedback")
	g.Get("/", ctrl.List)
	g.Get("/users/:userId", ctrl.ByUser)
	g.Get("/:id", ctrl.GetByID)
	g.Patch("/:id/status", ctrl.UpdateStatus)
	g.Post("/:id/replies", ctrl.Reply)
}
