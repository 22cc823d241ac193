package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/interactive_assignments/controller"
)

// InteractiveAssignmentPublicRoutes: /api/public/interactive-assignments/play/:link
func InteractiveAssignmentPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewInteractiveAssignmentController(db)
	r.Get("/interactive-assignments/play/:link", ctrl.Play)
}

// InteractiveAssignmentUserRoutes: /api/u/interactive-assignments
func InteractiveAssignmentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewInteractiveAssignmentController(db)
	g := r.Group("/interactive-assignments")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Get("/:id/submission", ctrl.StudentSubmission)
	g.Post("/:id/submit", ctrl.Submit)
}

// InteractiveAssignmentTeacherRoutes: /api/a/interactive-assignments
func InteractiveAssignmentTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewInteractiveAssignmentController(db)
	g := r.Group("/interactive-assignments")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Patch("/submissions/:submissionId/grade", ctrl.Grade)
	g.Get("/:id", ctrl.GetByID)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Put("/:id/questions", ctrl.UpdateQuestions)
	g.Get("/:id/submissions", ctrl.Submissions)
	g.Post("/:id/share", ctrl.Share)
}
