package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/attendance/controller"
)

// AttendanceUserRoutes: /api/u/attendance (read-only per siswa)
func AttendanceUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)
	g := r.Group("/attendance")
	g.Get("/students/:studentId", ctrl.ByStudent)
	g.Get("/students/:studentId/stats", ctrl.Stats)
}

// AttendanceTeacherRoutes: /api/a/attendance
func AttendanceTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)
	g := r.Group("/attendance")
	g.Get("/", ctrl.List)
	g.Get("/students/:studentId", ctrl.ByStudent)
	g.Get("/students/:studentId/stats", ctrl.Stats)
	g.Post("/", ctrl.Create)
	g.Post("/mark", ctrl.MarkClass)
	g.Patch("/:id", ctrl.UpdateStatus)
	g.Delete("/:id", ctrl.Delete)
}
