package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/assignments/controller"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

// AssignmentUserRoutes: /api/u/assignments (siswa: per tanggal)
func AssignmentUserRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewAssignmentController(db, blob)
	g := r.Group("/assignments")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
}

// AssignmentTeacherRoutes: /api/a/assignments
func AssignmentTeacherRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewAssignmentController(db, blob)
	g := r.Group("/assignments")
	g.Get("/", ctrl.List)
	g.Get("/all", ctrl.ListAll)
	g.Get("/:id", ctrl.GetByID)
	g.Post("/", ctrl.Create)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Post("/:id/files", ctrl.UploadFile)
	g.Delete("/:id/files/:fileId", ctrl.DeleteFile)
}
