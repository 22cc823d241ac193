package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/classwork/controller"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

// ClassworkUserRoutes: /api/u/classwork (siswa: kelas sendiri)
func ClassworkUserRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewClassworkController(db, blob)
	g := r.Group("/classwork")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
}

// ClassworkTeacherRoutes: /api/a/classwork
func ClassworkTeacherRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewClassworkController(db, blob)
	g := r.Group("/classwork")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Post("/", ctrl.Create)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Post("/:id/files", ctrl.UploadFile)
	g.Delete("/:id/files/:fileId", ctrl.DeleteFile)
}
