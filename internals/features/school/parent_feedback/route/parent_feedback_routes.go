package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/parent_feedback/controller"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

// ParentFeedbackPublicRoutes: /api/public/parent-feedback (form orang tua)
func ParentFeedbackPublicRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewParentFeedbackController(db, blob)
	g := r.Group("/parent-feedback/submissions")
	g.Post("/", ctrl.Submit)
	g.Get("/check", ctrl.CheckExisting)
}

// ParentFeedbackUserRoutes: /api/u/parent-feedback (lihat + unduh sertifikat)
func ParentFeedbackUserRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewParentFeedbackController(db, blob)
	g := r.Group("/parent-feedback")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Get("/:id/certificate/download", ctrl.Download)
}

// ParentFeedbackTeacherRoutes: /api/a/parent-feedback
func ParentFeedbackTeacherRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewParentFeedbackController(db, blob)
	g := r.Group("/parent-feedback")

	// submissions dulu supaya tidak tertangkap /:id
	s := g.Group("/submissions")
	s.Get("/", ctrl.ListSubmitted)
	s.Get("/:id", ctrl.GetSubmitted)
	s.Patch("/:id/status", ctrl.UpdateSubmittedStatus)
	s.Post("/:id/response", ctrl.Respond)

	g.Get("/photos", ctrl.Photos)
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Post("/:id/certificate", ctrl.GenerateCertificate)
	g.Get("/:id/certificate", ctrl.Certificate)
	g.Post("/:id/certificate/downloads", ctrl.IncrementDownload)
	g.Get("/:id/certificate/download", ctrl.Download)
}
