package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/admissions/controller"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

// AdmissionPublicRoutes: form enquiry + cek progress dari landing page.
func AdmissionPublicRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewAdmissionController(db, blob)
	g := r.Group("/admissions")
	g.Post("/enquiries", ctrl.CreateEnquiry)
	g.Get("/enquiries/:id/progress", ctrl.Progress)
}

// AdmissionStaffRoutes: /api/a/admissions
func AdmissionStaffRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewAdmissionController(db, blob)
	g := r.Group("/admissions")
	g.Get("/stats", ctrl.Stats)

	e := g.Group("/enquiries")
	e.Get("/", ctrl.ListEnquiries)
	e.Get("/:id", ctrl.GetEnquiry)
	e.Patch("/:id", ctrl.UpdateEnquiry)
	e.Put("/:id/status", ctrl.UpdateStatus)
	e.Get("/:id/progress", ctrl.Progress)
	e.Put("/:id/progress", ctrl.UpdateProgress)
	e.Get("/:id/documents", ctrl.Documents)
	e.Post("/:id/documents/:docType", ctrl.UploadDocument)
	e.Put("/:id/documents/:docType/verify", ctrl.VerifyDocument)
	e.Get("/:id/notes", ctrl.Notes)
	e.Post("/:id/notes", ctrl.AddNote)
	e.Get("/:id/communications", ctrl.Communications)
	e.Post("/:id/communications", ctrl.AddCommunication)
}
