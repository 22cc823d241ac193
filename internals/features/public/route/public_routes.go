package route

import (
	"github.com/gofiber/fiber/v2"

	"schooldesk_backend/internals/features/public/controller"
	"schooldesk_backend/internals/features/public/service"
	"schooldesk_backend/internals/helpers/cache"
)

// PublicRoutes: data landing page di /api/public.
func PublicRoutes(r fiber.Router, store cache.Store) {
	var places service.PlacesClient
	if g := service.NewGooglePlacesClientFromEnv(); g != nil {
		places = g
	}
	ctrl := controller.NewPublicController(places, store)
	r.Get("/reviews", ctrl.Reviews)
	r.Get("/qr", ctrl.QRCode)
	r.Get("/school", ctrl.SchoolInfo)
}
