package controller

import (
	"github.com/gofiber/fiber/v2"

	"schooldesk_backend/internals/features/public/service"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/cache"
)

type PublicController struct {
	Svc *service.PublicService
}

func NewPublicController(places service.PlacesClient, store cache.Store) *PublicController {
	return &PublicController{Svc: service.NewPublicService(places, store)}
}

// GET /public/reviews
func (ctl *PublicController) Reviews(c *fiber.Ctx) error {
	d, err := ctl.Svc.PlaceDetails(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=600")
	return helper.JsonOK(c, "ok", d)
}

// GET /public/qr?data=&size=
func (ctl *PublicController) QRCode(c *fiber.Ctx) error {
	res, err := ctl.Svc.QRCode(c.Query("data"), c.QueryInt("size", 0))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /public/school
func (ctl *PublicController) SchoolInfo(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", ctl.Svc.SchoolInfo())
}
