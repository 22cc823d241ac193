package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/features/school/students/dto"
	helper "schooldesk_backend/internals/helpers"
)

/*
Handler /api/students: bentuk response lama.
Sukses = array/objek mentah, gagal = { "error": "..." }.
*/

// GET /api/students
func (ctl *StudentController) LegacyList(c *fiber.Ctx) error {
	rows, err := ctl.Svc.ListWithProfile(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("[students] list failed")
		return helper.LegacyError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(rows)
}

// POST /api/students
func (ctl *StudentController) LegacyCreate(c *fiber.Ctx) error {
	var req dto.LegacyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.LegacyError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.LegacyError(c, fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Name) == "" {
		return helper.LegacyError(c, fiber.StatusBadRequest, "name is required")
	}
	m, err := ctl.Svc.CreateBasic(c.UserContext(), req)
	if err != nil {
		log.Error().Err(err).Msg("[students] create failed")
		return helper.LegacyError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(m)
}
