package helper

import (
	"github.com/gofiber/fiber/v2"
)

// LegacyError menulis bentuk lama `{ "error": "..." }` yang dipakai endpoint /api/students.
func LegacyError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// ErrorHandler dipasang di fiber.Config; semua *fiber.Error jadi envelope standar.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromServiceError(c, err)
}
