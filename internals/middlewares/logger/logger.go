package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/helpers/dbtime"
)

// LoggerMiddleware untuk mencatat semua request (access log, ditulis lewat zerolog).
// Jam di log mengikuti zona waktu sekolah.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   dbtime.SchoolLocation().String(),
		Format:     "[${time}] ${ip} - ${method} ${path} - ${status} - ${latency}\n",
		Output:     log.Logger,
	})
}
