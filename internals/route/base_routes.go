package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"schooldesk_backend/internals/configs"
	database "schooldesk_backend/internals/databases"
	"schooldesk_backend/internals/middlewares"
)

var startTime = time.Now()

// BaseRoutes: root, /health (ping DB + uptime), /metrics (prometheus).
func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("SchoolDesk API is running")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":        serverStatus,
			"database":      dbStatus,
			"serverTime":    time.Now().Format(time.RFC3339),
			"uptimeSeconds": int(time.Since(startTime).Seconds()),
			"environment":   configs.GetEnv("APP_ENV", "development"),
		})
	})

	app.Get("/metrics", middlewares.MetricsHandler())
}
