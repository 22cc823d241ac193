package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"schooldesk_backend/internals/helpers/ratelimit"
	"schooldesk_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan penting, recovery paling luar.
func SetupMiddlewares(app *fiber.App, reg *ratelimit.Registry) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(5 * time.Second))
	app.Use(MetricsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(SlidingWindowRateLimiter(reg))
}
