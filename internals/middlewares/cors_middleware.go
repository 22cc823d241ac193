// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"schooldesk_backend/internals/configs"
)

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:8080",
	"http://127.0.0.1:5500",
}

// CorsMiddleware membuat middleware CORS. CORS_ORIGINS (comma separated) menimpa default.
func CorsMiddleware() fiber.Handler {
	origins := defaultOrigins
	if v := strings.TrimSpace(configs.GetEnv("CORS_ORIGINS")); v != "" {
		origins = strings.Split(v, ",")
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset, Retry-After",
		AllowCredentials: true,
	})
}
