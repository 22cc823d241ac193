package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
	"github.com/rs/zerolog/log"
)

const LocRequestID = "reqid"

// RequestContext: Request-ID + timeout guard (selaras dengan statement_timeout di DB).
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals(LocRequestID, id)

		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		log.Debug().
			Str("id", id).
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", c.Response().StatusCode()).
			Dur("dur", time.Since(start)).
			Msg("[REQ]")
		return err
	}
}
