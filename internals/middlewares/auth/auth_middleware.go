// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

type Config struct {
	Secret    string
	Blacklist helperAuth.Blacklist
	// Unauthorized menulis response 401; default envelope standar.
	Unauthorized func(c *fiber.Ctx, msg string) error
	Now          func() time.Time
}

// Public webhook path yang di-skip auth
var skipPaths = map[string]struct{}{
	"/api/fees/notification": {},
}

func AuthMiddleware(cfg Config) fiber.Handler {
	if cfg.Unauthorized == nil {
		cfg.Unauthorized = func(c *fiber.Ctx, msg string) error {
			return helper.JsonError(c, fiber.StatusUnauthorized, msg)
		}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		raw := helperAuth.GetRawAccessToken(c)
		if raw == "" {
			return cfg.Unauthorized(c, "Unauthorized")
		}
		if cfg.Secret == "" {
			log.Error().Msg("JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		// blacklist dicek sekali per request
		if cfg.Blacklist != nil && c.Locals("token_checked") == nil {
			bl, err := cfg.Blacklist.IsBlacklisted(c.UserContext(), raw)
			if err != nil {
				log.Error().Err(err).Msg("cek blacklist gagal")
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if bl {
				return cfg.Unauthorized(c, "Unauthorized - Token is blacklisted")
			}
			c.Locals("token_checked", true)
		}

		claims, err := helperAuth.ParseAccessToken(cfg.Secret, raw, cfg.Now())
		if err != nil {
			if errors.Is(err, helperAuth.ErrTokenExpired) {
				return cfg.Unauthorized(c, "Unauthorized - Token expired")
			}
			log.Debug().Err(err).Msg("token ditolak")
			return cfg.Unauthorized(c, "Unauthorized")
		}

		c.Locals(helperAuth.LocUserID, claims.Subject)
		c.Locals(helperAuth.LocRole, claims.Role)
		c.Locals(helperAuth.LocEmail, claims.Email)
		c.Locals(helperAuth.LocRawToken, raw)
		return c.Next()
	}
}
