package middlewares

import (
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"schooldesk_backend/internals/configs"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/ratelimit"
)

// NewRateLimitRegistry: RATE_LIMIT_MAX / RATE_LIMIT_WINDOW_MS, default 10000 per 60 detik.
func NewRateLimitRegistry() *ratelimit.Registry {
	return ratelimit.NewRegistry(ratelimit.Options{
		MaxRequests: configs.GetEnvInt("RATE_LIMIT_MAX", ratelimit.DefaultMaxRequests),
		TimeWindow:  time.Duration(configs.GetEnvInt("RATE_LIMIT_WINDOW_MS", int(ratelimit.DefaultTimeWindow/time.Millisecond))) * time.Millisecond,
	})
}

// SlidingWindowRateLimiter: satu sliding window per IP client.
func SlidingWindowRateLimiter(reg *ratelimit.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := reg.Get(c.IP())
		allowed := l.CheckLimit()

		reset := l.TimeUntilReset()
		c.Set("X-RateLimit-Limit", strconv.Itoa(l.Max()))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(l.RemainingRequests()))
		c.Set("X-RateLimit-Reset", strconv.Itoa(int(math.Ceil(reset.Seconds()))))

		if !allowed {
			rateLimited.Inc()
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(max(1, int(math.Ceil(reset.Seconds())))))
			return helper.JsonError(c, fiber.StatusTooManyRequests, "Terlalu banyak permintaan. Silakan coba lagi nanti.")
		}
		return c.Next()
	}
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        configs.GetEnvInt("LOGIN_RATE_LIMIT_MAX", 5),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "Terlalu banyak percobaan login. Coba beberapa saat lagi.")
		},
	})
}

// Rate limiter untuk register route
func RegisterRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        configs.GetEnvInt("REGISTER_RATE_LIMIT_MAX", 3),
		Expiration: 5 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "Terlalu banyak percobaan pendaftaran. Tunggu beberapa menit ya.")
		},
	})
}
