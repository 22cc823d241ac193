package middlewares

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/helpers/ratelimit"
)

func TestSlidingWindowRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reg := ratelimit.NewRegistry(ratelimit.Options{MaxRequests: 2, TimeWindow: 10 * time.Second}).
		WithClock(func() time.Time { return now })

	app := fiber.New()
	app.Use(SlidingWindowRateLimiter(reg))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	do := func() *httptest.ResponseRecorder {
		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		rec.Code = resp.StatusCode
		for k, v := range resp.Header {
			rec.Header()[k] = v
		}
		return rec
	}

	r := do()
	assert.Equal(t, fiber.StatusOK, r.Code)
	assert.Equal(t, "2", r.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", r.Header().Get("X-RateLimit-Remaining"))

	now = now.Add(4 * time.Second)
	assert.Equal(t, fiber.StatusOK, do().Code)

	r = do()
	assert.Equal(t, fiber.StatusTooManyRequests, r.Code)
	assert.Equal(t, "6", r.Header().Get(fiber.HeaderRetryAfter))

	now = now.Add(6 * time.Second)
	assert.Equal(t, fiber.StatusOK, do().Code)
}
