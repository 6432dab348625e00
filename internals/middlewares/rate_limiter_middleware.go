package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"inkubator_backend/internals/configs"
	helper "inkubator_backend/internals/helpers"
)

// limiterKey: per user bila sudah login, selain itu per IP.
func limiterKey(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok && id != "" {
		return "u:" + id
	}
	return "ip:" + c.IP()
}

func newLimiter(envKey string, max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          configs.GetEnvInt(envKey, max),
		Expiration:   window,
		KeyGenerator: limiterKey,
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return newLimiter("RATE_LIMIT_GLOBAL", 100, time.Minute,
		"❌ Terlalu banyak permintaan. Silakan coba lagi nanti.")
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return newLimiter("RATE_LIMIT_LOGIN", 5, time.Minute,
		"❌ Terlalu banyak percobaan login. Coba beberapa saat lagi.")
}

// Rate limiter untuk submit registrasi tenant (upload dokumen)
func RegisterRateLimiter() fiber.Handler {
	return newLimiter("RATE_LIMIT_REGISTER", 3, 5*time.Minute,
		"❌ Terlalu banyak percobaan pendaftaran. Tunggu beberapa menit ya.")
}

// Rate limiter untuk export xlsx
func ExportRateLimiter() fiber.Handler {
	return newLimiter("RATE_LIMIT_EXPORT", 10, 10*time.Minute,
		"❌ Terlalu banyak permintaan export. Silakan coba lagi dalam 10 menit.")
}
