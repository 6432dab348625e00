package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"inkubator_backend/internals/configs"
)

// LoggerMiddleware untuk mencatat semua request (access log, terpisah dari log zap)
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   configs.GetEnv("APP_TIMEZONE", "Asia/Jakarta"),
		Format:     "[${time}] ${ip} - ${method} ${path} - ${status} - ${latency}\n",
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	})
}
