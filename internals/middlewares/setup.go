package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"inkubator_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global: recover → cors → access log → rate limit.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
