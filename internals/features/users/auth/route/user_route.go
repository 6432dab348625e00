// file: internals/features/users/auth/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	controller "inkubator_backend/internals/features/users/auth/controller"
	"inkubator_backend/internals/features/users/auth/service"
	rateLimiter "inkubator_backend/internals/middlewares"
	authMw "inkubator_backend/internals/middlewares/auth"
)

// AuthRoutes
// Base: /api/auth
func AuthRoutes(app *fiber.App, svc *service.AuthService) {
	authController := controller.NewAuthController(svc)
	protected := authMw.AuthMiddleware(svc)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-password", rateLimiter.LoginRateLimiter(), authController.LoginPassword)

	// 🔐 Protected
	baseAuth.Post("/logout", protected, authController.Logout)
	baseAuth.Get("/me", protected, authController.Me)
	baseAuth.Put("/me", protected, authController.UpdateMe)
	baseAuth.Post("/change-password", protected, authController.ChangePassword)
}
