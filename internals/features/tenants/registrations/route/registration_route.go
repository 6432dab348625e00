package route

import (
	"github.com/gofiber/fiber/v2"

	"inkubator_backend/internals/constants"
	"inkubator_backend/internals/features/tenants/registrations/controller"
	"inkubator_backend/internals/features/tenants/registrations/service"
	rateLimiter "inkubator_backend/internals/middlewares"
	authMw "inkubator_backend/internals/middlewares/auth"
)

// RegistrationRoutes
// Base: /api/tenant
// Route statis (/me, /register, /export) didaftarkan sebelum /:id.
func RegistrationRoutes(app *fiber.App, resolver authMw.TokenResolver, svc *service.Service) {
	ctrl := controller.NewRegistrationController(svc)

	tenant := app.Group("/api/tenant", authMw.AuthMiddleware(resolver))
	onlyTenant := authMw.OnlyRoles(constants.RoleErrorTenant("registrasi tenant"), constants.TenantOnly...)
	onlyAdmin := authMw.OnlyRoles(constants.RoleErrorAdmin("review tenant"), constants.AdminOnly...)

	// 👤 Tenant
	tenant.Get("/me", onlyTenant, ctrl.GetMine)
	tenant.Post("/register", onlyTenant, rateLimiter.RegisterRateLimiter(), ctrl.Register)

	// 🛡️ Admin
	tenant.Get("/export", onlyAdmin, rateLimiter.ExportRateLimiter(), ctrl.Export)
	tenant.Get("/", onlyAdmin, ctrl.List)
	tenant.Get("/:id", onlyAdmin, ctrl.Detail)
	tenant.Put("/:id/status", onlyAdmin, ctrl.UpdateStatus)
}
