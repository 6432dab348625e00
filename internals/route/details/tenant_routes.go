package details

import (
	"github.com/gofiber/fiber/v2"

	regRoute "inkubator_backend/internals/features/tenants/registrations/route"
	regService "inkubator_backend/internals/features/tenants/registrations/service"
	authMw "inkubator_backend/internals/middlewares/auth"
)

// TenantRoutes /api/tenant (tenant + admin review, role dicek per route)
func TenantRoutes(app *fiber.App, resolver authMw.TokenResolver, svc *regService.Service) {
	regRoute.RegistrationRoutes(app, resolver, svc)
}
