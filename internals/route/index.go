// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkubator_backend/internals/constants"
	regService "inkubator_backend/internals/features/tenants/registrations/service"
	authService "inkubator_backend/internals/features/users/auth/service"
	authMw "inkubator_backend/internals/middlewares/auth"
	routeDetails "inkubator_backend/internals/route/details"
)

var startTime time.Time

// Deps dependency yang dibangun main.go lalu dibagikan ke route.
type Deps struct {
	DB            *gorm.DB
	Auth          *authService.AuthService
	Registrations *regService.Service
}

func SetupRoutes(app *fiber.App, deps Deps) {
	startTime = time.Now()
	log := zap.L()

	BaseRoutes(app, deps.DB)

	// ===================== AUTH =====================
	log.Info("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, deps.Auth)

	// ===================== TENANT =====================
	log.Info("[INFO] Setting up TenantRoutes...")
	routeDetails.TenantRoutes(app, deps.Auth, deps.Registrations)

	// ===================== ADMIN =====================
	log.Info("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/admin",
		authMw.AuthMiddleware(deps.Auth),
		authMw.OnlyRoles(constants.RoleErrorAdmin("manajemen"), constants.AdminOnly...),
	)
	routeDetails.AdminRoutes(admin, deps.DB)

	// ===================== LECTURER =====================
	log.Info("[INFO] Setting up LECTURER group (Auth + RoleCheck)...")
	lecturer := app.Group("/api/lecturer",
		authMw.AuthMiddleware(deps.Auth),
		authMw.OnlyRoles(constants.RoleErrorLecturer("penilaian"), constants.LecturerOnly...),
	)
	routeDetails.LecturerRoutes(lecturer, deps.DB)
}
