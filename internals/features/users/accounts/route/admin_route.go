package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"inkubator_backend/internals/features/users/accounts/controller"
)

// AccountAdminRoutes
// Base: /api/admin/users (router sudah melewati Auth + OnlyRoles ADMIN)
func AccountAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAdminAccountController(db)

	users := admin.Group("/users")
	users.Post("/", ctrl.CreateAccount)
	users.Get("/", ctrl.ListAccounts)
	users.Patch("/:id/active", ctrl.SetActive)
}
