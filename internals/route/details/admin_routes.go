package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradingRoute "inkubator_backend/internals/features/tenants/gradings/route"
	accountRoute "inkubator_backend/internals/features/users/accounts/route"
)

// AdminRoutes /api/admin (group sudah Auth + ADMIN)
func AdminRoutes(admin fiber.Router, db *gorm.DB) {
	accountRoute.AccountAdminRoutes(admin, db)
	gradingRoute.GradingAdminRoutes(admin, db)
}

// LecturerRoutes /api/lecturer (group sudah Auth + LECTURER)
func LecturerRoutes(lecturer fiber.Router, db *gorm.DB) {
	gradingRoute.GradingLecturerRoutes(lecturer, db)
}
