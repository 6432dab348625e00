package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"inkubator_backend/internals/features/tenants/gradings/controller"
)

// GradingAdminRoutes
// Base: /api/admin (Auth + OnlyRoles ADMIN dipasang di group)
func GradingAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewGradingController(db)

	tenants := admin.Group("/tenants")
	tenants.Put("/:id/lecturer", ctrl.AssignLecturer)
	tenants.Get("/:id/grading", ctrl.AdminGetGrading)
}

// GradingLecturerRoutes
// Base: /api/lecturer (Auth + OnlyRoles LECTURER dipasang di group)
func GradingLecturerRoutes(lecturer fiber.Router, db *gorm.DB) {
	ctrl := controller.NewGradingController(db)

	tenants := lecturer.Group("/tenants")
	tenants.Get("/", ctrl.ListAssigned)
	tenants.Put("/:id/grade", ctrl.SubmitGrade)
}
