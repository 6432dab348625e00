package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkubator_backend/internals/constants"
	gradingDTO "inkubator_backend/internals/features/tenants/gradings/dto"
	gradingModel "inkubator_backend/internals/features/tenants/gradings/model"
	regModel "inkubator_backend/internals/features/tenants/registrations/model"
	authRepo "inkubator_backend/internals/features/users/auth/repository"
	helper "inkubator_backend/internals/helpers"
	authMw "inkubator_backend/internals/middlewares/auth"
)

type GradingController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewGradingController(db *gorm.DB) *GradingController {
	return &GradingController{DB: db, Validate: validator.New()}
}

/* ===============================
   ADMIN
=================================*/

// PUT /api/admin/tenants/:id/lecturer  {lecturer_id}
func (gc *GradingController) AssignLecturer(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tenant tidak valid")
	}
	adminID, err := authMw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req gradingDTO.AssignLecturerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := gc.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err, map[string]string{
			"LecturerID": "lecturer_id wajib berupa UUID",
		}))
	}
	lecturerID := uuid.MustParse(req.LecturerID)
	ctx := c.UserContext()

	var reg regModel.TenantRegistrationModel
	if err := gc.DB.WithContext(ctx).Select("id", "status").Where("id = ?", tenantID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registrasi tenant tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil registrasi")
	}
	if reg.Status != regModel.StatusApproved {
		return helper.JsonError(c, fiber.StatusConflict, "Dosen hanya bisa ditugaskan ke tenant yang sudah disetujui")
	}

	lecturer, err := authRepo.FindUserByID(ctx, gc.DB, lecturerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Dosen tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data dosen")
	}
	if lecturer.Role != constants.RoleLecturer || !lecturer.IsActive {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "User bukan dosen aktif")
	}

	grading := gradingModel.TenantGradingModel{
		TenantID:   tenantID,
		LecturerID: lecturerID,
		AssignedBy: adminID,
	}
	if err := gc.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"lecturer_id", "assigned_by", "updated_at"}),
	}).Create(&grading).Error; err != nil {
		zap.L().Error("[ERROR] assign lecturer", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menugaskan dosen")
	}

	zap.L().Info("👩‍🏫 dosen ditugaskan",
		zap.String("tenant_id", tenantID.String()), zap.String("lecturer_id", lecturerID.String()))
	return helper.JsonUpdated(c, "Dosen berhasil ditugaskan", fiber.Map{
		"tenant_id":   tenantID,
		"lecturer_id": lecturerID,
	})
}

// GET /api/admin/tenants/:id/grading
func (gc *GradingController) AdminGetGrading(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tenant tidak valid")
	}
	var g gradingModel.TenantGradingModel
	if err := gc.DB.WithContext(c.UserContext()).Where("tenant_id = ?", tenantID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Belum ada dosen yang ditugaskan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil penilaian")
	}
	return helper.JsonOK(c, "Penilaian tenant", gradingDTO.FromModel(&g))
}

/* ===============================
   LECTURER
=================================*/

// GET /api/lecturer/tenants
func (gc *GradingController) ListAssigned(c *fiber.Ctx) error {
	lecturerID, err := authMw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	var rows []gradingModel.TenantGradingModel
	if err := gc.DB.WithContext(c.UserContext()).
		Preload("Registration").
		Preload("Registration.BusinessDocuments").
		Where("lecturer_id = ?", lecturerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		zap.L().Error("[ERROR] list assigned tenants", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar tenant")
	}

	out := make([]gradingDTO.GradingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, gradingDTO.FromModel(&rows[i]))
	}
	return helper.JsonOK(c, "Daftar tenant binaan", fiber.Map{
		"gradings": out,
		"weights":  gradingDTO.Weights(),
		"total":    len(out),
	})
}

// PUT /api/lecturer/tenants/:id/grade
func (gc *GradingController) SubmitGrade(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tenant tidak valid")
	}
	lecturerID, err := authMw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req gradingDTO.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := gc.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err, nil))
	}

	ctx := c.UserContext()
	var g gradingModel.TenantGradingModel
	if err := gc.DB.WithContext(ctx).
		Where("tenant_id = ? AND lecturer_id = ?", tenantID, lecturerID).
		First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tenant tidak ditugaskan ke Anda")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil penilaian")
	}

	g.SetScores(req.Scores(), time.Now().UTC())
	g.Notes = req.Notes
	if err := gc.DB.WithContext(ctx).Save(&g).Error; err != nil {
		zap.L().Error("[ERROR] save grading", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan penilaian")
	}
	return helper.JsonUpdated(c, "Penilaian tersimpan", gradingDTO.FromModel(&g))
}
