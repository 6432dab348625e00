package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkubator_backend/internals/constants"
	"inkubator_backend/internals/features/tenants/registrations/validation"
	accountDTO "inkubator_backend/internals/features/users/accounts/dto"
	authDTO "inkubator_backend/internals/features/users/auth/dto"
	authModel "inkubator_backend/internals/features/users/auth/model"
	authRepo "inkubator_backend/internals/features/users/auth/repository"
	authService "inkubator_backend/internals/features/users/auth/service"
	helper "inkubator_backend/internals/helpers"
	authMw "inkubator_backend/internals/middlewares/auth"
)

type AdminAccountController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAdminAccountController(db *gorm.DB) *AdminAccountController {
	return &AdminAccountController{DB: db, Validate: validator.New()}
}

// POST /api/admin/users
func (ac *AdminAccountController) CreateAccount(c *fiber.Ctx) error {
	var req accountDTO.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err, map[string]string{
			"Role":  "role harus TENANT atau LECTURER",
			"Email": "Format email tidak valid",
		}))
	}
	if req.PhoneNumber != nil {
		if r := validation.ValidatePhone(*req.PhoneNumber); !r.Valid {
			return helper.JsonValidationError(c, []helper.FieldError{{Loc: []string{"body", "phone_number"}, Msg: r.Message}})
		}
	}
	if req.Role == constants.RoleLecturer && req.NIDN == nil {
		return helper.JsonValidationError(c, []helper.FieldError{{Loc: []string{"body", "nidn"}, Msg: "NIDN wajib diisi untuk dosen"}})
	}

	taken, err := authRepo.IsEmailTaken(c.UserContext(), ac.DB, req.Email)
	if err != nil {
		zap.L().Error("[ERROR] IsEmailTaken", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa email")
	}
	if taken {
		return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
	}

	var hash *string
	if req.Password != "" {
		h, err := authService.HashPassword(req.Password)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
		}
		hash = &h
	}

	user := req.ToModel(hash)
	if err := authRepo.CreateUser(c.UserContext(), ac.DB, user); err != nil {
		zap.L().Error("[ERROR] CreateAccount", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}
	return helper.JsonCreated(c, "Akun berhasil dibuat", authDTO.FromUserModel(user))
}

// GET /api/admin/users?role=&q=&skip=&limit=
func (ac *AdminAccountController) ListAccounts(c *fiber.Ctx) error {
	query := accountDTO.ListAccountsQuery{
		Role: strings.ToUpper(strings.TrimSpace(c.Query("role"))),
		Q:    strings.TrimSpace(c.Query("q")),
	}
	if !query.RoleValid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "role tidak dikenal")
	}
	win := helper.ResolveWindow(c, helper.DefaultOpts)

	tx := ac.DB.WithContext(c.UserContext()).Model(&authModel.UserModel{})
	if query.Role != "" {
		tx = tx.Where("role = ?", query.Role)
	}
	if query.Q != "" {
		like := "%" + query.Q + "%"
		tx = tx.Where("display_name ILIKE ? OR email ILIKE ? OR nidn ILIKE ?", like, like, like)
	}

	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		zap.L().Error("[ERROR] CountAccounts", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pengguna")
	}

	var users []authModel.UserModel
	if err := tx.Order("created_at DESC").Offset(win.Skip).Limit(win.Limit).Find(&users).Error; err != nil {
		zap.L().Error("[ERROR] ListAccounts", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pengguna")
	}

	resp := make([]authDTO.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, authDTO.FromUserModel(&users[i]))
	}
	return helper.JsonOK(c, "Users fetched successfully", fiber.Map{
		"users": resp,
		"total": total,
		"skip":  win.Skip,
		"limit": win.Limit,
	})
}

// PATCH /api/admin/users/:id/active  {is_active}
func (ac *AdminAccountController) SetActive(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID user tidak valid")
	}
	var req accountDTO.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err, map[string]string{"IsActive": "is_active wajib diisi"}))
	}

	if me, err := authMw.GetUserID(c); err == nil && me == targetID {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak bisa mengubah status akun sendiri")
	}

	target, err := authRepo.FindUserByID(c.UserContext(), ac.DB, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil user")
	}
	if target.Role == constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Status akun admin tidak bisa diubah")
	}

	if err := authRepo.UpdateUserFields(c.UserContext(), ac.DB, targetID, map[string]any{"is_active": *req.IsActive}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah status akun")
	}
	target.IsActive = *req.IsActive

	msg := "Akun dinonaktifkan"
	if target.IsActive {
		msg = "Akun diaktifkan"
	}
	return helper.JsonUpdated(c, msg, authDTO.FromUserModel(target))
}
