package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkubator_backend/internals/features/users/auth/dto"
	"inkubator_backend/internals/features/users/auth/service"
	helper "inkubator_backend/internals/helpers"
	authMw "inkubator_backend/internals/middlewares/auth"
)

type AuthController struct {
	Service  *service.AuthService
	Validate *validator.Validate
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc, Validate: validator.New()}
}

// POST /api/auth/login
// Bearer ID token (Firebase/Google) → upsert user.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	idToken := bearerOrBody(c)
	if idToken == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "ID token wajib dikirim")
	}

	user, err := ac.Service.LoginWithIDToken(c.UserContext(), idToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidIDToken):
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid ID token")
		case errors.Is(err, service.ErrAccountInactive):
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		}
		zap.L().Error("❌ login gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
	}

	return c.Status(fiber.StatusOK).JSON(dto.LoginResponse{
		Message: "Login berhasil",
		Status:  "success",
		User:    dto.FromUserModel(user),
	})
}

// POST /api/auth/login-password
func (ac *AuthController) LoginPassword(c *fiber.Ctx) error {
	var req dto.LoginPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err, map[string]string{
			"Email":    "Format email tidak valid",
			"Password": "Password minimal 8 karakter",
		}))
	}

	user, token, exp, err := ac.Service.LoginWithPassword(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountInactive):
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrTokenSecretMissing):
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Login password belum dikonfigurasi")
		}
		zap.L().Error("❌ login password gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
	}

	return c.Status(fiber.StatusOK).JSON(dto.PasswordLoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        dto.FromUserModel(user),
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Service.Logout(c.UserContext(), authMw.GetAccessToken(c)); err != nil {
		zap.L().Warn("⚠️ gagal blacklist token", zap.Error(err))
	}
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := authMw.GetUserID(c)
	if err != nil {
		return err
	}
	user, err := ac.Service.GetMe(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil profil")
	}
	return helper.JsonOK(c, "ok", dto.FromUserModel(user))
}

// PUT /api/auth/me
func (ac *AuthController) UpdateMe(c *fiber.Ctx) error {
	userID, err := authMw.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err, nil))
	}

	user, err := ac.Service.UpdateMe(c.UserContext(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhoneNumber) {
			return helper.JsonValidationError(c, []helper.FieldError{{
				Loc: []string{"body", "phone_number"},
				Msg: strings.TrimPrefix(err.Error(), service.ErrInvalidPhoneNumber.Error()+": "),
			}})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update profil")
	}
	return helper.JsonUpdated(c, "Profil berhasil diperbarui", dto.FromUserModel(user))
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := authMw.GetUserID(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err, map[string]string{
			"NewPassword": "Password baru minimal 8 karakter",
		}))
	}

	if err := ac.Service.ChangePassword(c.UserContext(), userID, req); err != nil {
		if errors.Is(err, service.ErrWrongCurrentPassword) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}

// bearerOrBody: Authorization header, fallback body {"id_token": "..."}.
func bearerOrBody(c *fiber.Ctx) string {
	auth := strings.Fields(c.Get("Authorization"))
	if len(auth) == 2 && strings.EqualFold(auth[0], "Bearer") {
		return auth[1]
	}
	var body struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&body); err == nil {
		return strings.TrimSpace(body.IDToken)
	}
	return ""
}
