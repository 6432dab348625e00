// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authModel "inkubator_backend/internals/features/users/auth/model"
	authService "inkubator_backend/internals/features/users/auth/service"
	helper "inkubator_backend/internals/helpers"
)

// TokenResolver memetakan bearer token (access token backend atau ID token
// Firebase/Google) ke user aktif. Diimplementasikan *service.AuthService.
type TokenResolver interface {
	ResolveAccessToken(ctx context.Context, token string) (*authModel.UserModel, error)
}

func AuthMiddleware(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		// 2) Resolve user
		user, err := resolver.ResolveAccessToken(c.UserContext(), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, authService.ErrAccountInactive):
				return helper.JsonError(c, fiber.StatusForbidden, err.Error())
			case errors.Is(err, authService.ErrUserNotRegistered),
				errors.Is(err, authService.ErrTokenRevoked),
				errors.Is(err, authService.ErrInvalidIDToken),
				errors.Is(err, gorm.ErrRecordNotFound):
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - "+err.Error())
			}
			zap.L().Warn("auth: token ditolak", zap.String("path", c.Path()), zap.Error(err))
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or expired token")
		}

		// 3) Simpan info user ke context
		storeUserToLocals(c, user, tokenString)
		return c.Next()
	}
}
