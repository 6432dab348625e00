// internals/middlewares/auth/claims_utils.go
package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	authModel "inkubator_backend/internals/features/users/auth/model"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		return "", fmt.Errorf("unauthorized - no token provided")
	}

	// toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - invalid token format")
	}

	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - empty token")
	}
	return tok, nil
}

/* ======== Store to Locals ======== */

func storeUserToLocals(c *fiber.Ctx, user *authModel.UserModel, token string) {
	c.Locals("user_id", user.ID.String())
	c.Locals("userRole", user.Role)
	c.Locals("user_email", user.Email)
	c.Locals("user_name", user.DisplayName)
	c.Locals("access_token", token)
}

/* ======== Getters untuk controller ======== */

// GetUserID membaca user_id dari Locals yang diisi AuthMiddleware.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid user id")
	}
	return id, nil
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return role
}

func GetAccessToken(c *fiber.Ctx) string {
	tok, _ := c.Locals("access_token").(string)
	return tok
}
