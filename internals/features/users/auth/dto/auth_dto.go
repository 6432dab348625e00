package dto

import (
	"time"

	"github.com/google/uuid"

	authModel "inkubator_backend/internals/features/users/auth/model"
)

/* =========================================================
   REQUEST
========================================================= */

type LoginPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateMeRequest patch parsial profil sendiri; nil = tidak diubah.
type UpdateMeRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=2,max=150"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

/* =========================================================
   RESPONSE
========================================================= */

type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"display_name"`
	PhotoURL      *string    `json:"photo_url,omitempty"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	Role          string     `json:"role"`
	NIDN          *string    `json:"nidn,omitempty"`
	IsActive      bool       `json:"is_active"`
	EmailVerified bool       `json:"email_verified"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func FromUserModel(u *authModel.UserModel) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		PhotoURL:      u.PhotoURL,
		PhoneNumber:   u.PhoneNumber,
		Role:          u.Role,
		NIDN:          u.NIDN,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		LastLogin:     u.LastLogin,
		CreatedAt:     u.CreatedAt,
	}
}

// LoginResponse body POST /api/auth/login
type LoginResponse struct {
	Message string       `json:"message"`
	Status  string       `json:"status"`
	User    UserResponse `json:"user"`
}

// PasswordLoginResponse body POST /api/auth/login-password
type PasswordLoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}
