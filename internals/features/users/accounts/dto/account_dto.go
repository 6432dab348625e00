package dto

import (
	"strings"

	"inkubator_backend/internals/constants"
	authModel "inkubator_backend/internals/features/users/auth/model"
)

// CreateAccountRequest: admin membuat akun TENANT / LECTURER.
// Password opsional; tanpa password user login via Google/Firebase dengan email yang sama.
type CreateAccountRequest struct {
	DisplayName string  `json:"display_name" validate:"required,min=2,max=150"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"omitempty,min=8"`
	Role        string  `json:"role" validate:"required,oneof=TENANT LECTURER"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	NIDN        *string `json:"nidn" validate:"omitempty,max=30"`
}

func (r *CreateAccountRequest) Normalize() {
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	r.PhoneNumber = trimPtr(r.PhoneNumber)
	r.NIDN = trimPtr(r.NIDN)
}

func (r *CreateAccountRequest) ToModel(passwordHash *string) *authModel.UserModel {
	return &authModel.UserModel{
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		Role:         r.Role,
		PhoneNumber:  r.PhoneNumber,
		NIDN:         r.NIDN,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// ListAccountsQuery ?role=&q=&skip=&limit=
type ListAccountsQuery struct {
	Role string
	Q    string
}

func (q ListAccountsQuery) RoleValid() bool {
	return q.Role == "" || constants.IsValidRole(q.Role)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
