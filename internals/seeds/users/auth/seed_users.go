package user

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkubator_backend/internals/constants"
	authModel "inkubator_backend/internals/features/users/auth/model"
	authRepo "inkubator_backend/internals/features/users/auth/repository"
	authService "inkubator_backend/internals/features/users/auth/service"
)

// UserSeed satu akun awal (admin / dosen pembina) dari file JSON.
type UserSeed struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	NIDN        string `json:"nidn"`
}

func (s UserSeed) validate() error {
	if strings.TrimSpace(s.Email) == "" {
		return fmt.Errorf("email kosong")
	}
	if !constants.IsValidRole(s.Role) {
		return fmt.Errorf("role %q tidak valid", s.Role)
	}
	if s.Role == constants.RoleLecturer && strings.TrimSpace(s.NIDN) == "" {
		return fmt.Errorf("dosen %s wajib punya nidn", s.Email)
	}
	return nil
}

// SeedUsersFromJSON membuat akun yang belum ada (by email); yang sudah ada dilewati.
// Mengembalikan jumlah akun yang dibuat.
func SeedUsersFromJSON(ctx context.Context, db *gorm.DB, filePath string) (int, error) {
	log := zap.L().Named("seed")
	log.Info("📥 Membaca file user", zap.String("path", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("baca file seed: %w", err)
	}
	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode seed: %w", err)
	}
	return SeedUsers(ctx, db, inputs)
}

func SeedUsers(ctx context.Context, db *gorm.DB, inputs []UserSeed) (int, error) {
	log := zap.L().Named("seed")
	created := 0
	for _, data := range inputs {
		if err := data.validate(); err != nil {
			log.Warn("⚠️ seed user dilewati", zap.String("email", data.Email), zap.Error(err))
			continue
		}
		email := strings.ToLower(strings.TrimSpace(data.Email))

		taken, err := authRepo.IsEmailTaken(ctx, db, email)
		if err != nil {
			return created, err
		}
		if taken {
			log.Info("ℹ️ User sudah ada, dilewati", zap.String("email", email))
			continue
		}

		user := &authModel.UserModel{
			Email:       email,
			DisplayName: strings.TrimSpace(data.DisplayName),
			Role:        data.Role,
			IsActive:    true,
		}
		if data.Password != "" {
			hash, err := authService.HashPassword(data.Password)
			if err != nil {
				return created, fmt.Errorf("hash password %s: %w", email, err)
			}
			user.PasswordHash = &hash
		}
		if nidn := strings.TrimSpace(data.NIDN); nidn != "" {
			user.NIDN = &nidn
		}

		if err := authRepo.CreateUser(ctx, db, user); err != nil {
			return created, fmt.Errorf("insert user %s: %w", email, err)
		}
		created++
		log.Info("✅ Berhasil insert user", zap.String("email", email), zap.String("role", user.Role))
	}
	return created, nil
}
