// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "inkubator_backend/internals/features/users/auth/model"
)

/* ====================== USER ====================== */

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*authModel.UserModel, error) {
	var user authModel.UserModel
	if err := db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByFirebaseUID(ctx context.Context, db *gorm.DB, uid string) (*authModel.UserModel, error) {
	var user authModel.UserModel
	if err := db.WithContext(ctx).Where("firebase_uid = ?", uid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail case-insensitive (email dari provider bisa beda kapitalisasi).
func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*authModel.UserModel, error) {
	var user authModel.UserModel
	if err := db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(ctx context.Context, db *gorm.DB, user *authModel.UserModel) error {
	return db.WithContext(ctx).Create(user).Error
}

func LinkFirebaseUID(ctx context.Context, db *gorm.DB, userID uuid.UUID, uid string) error {
	return db.WithContext(ctx).Model(&authModel.UserModel{}).
		Where("id = ?", userID).
		Update("firebase_uid", uid).Error
}

func UpdateLastLogin(ctx context.Context, db *gorm.DB, userID uuid.UUID, at time.Time) error {
	return db.WithContext(ctx).Model(&authModel.UserModel{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

// UpdateUserFields patch parsial; map kosong = no-op.
func UpdateUserFields(ctx context.Context, db *gorm.DB, userID uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := db.WithContext(ctx).Model(&authModel.UserModel{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func UpdateUserPassword(ctx context.Context, db *gorm.DB, userID uuid.UUID, hash string) error {
	return db.WithContext(ctx).Model(&authModel.UserModel{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}

func IsEmailTaken(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, errors.New("email cannot be empty")
	}
	var exists bool
	err := db.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = ?)`, email).
		Scan(&exists).Error
	return exists, err
}

/* ====================== BLACKLIST TOKEN ====================== */

func BlacklistToken(ctx context.Context, db *gorm.DB, tokenHash string, expiresAt time.Time) error {
	return db.WithContext(ctx).Create(&authModel.TokenBlacklist{
		TokenHash: tokenHash,
		ExpiredAt: expiresAt.UTC(),
	}).Error
}

func IsTokenBlacklisted(ctx context.Context, db *gorm.DB, tokenHash string) (bool, error) {
	var exists bool
	err := db.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token_hash = ? AND deleted_at IS NULL)`, tokenHash).
		Scan(&exists).Error
	return exists, err
}
