package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel merepresentasikan tabel users (tenant, admin, dosen pembina)
type UserModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	FirebaseUID   *string    `gorm:"type:varchar(128);uniqueIndex;column:firebase_uid" json:"firebase_uid,omitempty"`
	Email         string     `gorm:"type:varchar(255);not null;uniqueIndex;column:email" json:"email"`
	DisplayName   string     `gorm:"type:varchar(150);not null;default:'';column:display_name" json:"display_name"`
	PhotoURL      *string    `gorm:"type:text;column:photo_url" json:"photo_url,omitempty"`
	PhoneNumber   *string    `gorm:"type:varchar(20);column:phone_number" json:"phone_number,omitempty"`
	Role          string     `gorm:"type:varchar(20);not null;default:'TENANT';index;column:role" json:"role"`
	NIDN          *string    `gorm:"type:varchar(30);column:nidn" json:"nidn,omitempty"`
	PasswordHash  *string    `gorm:"type:text;column:password_hash" json:"-"`
	IsActive      bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	EmailVerified bool       `gorm:"not null;default:false;column:email_verified" json:"email_verified"`
	LastLogin     *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
