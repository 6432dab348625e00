package model

import (
	"time"

	"gorm.io/gorm"
)

// TokenBlacklist menyimpan hash access token backend yang sudah logout.
type TokenBlacklist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TokenHash string         `gorm:"type:char(64);not null;uniqueIndex;column:token_hash" json:"-"`
	ExpiredAt time.Time      `gorm:"not null;index;column:expired_at" json:"expired_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
