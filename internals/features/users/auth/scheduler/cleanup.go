package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkubator_backend/internals/configs"
	"inkubator_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler menghapus token blacklist yang sudah lewat masa
// berlakunya. Berhenti saat ctx dibatalkan.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB) {
	interval := configs.GetEnvDuration("TOKEN_BLACKLIST_CLEANUP_INTERVAL", 24*time.Hour)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if n, err := CleanupExpiredBlacklist(db, time.Now().UTC()); err != nil {
				zap.L().Error("[CLEANUP] gagal hapus token_blacklist", zap.Error(err))
			} else if n > 0 {
				zap.L().Info("[CLEANUP] token kadaluarsa dihapus", zap.Int64("count", n))
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// CleanupExpiredBlacklist hard-delete token yang expired_at-nya sudah lewat.
func CleanupExpiredBlacklist(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Unscoped().
		Where("expired_at < ?", now).
		Delete(&model.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
