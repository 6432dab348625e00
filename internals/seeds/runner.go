package seeds

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkubator_backend/internals/configs"
	users "inkubator_backend/internals/seeds/users/auth"
)

// RunAllSeeds dijalankan saat RUN_SEEDS=true. File bisa diganti lewat SEED_USERS_FILE.
func RunAllSeeds(ctx context.Context, db *gorm.DB) {
	//* User (admin & dosen pembina)
	path := configs.GetEnv("SEED_USERS_FILE", "internals/seeds/users/auth/data_users.json")
	n, err := users.SeedUsersFromJSON(ctx, db, path)
	if err != nil {
		zap.L().Error("❌ Seed user gagal", zap.Error(err))
		return
	}
	zap.L().Info("🌱 Seed selesai", zap.Int("users_created", n))
}
