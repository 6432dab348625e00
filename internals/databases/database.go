package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"inkubator_backend/internals/configs"
	authModel "inkubator_backend/internals/features/users/auth/model"
	gradingModel "inkubator_backend/internals/features/tenants/gradings/model"
	regModel "inkubator_backend/internals/features/tenants/registrations/model"
)

var DB *gorm.DB

func ConnectDB() {
	log := zap.L()
	log.Info("🔌 Koneksi ke PostgreSQL...")

	// statement_timeout diselaraskan dengan timeout request di main.go
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=inkubator&options=-c statement_timeout=3000",
		configs.GetEnv("DB_USER"),
		configs.GetEnv("DB_PASSWORD"),
		configs.GetEnv("DB_HOST", "localhost"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(log),
	})
	if err != nil {
		log.Fatal("❌ Gagal konek DB", zap.Error(err))
	}
	DB = db
	log.Info("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		zap.L().Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// AutoMigrate menyiapkan tabel yang dipakai service ini.
func AutoMigrate() {
	if !configs.GetEnvBool("DB_AUTO_MIGRATE", true) {
		return
	}
	err := DB.AutoMigrate(
		&authModel.UserModel{},
		&authModel.TokenBlacklist{},
		&regModel.TenantRegistrationModel{},
		&regModel.BusinessDocumentModel{},
		&gradingModel.TenantGradingModel{},
	)
	if err != nil {
		zap.L().Fatal("❌ AutoMigrate gagal", zap.Error(err))
	}
	zap.L().Info("✅ AutoMigrate selesai")
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := ping(); err != nil {
			zap.L().Warn("warm-up ping err", zap.Error(err))
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
