package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"inkubator_backend/internals/configs"
	database "inkubator_backend/internals/databases"
	regRepo "inkubator_backend/internals/features/tenants/registrations/repository"
	regService "inkubator_backend/internals/features/tenants/registrations/service"
	scheduler "inkubator_backend/internals/features/users/auth/scheduler"
	authService "inkubator_backend/internals/features/users/auth/service"
	helper "inkubator_backend/internals/helpers"
	"inkubator_backend/internals/helpers/storage"
	middlewares "inkubator_backend/internals/middlewares"
	routes "inkubator_backend/internals/route"
	"inkubator_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	log := configs.InitLogger("inkubator-backend")
	defer func() { _ = log.Sync() }()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.FiberErrorHandler,
		BodyLimit:               configs.GetEnvInt("BODY_LIMIT_MB", 64) * 1024 * 1024, // dokumen registrasi
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing
	reqTimeout := configs.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUIDv4()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()

		ctx, cancel := context.WithTimeout(c.Context(), reqTimeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		log.Info("[REQ]",
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("dur", time.Since(start)))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + migrate + warm-up
	database.ConnectDB()
	database.TunePool()
	database.AutoMigrate()
	database.WarmUpQueries()

	// ⏱ scheduler setelah DB siap
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	scheduler.StartBlacklistCleanupScheduler(bgCtx, database.DB)

	// 🌱 akun admin/dosen awal
	if configs.GetEnvBool("RUN_SEEDS", false) {
		seeds.RunAllSeeds(bgCtx, database.DB)
	}

	// 🔐 Auth: verifier ID token + access token backend
	tokens := authService.NewTokenServiceFromEnv()
	if !tokens.Enabled() {
		log.Warn("⚠️ JWT_SECRET kosong, login password dinonaktifkan")
	}
	authSvc := authService.NewAuthService(database.DB, authService.NewVerifierFromEnv(), tokens)

	// 🗂️ Storage dokumen
	var blobs storage.BlobService
	if s3Blobs, err := storage.NewS3BlobServiceFromEnv(bgCtx); err != nil {
		log.Warn("⚠️ S3 belum dikonfigurasi, upload dokumen dinonaktifkan", zap.Error(err))
	} else {
		blobs = s3Blobs
	}
	registrations := regService.NewService(regRepo.NewGormRepository(database.DB), blobs)

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		DB:            database.DB,
		Auth:          authSvc,
		Registrations: registrations,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 60 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Info("✅ Listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("🛑 shutting down...")
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	database.Close()
}
