package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"reeltrack/internal/auth"
	"reeltrack/internal/cloudinary"
	"reeltrack/internal/config"
	"reeltrack/internal/database"
	"reeltrack/internal/handler"
	"reeltrack/internal/metrics"
	"reeltrack/internal/middleware"
	"reeltrack/internal/repository"
	"reeltrack/internal/service"
	"reeltrack/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without rate limiting", "error", err)
		rdb = nil
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	uploader := cloudinary.New(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if !uploader.Enabled() {
		slog.Warn("Cloudinary credentials not set, profile picture uploads disabled")
	}

	userRepo := repository.NewPostgresUserRepository(db)
	interactionRepo := repository.NewPostgresInteractionRepository(db)

	userSvc := service.NewUserService(userRepo, jwtManager)
	interactionSvc := service.NewInteractionService(interactionRepo)

	uh := handler.NewUserHandler(userSvc, uploader)
	ih := handler.NewInteractionHandler(interactionSvc)

	app := fiber.New(fiber.Config{
		AppName:      "reeltrack",
		ServerHeader: "reeltrack",
		ErrorHandler: handler.AppErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))
	app.Use(metrics.Middleware())

	if rdb != nil {
		rateLimiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec)
		app.Use(rateLimiter.Handler())
	}

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	handler.RegisterRoutes(app, uh, ih, jwtManager)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down reeltrack...")
		_ = app.Shutdown()
		if rdb != nil {
			_ = rdb.Close()
		}
	}()

	addr := ":" + cfg.Port
	slog.Info("starting reeltrack", "addr", addr, "cors_origins", strings.Join(cfg.CORSOrigins, ","))
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
