package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petfind/internal/adapters/http/handlers"
	"petfind/internal/adapters/http/middleware"
	"petfind/internal/adapters/http/routes"
	"petfind/internal/adapters/mail"
	"petfind/internal/adapters/persistence/memstore"
	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/config"
	"petfind/internal/core/services"
	"petfind/internal/pkg/encryption"
	"petfind/internal/pkg/jwt"
	"petfind/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.EnvFileLoaded {
		log.Warn("no .env file found, using environment variables")
	}

	if err := run(cfg, log); err != nil {
		stopped(log, err)
		os.Exit(1)
	}
}

// stopped records why the server ended and flushes the logger,
// since os.Exit skips deferred calls
func stopped(log *zap.Logger, err error) {
	log.Error("server stopped", zap.Error(err))
	_ = log.Sync()
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	repos, ping, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// Seed system roles and the bootstrap admin
	if err := config.NewSeeder(repos.SystemRoles, repos.Users, cfg.Seed, log).Run(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	cipher, err := encryption.New(cfg.Encryption.Key, cfg.Encryption.Salt)
	if err != nil {
		return fmt.Errorf("encryption: %w", err)
	}
	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := cipher.Warmup(warmCtx); err != nil {
		return fmt.Errorf("derive code key: %w", err)
	}

	tokens := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessTokenMins)

	notifications := newNotifications(cfg, repos.Emails, log)

	// Retry unsent notifications on a schedule
	cronService := services.NewCronService(notifications, cfg.Mail.RetryCron, log)
	if err := cronService.Start(); err != nil {
		return fmt.Errorf("cron: %w", err)
	}
	defer cronService.Stop()

	svc := services.NewContainer(services.Deps{
		Repos:    repos,
		Cipher:   cipher,
		Tokens:   tokens,
		Notify:   notifications,
		Messages: services.NewMessages(cfg.Mail.SupportEmail, cfg.Mail.FrontendURL),
		OTPTTL:   time.Duration(cfg.OTP.TTLMinutes) * time.Minute,
		Log:      log,
	})

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "PetFind API v1",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg, log)
	routes.Setup(app, cfg, svc, tokens, ping)

	// Graceful shutdown
	go gracefulShutdown(app, log)

	log.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("mode", cfg.AppMode),
		zap.String("store", cfg.Store),
	)
	return app.Listen(":" + cfg.Port)
}

// newNotifications builds the outbox service, sending over SMTP when configured
func newNotifications(cfg *config.Config, emails repositories.EmailRepository, log *zap.Logger) *services.NotificationService {
	var sender services.Sender
	if cfg.MailEnabled() {
		sender = mail.NewSMTPSender(mail.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			User:     cfg.Mail.User,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
	}
	notifications := services.NewNotificationService(sender, emails, log)
	if !notifications.IsEnabled() {
		log.Warn("SMTP_HOST not set, notifications stay queued in the outbox")
	}
	return notifications
}

// openStore connects the configured backend and returns its repositories
func openStore(cfg *config.Config, log *zap.Logger) (repositories.Registry, handlers.Pinger, func(), error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using the in-memory store, data is lost on restart")
		return memstore.New().Repositories(), nil, func() {}, nil
	}

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		return repositories.Registry{}, nil, nil, fmt.Errorf("connect database: %w", err)
	}

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		_ = config.CloseDatabase(db)
		return repositories.Registry{}, nil, nil, fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("database migration completed")

	closeDB := func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}
	return repositories.NewRegistry(db), func() error { return config.HealthCheck(db) }, closeDB, nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server stopped gracefully")
}
