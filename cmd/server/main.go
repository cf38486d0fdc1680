package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/ueldo/ueldo-backend/internal/apps"
	"github.com/ueldo/ueldo-backend/internal/apps/organizer"
	"github.com/ueldo/ueldo-backend/internal/apps/participant"
	"github.com/ueldo/ueldo-backend/internal/config"
	"github.com/ueldo/ueldo-backend/internal/database"
	"github.com/ueldo/ueldo-backend/internal/handlers"
	"github.com/ueldo/ueldo-backend/internal/logging"
	"github.com/ueldo/ueldo-backend/internal/middleware"
	"github.com/ueldo/ueldo-backend/internal/otp"
	"github.com/ueldo/ueldo-backend/internal/routes"
	"github.com/ueldo/ueldo-backend/internal/services"
	"github.com/ueldo/ueldo-backend/internal/session"
	"github.com/ueldo/ueldo-backend/internal/sessionstore"
	"github.com/ueldo/ueldo-backend/internal/storage"
	"github.com/ueldo/ueldo-backend/internal/store"
	"github.com/ueldo/ueldo-backend/internal/validator"
)

func main() {
	// .env is optional
	envErr := godotenv.Load()

	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)
	if envErr == nil {
		slog.Info("loaded .env")
	}

	if cfg.FileURLSecret == "" {
		if cfg.AppEnv == "production" {
			slog.Error("FILE_URL_SECRET environment variable is required")
			os.Exit(1)
		}
		cfg.FileURLSecret = "dev-file-url-secret"
		slog.Warn("FILE_URL_SECRET not set, using development secret")
	}

	// Database
	var (
		repo      store.Repository
		ping      func() error
		dbHandler *logging.DBHandler
	)
	cleanupDone := make(chan struct{})
	if cfg.DBDriver == "memory" {
		slog.Warn("using in-memory store, data is lost on restart")
		repo = store.NewMemoryRepository()
		if cfg.SessionStore == "postgres" {
			cfg.SessionStore = "memory"
		}
	} else {
		if cfg.DBPassword == "" {
			slog.Error("DB_PASSWORD environment variable is required")
			os.Exit(1)
		}
		if err := database.Connect(cfg); err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		repo = store.NewGormRepository(database.DB)
		ping = database.Ping

		// Database log handler (ERROR+ async batch)
		dbHandler = logging.NewDBHandler(database.DB)
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			logging.StdoutHandler(cfg.AppEnv),
			dbHandler,
		)))

		logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)
	}

	// Sessions
	if cfg.SessionStore == "postgres" && cfg.DBDriver != "postgres" {
		slog.Warn("postgres session store needs DB_DRIVER=postgres, falling back to memory", "db_driver", cfg.DBDriver)
		cfg.SessionStore = "memory"
	}
	sessionStorage, err := sessionstore.New(cfg)
	if err != nil {
		slog.Error("session store init failed", "store", cfg.SessionStore, "error", err)
		os.Exit(1)
	}
	sessions := session.NewStore(sessionStorage, cfg.SessionExpiry, cfg.CookieSecure)
	slog.Info("session store ready", "store", cfg.SessionStore)

	// Uploads
	files, err := storage.New(cfg)
	if err != nil {
		slog.Error("storage init failed", "type", cfg.StorageType, "error", err)
		os.Exit(1)
	}
	signer := storage.NewSigner(cfg.FileURLSecret, cfg.FileURLExpiry)

	sender, err := otp.NewSender(cfg)
	if err != nil {
		slog.Error("otp sender init failed", "provider", cfg.OTPProvider, "error", err)
		os.Exit(1)
	}
	if cfg.AppEnv == "production" && cfg.OTPFixedCode != "" {
		slog.Warn("OTP_FIXED_CODE is set in production")
	}

	// Services
	identity := services.NewIdentityService(repo)
	otpService := services.NewOTPService(identity, sender, services.OTPConfig{
		FixedCode: cfg.OTPFixedCode,
		Length:    cfg.OTPLength,
		TTL:       cfg.OTPTTL,
	})
	competitions := services.NewCompetitionService(repo, cfg.EnforceOwnership)
	registrations := services.NewRegistrationService(repo, cfg.EnforceOwnership)
	validate := validator.New()

	deps := &apps.Deps{
		Identity:      identity,
		Competitions:  competitions,
		Registrations: registrations,
		Storage:       files,
		Signer:        signer,
		Validator:     validate,
	}
	plugins := []apps.Plugin{
		organizer.New(deps),
		participant.New(deps),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := routes.NewApp(cfg.UploadMaxBytes)

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, sessions, signer, identity, routes.Handlers{
		Auth:   handlers.NewAuthHandler(identity, otpService, validate),
		Health: handlers.NewHealthHandler(ping),
		Files:  handlers.NewFileHandler(files),
	}, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "enforce_ownership", cfg.EnforceOwnership)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if dbHandler != nil {
		dbHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if sessionStorage != nil {
		if err := sessionStorage.Close(); err != nil {
			slog.Error("session store close error", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
