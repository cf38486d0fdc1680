package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/ueldo/ueldo-backend/internal/apps"
	"github.com/ueldo/ueldo-backend/internal/handlers"
	"github.com/ueldo/ueldo-backend/internal/middleware"
	"github.com/ueldo/ueldo-backend/internal/storage"
)

type Handlers struct {
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
	Files  *handlers.FileHandler
}

// NewApp builds the fiber app. Request strings are kept past the request by
// the memory store and sessions, so they are copied out of fasthttp's buffers.
func NewApp(bodyLimit int) *fiber.App {
	return fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ErrorHandler: handlers.ErrorHandler,
		Immutable:    true,
	})
}

func Setup(
	app *fiber.App,
	store *session.Store,
	signer *storage.Signer,
	users middleware.UserResolver,
	h Handlers,
	plugins []apps.Plugin,
) {
	// Sessionless routes go first so the session middleware never runs for them
	app.Get("/health", h.Health.Check)
	app.Get("/files/*", middleware.SignedFile(signer.Secret()), h.Files.Serve)

	// General rate limiter: 120 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	app.Use(middleware.Session(store))

	app.Get("/", h.Auth.Index)

	// OTP endpoints: 10 req/min per IP (stricter), codes have no attempt limit
	otpLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Post("/send_otp", otpLimiter, h.Auth.SendOTP)
	app.Post("/verify_otp", otpLimiter, h.Auth.VerifyOTP)
	app.Get("/logout", h.Auth.Logout)

	requireUser := middleware.RequireUser(users)
	app.Get("/select_role", requireUser, h.Auth.SelectRole)
	app.Get("/set_role/:role", requireUser, h.Auth.SetRole)

	for _, p := range plugins {
		p.RegisterRoutes(app, middleware.RequireRole(users, p.Role()))
	}
}
