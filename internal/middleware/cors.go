package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/ueldo/ueldo-backend/internal/config"
)

func CORS(cfg *config.Config) fiber.Handler {
	// credentials carry the session cookie, which cors forbids with a wildcard origin
	return cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: cfg.CORSOrigins != "*",
	})
}
