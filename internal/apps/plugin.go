package apps

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ueldo/ueldo-backend/internal/models"
	"github.com/ueldo/ueldo-backend/internal/services"
	"github.com/ueldo/ueldo-backend/internal/storage"
	"github.com/ueldo/ueldo-backend/internal/validator"
)

// Plugin is one role's slice of the HTTP surface.
type Plugin interface {
	// ID names the plugin in logs.
	ID() string

	// Role is the only role allowed through the plugin's routes.
	Role() models.Role

	// RegisterRoutes mounts the plugin's routes on router. guard resolves the
	// session user and enforces Role(); every route must run it first.
	RegisterRoutes(router fiber.Router, guard fiber.Handler)
}

// Deps are the collaborators plugins are built from.
type Deps struct {
	Identity      *services.IdentityService
	Competitions  *services.CompetitionService
	Registrations *services.RegistrationService
	Storage       storage.Storage
	Signer        *storage.Signer
	Validator     *validator.Validator
}
