package participant

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ueldo/ueldo-backend/internal/apps"
	"github.com/ueldo/ueldo-backend/internal/models"
)

// Plugin implements apps.Plugin for participants.
type Plugin struct {
	deps *apps.Deps
}

func New(deps *apps.Deps) *Plugin {
	return &Plugin{deps: deps}
}

func (p *Plugin) ID() string { return "participant" }

func (p *Plugin) Role() models.Role { return models.RoleParticipant }

func (p *Plugin) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	h := NewHandler(p.deps)

	part := router.Group("/participant", guard)
	part.Get("/feed", h.Feed)
	part.Get("/pay/:comp_id", h.Pay)
	part.Get("/pay/:comp_id/qr.png", h.PayQR)
	part.Post("/confirm_payment/:comp_id", h.ConfirmPayment)
}
