package organizer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ueldo/ueldo-backend/internal/apps"
	"github.com/ueldo/ueldo-backend/internal/models"
)

// Plugin implements apps.Plugin for organizers.
type Plugin struct {
	deps *apps.Deps
}

func New(deps *apps.Deps) *Plugin {
	return &Plugin{deps: deps}
}

func (p *Plugin) ID() string { return "organizer" }

func (p *Plugin) Role() models.Role { return models.RoleOrganizer }

func (p *Plugin) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	h := NewHandler(p.deps)

	org := router.Group("/organizer", guard)
	org.Get("/dashboard", h.Dashboard)
	org.Get("/create", h.CreateForm)
	org.Get("/registrations/:comp_id", h.Registrations)
	org.Get("/registrations/:comp_id/export.pdf", h.ExportRegistrations)
	org.Get("/approve/:reg_id", h.Approve)
	org.Get("/edit/:id", h.EditForm)
	org.Post("/update/:id", h.Update)

	// form targets outside /organizer
	router.Post("/save_organizer_type", guard, h.SaveOrganizerType)
	router.Post("/submit_verification", guard, h.SubmitVerification)
	router.Post("/submit_competition", guard, h.SubmitCompetition)
	router.Get("/mark_finished/:id", guard, h.MarkFinished)
}
