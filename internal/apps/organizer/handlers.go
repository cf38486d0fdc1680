package organizer

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ueldo/ueldo-backend/internal/apps"
	"github.com/ueldo/ueldo-backend/internal/dto"
	"github.com/ueldo/ueldo-backend/internal/export"
	"github.com/ueldo/ueldo-backend/internal/handlers"
	"github.com/ueldo/ueldo-backend/internal/models"
	"github.com/ueldo/ueldo-backend/internal/services"
	appsession "github.com/ueldo/ueldo-backend/internal/session"
	"github.com/ueldo/ueldo-backend/internal/storage"
)

const dashboardPath = "/organizer/dashboard"

type Handler struct {
	deps *apps.Deps
}

func NewHandler(deps *apps.Deps) *Handler {
	return &Handler{deps: deps}
}

func currentUser(c *fiber.Ctx) (*models.User, error) {
	u, ok := appsession.User(c)
	if !ok {
		return nil, services.ErrUnauthenticated
	}
	return u, nil
}

// Dashboard handles GET /organizer/dashboard
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return handlers.Fail(c, err)
	}
	d, err := h.deps.Competitions.Dashboard(c.UserContext(), user)
	if err != nil {
		return handlers.Fail(c, err)
	}

	resp := dto.DashboardResponse{
		User:               dto.NewUserResponse(user),
		Categories:         make([]dto.CategoryGroup, 0, len(d.Categories)),
		CompetitionCount:   d.CompetitionCount,
		LiveCount:          d.LiveCount,
		FinishedCount:      d.FinishedCount,
		TotalEarnings:      d.TotalEarnings,
		PromptVerification: d.PromptVerification,
	}
	for _, cat := range d.Categories {
		comps, err := dto.NewCompetitionResponses(d.ByCategory[cat], h.deps.Signer)
		if err != nil {
			return err
		}
		resp.Categories = append(resp.Categories, dto.CategoryGroup{Category: cat, Competitions: comps})
	}
	return c.JSON(resp)
}

// SaveOrganizerType handles POST /save_organizer_type
func (h *Handler) SaveOrganizerType(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.deps.Identity.SaveOrganizerType(c.UserContext(), user.ID, c.FormValue("orgType")); err != nil {
		return handlers.Fail(c, err)
	}
	return c.Redirect(dashboardPath)
}

// SubmitVerification handles POST /submit_verification. proofDoc is optional;
// without it only the organizer type is recorded.
func (h *Handler) SubmitVerification(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return handlers.Fail(c, err)
	}
	key, err := handlers.SaveUpload(c, h.deps.Storage, "proofDoc", storage.FolderProofs, user.ID)
	if err != nil {
		return err
	}
	if err := h.deps.Identity.SubmitVerification(c.UserContext(), user.ID, c.FormValue("orgType"), key); err != nil {
		handlers.DiscardUpload(c, h.deps.Storage, key)
		return handlers.Fail(c, err)
	}
	return c.Redirect(dashboardPath)
}

// CreateForm handles GET /organizer/create
func (h *Handler) CreateForm(c *fiber.Ctx) error {
	return c.JSON(dto.CompetitionFormView{Action: "/submit_competition"})
}

// SubmitCompetition handles POST /submit_competition
func (h *Handler) SubmitCompetition(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return handlers.Fail(c, err)
	}
	fields, err := h.parseFields(c, user)
	if err != nil {
		return handlers.Fail(c, err)
	}
	if _, err := h.deps.Competitions.Create(c.UserContext(), user.ID, fields); err != nil {
		handlers.DiscardUpload(c, h.deps.Storage, fields.QRCode)
		return handlers.Fail(c, err)
	}
	return c.Redirect(dashboardPath)
}

// EditForm handles GET /organizer/edit/:id
func (h *Handler) EditForm(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return handlers.Fail(c, err)
	}
	id, err := handlers.CompetitionID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	comp, err := h.deps.Competitions.GetOwned(c.UserContext(), id, user.ID)
	if err != nil {
		return handlers.Fail(c, err)
	}
	resp, err := dto.NewCompetitionResponse(comp, h.deps.Signer)
	if err != nil {
		return err
	}
	return c.JSON(dto.CompetitionFormView{
		Action:      "/organizer/update/" + comp.ID.String(),
		Competition: &resp,
	})
}

// Update handles POST /organizer/update/:id
func (h *Handler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return handlers.Fail(c, err)
	}
	id, err := handlers.CompetitionID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	// refuse before the upload is stored
	if _, err := h.deps.Competitions.GetOwned(c.UserContext(), id, user.ID); err != nil {
		return handlers.Fail(c, err)
	}
	fields, err := h.parseFields(c, user)
	if err != nil {
		return handlers.Fail(c, err)
	}
	if _, err := h.deps.Competitions.Update(c.UserContext(), id, user.ID, fields); err != nil {
		handlers.DiscardUpload(c, h.deps.Storage, fields.QRCode)
		return handlers.Fail(c, err)
	}
	return c.Redirect(dashboardPath)
}

// MarkFinished handles GET /mark_finished/:id
func (h *Handler) MarkFinished(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return handlers.Fail(c, err)
	}
	id, err := handlers.CompetitionID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.deps.Competitions.Finish(c.UserContext(), id, user.ID); err != nil {
		return handlers.Fail(c, err)
	}
	return c.Redirect(dashboardPath)
}

// Registrations handles GET /organizer/registrations/:comp_id
func (h *Handler) Registrations(c *fiber.Ctx) error {
	comp, regs, err := h.listRegistrations(c)
	if err != nil {
		return handlers.Fail(c, err)
	}
	compResp, err := dto.NewCompetitionResponse(comp, h.deps.Signer)
	if err != nil {
		return err
	}
	resp := dto.RegistrationsResponse{
		Competition:   compResp,
		Registrations: make([]dto.RegistrationResponse, 0, len(regs)),
		ExportURL:     "/organizer/registrations/" + comp.ID.String() + "/export.pdf",
	}
	for i := range regs {
		resp.Registrations = append(resp.Registrations, dto.NewRegistrationResponse(&regs[i]))
	}
	return c.JSON(resp)
}

// ExportRegistrations handles GET /organizer/registrations/:comp_id/export.pdf
func (h *Handler) ExportRegistrations(c *fiber.Ctx) error {
	comp, regs, err := h.listRegistrations(c)
	if err != nil {
		return handlers.Fail(c, err)
	}
	pdf, err := export.RegistrationsPDF(comp, regs, time.Now())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="registrations-%s.pdf"`, comp.ID))
	c.Type("pdf")
	return c.Send(pdf)
}

// Approve handles GET /organizer/approve/:reg_id
func (h *Handler) Approve(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return handlers.Fail(c, err)
	}
	id, err := handlers.RegistrationID(c, "reg_id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	reg, err := h.deps.Registrations.Approve(c.UserContext(), id, user.ID)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return c.Redirect("/organizer/registrations/" + reg.CompetitionID.String())
}

func (h *Handler) listRegistrations(c *fiber.Ctx) (*models.Competition, []models.Registration, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, nil, err
	}
	id, err := handlers.CompetitionID(c, "comp_id")
	if err != nil {
		return nil, nil, err
	}
	return h.deps.Registrations.ListForCompetition(c.UserContext(), id, user.ID)
}

// parseFields reads the competition form and stores qrFile when one is attached.
func (h *Handler) parseFields(c *fiber.Ctx, user *models.User) (services.CompetitionFields, error) {
	var f services.CompetitionFields
	if err := c.BodyParser(&f); err != nil {
		return f, handlers.InvalidInput(err)
	}
	if err := h.deps.Validator.Validate(&f); err != nil {
		return f, handlers.InvalidInput(err)
	}
	key, err := handlers.SaveUpload(c, h.deps.Storage, "qrFile", storage.FolderQRCode, user.ID)
	if err != nil {
		return f, err
	}
	f.QRCode = key
	return f, nil
}
