package participant

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ueldo/ueldo-backend/internal/apps"
	"github.com/ueldo/ueldo-backend/internal/dto"
	"github.com/ueldo/ueldo-backend/internal/handlers"
	"github.com/ueldo/ueldo-backend/internal/qrcode"
	"github.com/ueldo/ueldo-backend/internal/services"
	appsession "github.com/ueldo/ueldo-backend/internal/session"
)

const feedPath = "/participant/feed"

type Handler struct {
	deps *apps.Deps
}

func NewHandler(deps *apps.Deps) *Handler {
	return &Handler{deps: deps}
}

// Feed handles GET /participant/feed
func (h *Handler) Feed(c *fiber.Ctx) error {
	user, ok := appsession.User(c)
	if !ok {
		return handlers.Fail(c, services.ErrUnauthenticated)
	}
	feed, err := h.deps.Registrations.FeedFor(c.UserContext(), user.ID)
	if err != nil {
		return handlers.Fail(c, err)
	}

	resp := dto.FeedResponse{
		User:         dto.NewUserResponse(user),
		Competitions: make([]dto.FeedItem, 0, len(feed.Competitions)),
	}
	for i := range feed.Competitions {
		comp := &feed.Competitions[i]
		cr, err := dto.NewCompetitionResponse(comp, h.deps.Signer)
		if err != nil {
			return err
		}
		resp.Competitions = append(resp.Competitions, dto.FeedItem{
			Competition: cr,
			MyStatus:    string(feed.StatusByID[comp.ID]),
		})
	}
	return c.JSON(resp)
}

// Pay handles GET /participant/pay/:comp_id. Without an uploaded QR the view
// points at a generated one.
func (h *Handler) Pay(c *fiber.Ctx) error {
	id, err := handlers.CompetitionID(c, "comp_id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	comp, err := h.deps.Competitions.Get(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}

	view := dto.PayView{
		CompetitionID: comp.ID,
		Name:          comp.Name,
		EntryFee:      comp.EntryFee,
		ContactLink:   comp.ContactLink,
	}
	if comp.QRCode != "" {
		if view.QRCodeURL, err = h.deps.Signer.URL(comp.QRCode); err != nil {
			return err
		}
	} else {
		view.QRCodeURL = "/participant/pay/" + comp.ID.String() + "/qr.png"
		view.Generated = true
	}
	return c.JSON(view)
}

// PayQR handles GET /participant/pay/:comp_id/qr.png
func (h *Handler) PayQR(c *fiber.Ctx) error {
	id, err := handlers.CompetitionID(c, "comp_id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	comp, err := h.deps.Competitions.Get(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	png, err := qrcode.PaymentPNG(comp, qrcode.DefaultSize)
	if err != nil {
		return err
	}
	c.Type("png")
	return c.Send(png)
}

// ConfirmPayment handles POST /participant/confirm_payment/:comp_id. Payment
// is self-reported; the organizer approves it later.
func (h *Handler) ConfirmPayment(c *fiber.Ctx) error {
	user, ok := appsession.User(c)
	if !ok {
		return handlers.Fail(c, services.ErrUnauthenticated)
	}
	id, err := handlers.CompetitionID(c, "comp_id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if _, err := h.deps.Registrations.Register(c.UserContext(), user.ID, id); err != nil {
		return handlers.Fail(c, err)
	}
	return c.Redirect(feedPath)
}
