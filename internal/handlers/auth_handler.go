package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ueldo/ueldo-backend/internal/dto"
	"github.com/ueldo/ueldo-backend/internal/models"
	"github.com/ueldo/ueldo-backend/internal/services"
	appsession "github.com/ueldo/ueldo-backend/internal/session"
	"github.com/ueldo/ueldo-backend/internal/validator"
)

type AuthHandler struct {
	identity *services.IdentityService
	otp      *services.OTPService
	validate *validator.Validator
}

func NewAuthHandler(identity *services.IdentityService, otp *services.OTPService, validate *validator.Validator) *AuthHandler {
	return &AuthHandler{identity: identity, otp: otp, validate: validate}
}

// Index handles GET /. Signed-in users are routed by role.
func (h *AuthHandler) Index(c *fiber.Ctx) error {
	sess, err := appsession.From(c)
	if err != nil {
		return err
	}
	if done, err := h.routeIfSignedIn(c, sess); done || err != nil {
		return err
	}

	view := dto.LoginView{Step: "phone"}
	if p, ok := sess.PendingCode(); ok {
		view.Step = "otp"
		view.Phone = p.Phone
	}
	return c.JSON(view)
}

// SendOTP handles POST /send_otp
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	sess, err := appsession.From(c)
	if err != nil {
		return err
	}
	if done, err := h.routeIfSignedIn(c, sess); done || err != nil {
		return err
	}

	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := h.validate.Validate(&req); err != nil {
		return Fail(c, InvalidInput(err))
	}

	result, err := h.otp.RequestCode(c.UserContext(), sess, req.Phone)
	if err != nil {
		return Fail(c, err)
	}
	return c.JSON(dto.OTPSentResponse{
		Message:  "Code sent",
		Phone:    req.Phone,
		Provider: result.Provider,
		Code:     result.Echo,
	})
}

// VerifyOTP handles POST /verify_otp. A wrong code is a plain 401, not a redirect.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	sess, err := appsession.From(c)
	if err != nil {
		return err
	}
	if done, err := h.routeIfSignedIn(c, sess); done || err != nil {
		return err
	}

	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.otp.VerifyCode(c.UserContext(), sess, req.OTP)
	if err != nil {
		return Fail(c, err)
	}
	return c.Redirect(services.RouteByRole(user).Path())
}

// SelectRole handles GET /select_role
func (h *AuthHandler) SelectRole(c *fiber.Ctx) error {
	user, ok := appsession.User(c)
	if !ok {
		return Fail(c, services.ErrUnauthenticated)
	}
	return c.JSON(dto.RoleSelectionView{
		User:  dto.NewUserResponse(user),
		Roles: []string{string(models.RoleOrganizer), string(models.RoleParticipant)},
	})
}

// SetRole handles GET /set_role/:role and re-runs the router.
func (h *AuthHandler) SetRole(c *fiber.Ctx) error {
	user, ok := appsession.User(c)
	if !ok {
		return Fail(c, services.ErrUnauthenticated)
	}
	updated, err := h.identity.SetRole(c.UserContext(), user.ID, c.Params("role"))
	if err != nil {
		return Fail(c, err)
	}
	return c.Redirect(services.RouteByRole(updated).Path())
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := appsession.From(c)
	if err != nil {
		return err
	}
	h.identity.Logout(sess)
	return c.Redirect(services.DestinationLogin.Path())
}

// routeIfSignedIn redirects a session that already resolves to a user.
func (h *AuthHandler) routeIfSignedIn(c *fiber.Ctx, sess services.Session) (bool, error) {
	dest, err := h.identity.Route(c.UserContext(), sess)
	if err != nil {
		return false, err
	}
	if dest == services.DestinationLogin {
		return false, nil
	}
	return true, c.Redirect(dest.Path())
}
