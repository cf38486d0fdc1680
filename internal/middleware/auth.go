package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ueldo/ueldo-backend/internal/models"
	"github.com/ueldo/ueldo-backend/internal/services"
	appsession "github.com/ueldo/ueldo-backend/internal/session"
)

type UserResolver interface {
	CurrentUser(ctx context.Context, sess services.Session) (*models.User, error)
}

// RequireUser resolves the session's user into locals. Anonymous and zombie
// sessions are sent back to the entry point.
func RequireUser(users UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := resolve(c, users); err != nil {
			return deny(c, err)
		}
		return c.Next()
	}
}

// RequireRole is RequireUser plus a role check. A user with another role is
// redirected to wherever that role lands.
func RequireRole(users UserResolver, role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolve(c, users)
		if err != nil {
			return deny(c, err)
		}
		if user.Role != role {
			return c.Redirect(services.RouteByRole(user).Path())
		}
		return c.Next()
	}
}

func resolve(c *fiber.Ctx, users UserResolver) (*models.User, error) {
	if u, ok := appsession.User(c); ok {
		return u, nil
	}
	sess, err := appsession.From(c)
	if err != nil {
		return nil, err
	}
	user, err := users.CurrentUser(c.UserContext(), sess)
	if err != nil {
		return nil, err
	}
	appsession.SetUser(c, user)
	return user, nil
}

func deny(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrUnauthenticated) {
		return c.Redirect(services.DestinationLogin.Path())
	}
	return err
}
