package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	appsession "github.com/ueldo/ueldo-backend/internal/session"
)

// Session loads the caller's session before the handler and writes it back after.
func Session(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sc, err := appsession.Load(store, c)
		if err != nil {
			return err
		}
		appsession.Attach(c, sc)

		err = c.Next()
		if saveErr := sc.Save(); saveErr != nil {
			slog.ErrorContext(c.UserContext(), "failed to save session", "path", c.Path(), "error", saveErr)
			if err == nil {
				err = saveErr
			}
		}
		return err
	}
}
