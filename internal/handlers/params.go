package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ueldo/ueldo-backend/internal/services"
)

// IDParam parses a uuid route parameter. A malformed id cannot name an
// existing record, so it reports notFound.
func IDParam(c *fiber.Ctx, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", notFound, c.Params(name))
	}
	return id, nil
}

func CompetitionID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return IDParam(c, name, services.ErrCompetitionNotFound)
}

func RegistrationID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return IDParam(c, name, services.ErrRegistrationNotFound)
}
