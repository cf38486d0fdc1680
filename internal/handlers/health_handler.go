package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ueldo/ueldo-backend/internal/dto"
)

type HealthHandler struct {
	ping func() error
}

// NewHealthHandler takes the store's ping; nil reports the store as in-memory.
func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "memory"
	if h.ping != nil {
		dbStatus = "ok"
		if err := h.ping(); err != nil {
			dbStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
