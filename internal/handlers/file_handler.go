package handlers

import (
	"errors"
	"path"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ueldo/ueldo-backend/internal/dto"
	"github.com/ueldo/ueldo-backend/internal/middleware"
	"github.com/ueldo/ueldo-backend/internal/storage"
)

type FileHandler struct {
	store storage.Storage
}

func NewFileHandler(store storage.Storage) *FileHandler {
	return &FileHandler{store: store}
}

// Serve handles GET /files/*. The token verified by middleware.SignedFile
// must name the requested key.
func (h *FileHandler) Serve(c *fiber.Ctx) error {
	token, _ := c.Locals(middleware.FileTokenKey).(*jwt.Token)
	key, err := storage.KeyFromToken(token)
	if err != nil || key != c.Params("*") {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Forbidden: link does not match file",
		})
	}

	rc, err := h.store.Retrieve(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "File not found",
			})
		}
		return err
	}

	if ext := path.Ext(key); ext != "" {
		c.Type(ext)
	}
	c.Set("Cache-Control", "private, max-age=300")
	return c.SendStream(rc)
}
