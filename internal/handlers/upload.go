package handlers

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ueldo/ueldo-backend/internal/storage"
)

// SaveUpload stores the multipart file in field and returns its key. A
// missing or empty file yields "".
func SaveUpload(c *fiber.Ctx, store storage.Storage, field, folder string, ownerID uuid.UUID) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh.Size == 0 {
		return "", nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	key, err := store.Store(c.UserContext(), ownerID, folder, fh.Filename, f, fh.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return key, nil
}

// DiscardUpload removes a file stored for a request that was then rejected.
func DiscardUpload(c *fiber.Ctx, store storage.Storage, key string) {
	if key == "" {
		return
	}
	if err := store.Delete(c.UserContext(), key); err != nil {
		slog.WarnContext(c.UserContext(), "failed to discard upload", "key", key, "error", err)
	}
}
