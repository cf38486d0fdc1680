package qrcode

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
	"github.com/ueldo/ueldo-backend/internal/models"
)

const DefaultSize = 320

// PaymentContent is what a generated payment QR encodes: the organizer's
// contact link, or the name and fee when there is none.
func PaymentContent(comp *models.Competition) string {
	if link := strings.TrimSpace(comp.ContactLink); link != "" {
		return link
	}
	return fmt.Sprintf("%s - entry fee %d", comp.Name, comp.EntryFee)
}

// PaymentPNG renders PaymentContent as a PNG.
func PaymentPNG(comp *models.Competition, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(PaymentContent(comp), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
