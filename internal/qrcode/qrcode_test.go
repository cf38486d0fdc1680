package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ueldo/ueldo-backend/internal/models"
)

func TestPaymentContent(t *testing.T) {
	assert.Equal(t, "https://wa.me/123", PaymentContent(&models.Competition{Name: "Cup", ContactLink: " https://wa.me/123 "}))
	assert.Equal(t, "Cup - entry fee 150", PaymentContent(&models.Competition{Name: "Cup", EntryFee: 150}))
}

func TestPaymentPNG(t *testing.T) {
	png, err := PaymentPNG(&models.Competition{Name: "Cup", EntryFee: 150}, 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
