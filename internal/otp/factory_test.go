package otp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ueldo/ueldo-backend/internal/config"
)

func TestNewSender_Stub(t *testing.T) {
	ctx := context.Background()

	dev, err := NewSender(&config.Config{OTPProvider: "stub", AppEnv: "development"})
	require.NoError(t, err)
	res, err := dev.SendCode(ctx, "9000000001", "123456")
	require.NoError(t, err)
	assert.Equal(t, "stub", res.Provider)
	assert.Equal(t, "stub-1", res.Reference)
	assert.Equal(t, "123456", res.Echo)

	prod, err := NewSender(&config.Config{AppEnv: "production"})
	require.NoError(t, err)
	res, err = prod.SendCode(ctx, "9000000001", "123456")
	require.NoError(t, err)
	assert.Empty(t, res.Echo)

	_, err = NewSender(&config.Config{OTPProvider: "twilio"})
	assert.Error(t, err)
}
