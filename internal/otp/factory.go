package otp

import (
	"context"
	"fmt"

	"github.com/ueldo/ueldo-backend/internal/config"
	"github.com/ueldo/ueldo-backend/internal/otp/stub"
)

func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.OTPProvider {
	case "stub", "":
		return stubSender{stub.New(cfg.AppEnv != "production")}, nil
	default:
		return nil, fmt.Errorf("unknown otp provider: %s", cfg.OTPProvider)
	}
}

// stubSender adapts stub.Provider, which has no dependency on this package.
type stubSender struct{ p *stub.Provider }

func (s stubSender) Name() string { return s.p.Name() }

func (s stubSender) SendCode(ctx context.Context, phone, code string) (DeliveryResult, error) {
	ref, echo, err := s.p.Send(ctx, phone, code)
	if err != nil {
		return DeliveryResult{}, err
	}
	return DeliveryResult{Provider: s.p.Name(), Reference: ref, Echo: echo}, nil
}
