package otp

import "context"

// DeliveryResult describes how a code left the system.
type DeliveryResult struct {
	Provider  string
	Reference string
	// Echo carries the code back to the caller for providers that do not deliver anywhere.
	Echo string
}

// Sender delivers one-time codes to a phone number.
type Sender interface {
	Name() string
	SendCode(ctx context.Context, phone, code string) (DeliveryResult, error)
}
