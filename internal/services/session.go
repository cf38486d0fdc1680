package services

import (
	"time"

	"github.com/google/uuid"
)

// PendingCode is the one-time code state held in a session between
// send_otp and verify_otp. Only a hash of the code is kept.
type PendingCode struct {
	Phone     string
	CodeHash  string
	ExpiresAt time.Time
}

// Session is the per-browser state every operation receives explicitly.
type Session interface {
	UserID() (uuid.UUID, bool)
	SetUserID(id uuid.UUID)
	PendingCode() (PendingCode, bool)
	SetPendingCode(p PendingCode)
	ClearPendingCode()
	// Clear drops the user binding and any pending code.
	Clear()
}
