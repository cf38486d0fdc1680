package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ueldo/ueldo-backend/internal/otp"
)

type fakeSession struct {
	userID  uuid.UUID
	bound   bool
	pending *PendingCode
	cleared int
}

func (s *fakeSession) UserID() (uuid.UUID, bool) { return s.userID, s.bound }

func (s *fakeSession) SetUserID(id uuid.UUID) { s.userID, s.bound = id, true }

func (s *fakeSession) PendingCode() (PendingCode, bool) {
	if s.pending == nil {
		return PendingCode{}, false
	}
	return *s.pending, true
}

func (s *fakeSession) SetPendingCode(p PendingCode) { s.pending = &p }

func (s *fakeSession) ClearPendingCode() { s.pending = nil }

func (s *fakeSession) Clear() {
	s.userID, s.bound, s.pending = uuid.Nil, false, nil
	s.cleared++
}

type sentCode struct {
	phone, code string
}

type fakeSender struct {
	sent []sentCode
	fail bool
}

func (f *fakeSender) Name() string { return "fake" }

func (f *fakeSender) SendCode(ctx context.Context, phone, code string) (otp.DeliveryResult, error) {
	if f.fail {
		return otp.DeliveryResult{}, errors.New("gateway down")
	}
	f.sent = append(f.sent, sentCode{phone, code})
	return otp.DeliveryResult{Provider: f.Name(), Reference: "ref", Echo: code}, nil
}

func (f *fakeSender) last() sentCode { return f.sent[len(f.sent)-1] }
