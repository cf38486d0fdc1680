package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ueldo/ueldo-backend/internal/models"
	"github.com/ueldo/ueldo-backend/internal/otp"
	"golang.org/x/crypto/bcrypt"
)

type OTPConfig struct {
	// FixedCode, when set, is issued instead of a random code.
	FixedCode string
	Length    int
	TTL       time.Duration
}

// OTPService gates Authenticate behind a code held in the session.
// There is no attempt limit.
type OTPService struct {
	identity *IdentityService
	sender   otp.Sender
	cfg      OTPConfig
	now      func() time.Time
}

func NewOTPService(identity *IdentityService, sender otp.Sender, cfg OTPConfig) *OTPService {
	if cfg.Length <= 0 {
		cfg.Length = 6
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	return &OTPService{identity: identity, sender: sender, cfg: cfg, now: time.Now}
}

// RequestCode issues a code for phone, replacing any code already held.
func (s *OTPService) RequestCode(ctx context.Context, sess Session, phone string) (otp.DeliveryResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return otp.DeliveryResult{}, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	code := s.cfg.FixedCode
	if code == "" {
		var err error
		if code, err = randomDigits(s.cfg.Length); err != nil {
			return otp.DeliveryResult{}, fmt.Errorf("failed to generate code: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return otp.DeliveryResult{}, fmt.Errorf("failed to hash code: %w", err)
	}

	sess.SetPendingCode(PendingCode{
		Phone:     phone,
		CodeHash:  string(hash),
		ExpiresAt: s.now().Add(s.cfg.TTL),
	})

	result, err := s.sender.SendCode(ctx, phone, code)
	if err != nil {
		sess.ClearPendingCode()
		return otp.DeliveryResult{}, fmt.Errorf("failed to deliver code: %w", err)
	}
	return result, nil
}

// VerifyCode authenticates the phone the held code was issued for. A mismatch
// keeps the held code so the user can retry; expiry discards it.
func (s *OTPService) VerifyCode(ctx context.Context, sess Session, code string) (*models.User, error) {
	pending, ok := sess.PendingCode()
	if !ok {
		return nil, ErrNoPendingCode
	}
	if s.now().After(pending.ExpiresAt) {
		sess.ClearPendingCode()
		return nil, fmt.Errorf("%w: code expired", ErrInvalidCode)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(pending.CodeHash), []byte(strings.TrimSpace(code))); err != nil {
		slog.InfoContext(ctx, "otp mismatch", "action", "otp.verify", "phone", pending.Phone)
		return nil, ErrInvalidCode
	}

	user, err := s.identity.Authenticate(ctx, sess, pending.Phone)
	if err != nil {
		return nil, err
	}
	sess.ClearPendingCode()
	return user, nil
}

func randomDigits(n int) (string, error) {
	const digits = "0123456789"
	b := make([]byte, n)
	for i := range b {
		k, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		b[i] = digits[k.Int64()]
	}
	return string(b), nil
}
