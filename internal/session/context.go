// Package session adapts fiber sessions to services.Session.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/ueldo/ueldo-backend/internal/models"
	"github.com/ueldo/ueldo-backend/internal/services"
)

const (
	keyUserID     = "user_id"
	keyOTPPhone   = "otp_phone"
	keyOTPHash    = "otp_hash"
	keyOTPExpires = "otp_expires"

	localsSession = "session"
	localsUser    = "user"
)

// Context is the session of one request. Changes are written by Save.
type Context struct {
	sess      *session.Session
	destroyed bool
}

var _ services.Session = (*Context)(nil)

func Load(store *session.Store, c *fiber.Ctx) (*Context, error) {
	sess, err := store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &Context{sess: sess}, nil
}

func (s *Context) UserID() (uuid.UUID, bool) {
	raw, ok := s.sess.Get(keyUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// SetUserID binds the user under a fresh session id.
func (s *Context) SetUserID(id uuid.UUID) {
	s.destroyed = false
	_ = s.sess.Regenerate()
	s.sess.Set(keyUserID, id.String())
}

func (s *Context) PendingCode() (services.PendingCode, bool) {
	phone, _ := s.sess.Get(keyOTPPhone).(string)
	hash, _ := s.sess.Get(keyOTPHash).(string)
	expires, _ := s.sess.Get(keyOTPExpires).(int64)
	if phone == "" || hash == "" {
		return services.PendingCode{}, false
	}
	return services.PendingCode{Phone: phone, CodeHash: hash, ExpiresAt: time.Unix(expires, 0)}, true
}

func (s *Context) SetPendingCode(p services.PendingCode) {
	s.revive()
	s.sess.Set(keyOTPPhone, p.Phone)
	s.sess.Set(keyOTPHash, p.CodeHash)
	s.sess.Set(keyOTPExpires, p.ExpiresAt.Unix())
}

func (s *Context) ClearPendingCode() {
	s.sess.Delete(keyOTPPhone)
	s.sess.Delete(keyOTPHash)
	s.sess.Delete(keyOTPExpires)
}

func (s *Context) Clear() {
	if err := s.sess.Destroy(); err == nil {
		s.destroyed = true
	}
}

// revive lets a cleared session take new state under a fresh id.
func (s *Context) revive() {
	if s.destroyed {
		s.destroyed = false
		_ = s.sess.Regenerate()
	}
}

func (s *Context) Save() error {
	if s.destroyed {
		return nil
	}
	return s.sess.Save()
}

// From returns the session loaded by the session middleware.
func From(c *fiber.Ctx) (*Context, error) {
	sc, ok := c.Locals(localsSession).(*Context)
	if !ok || sc == nil {
		return nil, errors.New("session not loaded")
	}
	return sc, nil
}

func Attach(c *fiber.Ctx, sc *Context) {
	c.Locals(localsSession, sc)
}

// User returns the user resolved by the auth middleware.
func User(c *fiber.Ctx) (*models.User, bool) {
	u, ok := c.Locals(localsUser).(*models.User)
	return u, ok && u != nil
}

func SetUser(c *fiber.Ctx, u *models.User) {
	c.Locals(localsUser, u)
}

// NewStore builds the fiber session store over the given storage. A nil
// storage keeps sessions in process memory.
func NewStore(storage fiber.Storage, expiry time.Duration, secure bool) *session.Store {
	return session.New(session.Config{
		Storage:        storage,
		KeyLookup:      "cookie:session_id",
		CookiePath:     "/",
		CookieSecure:   secure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		Expiration:     expiry,
	})
}
