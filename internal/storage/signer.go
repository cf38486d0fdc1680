package storage

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FileClaim is the JWT claim naming the storage key a token unlocks.
const FileClaim = "key"

// Signer issues short-lived links to stored files.
type Signer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewSigner(secret string, expiry time.Duration) *Signer {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &Signer{secret: []byte(secret), expiry: expiry, now: time.Now}
}

func (s *Signer) Secret() []byte { return s.secret }

func (s *Signer) Token(key string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		FileClaim: key,
		"iat":     now.Unix(),
		"exp":     now.Add(s.expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// URL returns the signed /files link for key, or "" when key is empty.
func (s *Signer) URL(key string) (string, error) {
	if key == "" {
		return "", nil
	}
	tok, err := s.Token(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign file url: %w", err)
	}
	return "/files/" + key + "?token=" + url.QueryEscape(tok), nil
}

// KeyFromToken extracts the storage key from a verified token.
func KeyFromToken(token *jwt.Token) (string, error) {
	if token == nil || !token.Valid {
		return "", errors.New("invalid file token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid file token claims")
	}
	key, ok := claims[FileClaim].(string)
	if !ok || key == "" {
		return "", errors.New("file token has no key")
	}
	return key, nil
}
