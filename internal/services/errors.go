package services

import (
	"errors"
	"fmt"

	"github.com/ueldo/ueldo-backend/internal/store"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrCompetitionNotFound  = fmt.Errorf("competition %w", ErrNotFound)
	ErrRegistrationNotFound = fmt.Errorf("registration %w", ErrNotFound)

	ErrUnauthenticated = errors.New("not authenticated")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidCode     = errors.New("invalid code")
	ErrNoPendingCode   = fmt.Errorf("no code requested: %w", ErrInvalidCode)
	ErrForbidden       = errors.New("not the owner of this competition")
)

// mapNotFound swaps store.ErrNotFound for the entity-specific sentinel.
func mapNotFound(err, target error) error {
	if errors.Is(err, store.ErrNotFound) {
		return target
	}
	return err
}
