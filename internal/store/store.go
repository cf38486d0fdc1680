// Package store persists users, competitions and registrations.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ueldo/ueldo-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserStore interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

type CompetitionStore interface {
	Create(ctx context.Context, comp *models.Competition) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Competition, error)
	// LockByID reads the row and holds it against other writers until the
	// surrounding transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*models.Competition, error)
	Save(ctx context.Context, comp *models.Competition) error
	SetStatus(ctx context.Context, id uuid.UUID, status models.CompetitionStatus) error
	SetRegistrations(ctx context.Context, id uuid.UUID, count int) error
	// ListByOrganizer and ListByStatus return rows in creation order.
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]models.Competition, error)
	ListByStatus(ctx context.Context, status models.CompetitionStatus) ([]models.Competition, error)
}

type RegistrationStore interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.RegistrationStatus) error
	CountByStatus(ctx context.Context, competitionID uuid.UUID, status models.RegistrationStatus) (int64, error)
	// ListByCompetition preloads Participant. Rows are in creation order.
	ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Registration, error)
	// ListByParticipant returns rows in creation order.
	ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]models.Registration, error)
}

// Repository groups the stores and runs multi-row changes atomically.
type Repository interface {
	Users() UserStore
	Competitions() CompetitionStore
	Registrations() RegistrationStore
	Transaction(ctx context.Context, fn func(repo Repository) error) error
}
