package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ueldo/ueldo-backend/internal/models"
	"github.com/ueldo/ueldo-backend/internal/store"
)

// ParticipantFeed lists live competitions with the participant's latest
// registration status per competition they registered for.
type ParticipantFeed struct {
	Competitions []models.Competition
	StatusByID   map[uuid.UUID]models.RegistrationStatus
}

type RegistrationService struct {
	repo             store.Repository
	enforceOwnership bool
}

func NewRegistrationService(repo store.Repository, enforceOwnership bool) *RegistrationService {
	return &RegistrationService{repo: repo, enforceOwnership: enforceOwnership}
}

// Register records a Pending claim after the participant confirms payment.
// Repeated registrations for the same competition are stored as separate rows.
func (s *RegistrationService) Register(ctx context.Context, participantID, competitionID uuid.UUID) (*models.Registration, error) {
	if _, err := s.repo.Competitions().FindByID(ctx, competitionID); err != nil {
		return nil, mapNotFound(err, ErrCompetitionNotFound)
	}
	reg := &models.Registration{
		ID:            uuid.New(),
		ParticipantID: participantID,
		CompetitionID: competitionID,
		Status:        models.RegistrationPending,
	}
	if err := s.repo.Registrations().Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	slog.InfoContext(ctx, "registration created", "action", "registration.create",
		"user_id", participantID.String(), "competition_id", competitionID.String(), "registration_id", reg.ID.String())
	return reg, nil
}

// Approve marks a registration Approved and recounts the competition's
// approved registrations from the registration rows. Approving twice yields
// the same count.
func (s *RegistrationService) Approve(ctx context.Context, registrationID, callerID uuid.UUID) (*models.Registration, error) {
	var approved *models.Registration
	err := s.repo.Transaction(ctx, func(repo store.Repository) error {
		reg, err := repo.Registrations().FindByID(ctx, registrationID)
		if err != nil {
			return mapNotFound(err, ErrRegistrationNotFound)
		}
		// concurrent approvals for one competition recount one at a time
		comp, err := repo.Competitions().LockByID(ctx, reg.CompetitionID)
		if err != nil {
			return mapNotFound(err, ErrCompetitionNotFound)
		}
		if err := checkOwner(s.enforceOwnership, comp, callerID); err != nil {
			return err
		}

		if err := repo.Registrations().SetStatus(ctx, reg.ID, models.RegistrationApproved); err != nil {
			return mapNotFound(err, ErrRegistrationNotFound)
		}
		n, err := repo.Registrations().CountByStatus(ctx, reg.CompetitionID, models.RegistrationApproved)
		if err != nil {
			return fmt.Errorf("failed to count approvals: %w", err)
		}
		if err := repo.Competitions().SetRegistrations(ctx, reg.CompetitionID, int(n)); err != nil {
			return mapNotFound(err, ErrCompetitionNotFound)
		}

		reg.Status = models.RegistrationApproved
		approved = reg
		slog.InfoContext(ctx, "registration approved", "action", "registration.approve",
			"user_id", callerID.String(), "registration_id", reg.ID.String(),
			"competition_id", reg.CompetitionID.String(), "registrations", n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// ListForCompetition returns the competition's registrations with participants loaded.
func (s *RegistrationService) ListForCompetition(ctx context.Context, competitionID, callerID uuid.UUID) (*models.Competition, []models.Registration, error) {
	comp, err := s.repo.Competitions().FindByID(ctx, competitionID)
	if err != nil {
		return nil, nil, mapNotFound(err, ErrCompetitionNotFound)
	}
	if err := checkOwner(s.enforceOwnership, comp, callerID); err != nil {
		return nil, nil, err
	}
	regs, err := s.repo.Registrations().ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return comp, regs, nil
}

func (s *RegistrationService) FeedFor(ctx context.Context, participantID uuid.UUID) (*ParticipantFeed, error) {
	comps, err := s.repo.Competitions().ListByStatus(ctx, models.CompetitionLive)
	if err != nil {
		return nil, fmt.Errorf("failed to list live competitions: %w", err)
	}
	regs, err := s.repo.Registrations().ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	statuses := make(map[uuid.UUID]models.RegistrationStatus, len(regs))
	// regs are oldest first, so the last write per competition wins
	for _, r := range regs {
		statuses[r.CompetitionID] = r.Status
	}
	return &ParticipantFeed{Competitions: comps, StatusByID: statuses}, nil
}
