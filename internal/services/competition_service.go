package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ueldo/ueldo-backend/internal/models"
	"github.com/ueldo/ueldo-backend/internal/store"
)

// CompetitionFields is the organizer's create/edit form. Fee is kept as raw
// text because it is coerced, never rejected.
type CompetitionFields struct {
	Name        string `form:"compName" validate:"max=100"`
	Category    string `form:"category" validate:"max=50"`
	Subcategory string `form:"subCat" validate:"max=50"`
	Date        string `form:"dateTime" validate:"max=50"`
	Venue       string `form:"venue" validate:"max=100"`
	MapLink     string `form:"mapLink" validate:"omitempty,max=500"`
	Description string `form:"description"`
	Fee         string `form:"fee"`
	PrizePool   string `form:"prize" validate:"max=100"`
	ContactLink string `form:"contactLink" validate:"omitempty,max=500"`
	// QRCode is a storage key. Empty on update keeps the current one.
	QRCode string `form:"-"`
}

// ParseFee returns the fee as a non-negative integer, or 0 for anything unparseable.
func ParseFee(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// OrganizerDashboard is one pass over an organizer's competitions.
type OrganizerDashboard struct {
	// Categories lists the keys of ByCategory in first-seen order.
	Categories         []string
	ByCategory         map[string][]models.Competition
	CompetitionCount   int
	LiveCount          int
	FinishedCount      int
	TotalEarnings      int
	PromptVerification bool
}

type CompetitionService struct {
	repo             store.Repository
	enforceOwnership bool
}

func NewCompetitionService(repo store.Repository, enforceOwnership bool) *CompetitionService {
	return &CompetitionService{repo: repo, enforceOwnership: enforceOwnership}
}

func (s *CompetitionService) Create(ctx context.Context, organizerID uuid.UUID, f CompetitionFields) (*models.Competition, error) {
	comp := &models.Competition{
		ID:            uuid.New(),
		OrganizerID:   organizerID,
		Status:        models.CompetitionLive,
		Registrations: 0,
	}
	applyFields(comp, f)

	if err := s.repo.Competitions().Create(ctx, comp); err != nil {
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}
	slog.InfoContext(ctx, "competition created", "action", "competition.create",
		"user_id", organizerID.String(), "competition_id", comp.ID.String(), "entry_fee", comp.EntryFee)
	return comp, nil
}

func applyFields(comp *models.Competition, f CompetitionFields) {
	comp.Name = strings.TrimSpace(f.Name)
	comp.Category = strings.TrimSpace(f.Category)
	comp.Subcategory = strings.TrimSpace(f.Subcategory)
	comp.Date = strings.TrimSpace(f.Date)
	comp.Venue = strings.TrimSpace(f.Venue)
	comp.MapLink = strings.TrimSpace(f.MapLink)
	comp.Description = f.Description
	comp.EntryFee = ParseFee(f.Fee)
	comp.PrizePool = strings.TrimSpace(f.PrizePool)
	comp.ContactLink = strings.TrimSpace(f.ContactLink)
	if f.QRCode != "" {
		comp.QRCode = f.QRCode
	}
}

func (s *CompetitionService) Get(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	comp, err := s.repo.Competitions().FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrCompetitionNotFound)
	}
	return comp, nil
}

// GetOwned is Get plus the ownership check when enforcement is on.
func (s *CompetitionService) GetOwned(ctx context.Context, id, callerID uuid.UUID) (*models.Competition, error) {
	comp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(s.enforceOwnership, comp, callerID); err != nil {
		return nil, err
	}
	return comp, nil
}

func checkOwner(enforce bool, comp *models.Competition, callerID uuid.UUID) error {
	if enforce && comp.OrganizerID != callerID {
		return ErrForbidden
	}
	return nil
}

// Update rewrites the descriptive fields. Without ownership enforcement any
// caller may edit any competition.
func (s *CompetitionService) Update(ctx context.Context, id, callerID uuid.UUID, f CompetitionFields) (*models.Competition, error) {
	comp, err := s.GetOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	applyFields(comp, f)
	if err := s.repo.Competitions().Save(ctx, comp); err != nil {
		return nil, mapNotFound(err, ErrCompetitionNotFound)
	}
	slog.InfoContext(ctx, "competition updated", "action", "competition.update",
		"user_id", callerID.String(), "competition_id", id.String())
	return comp, nil
}

// Finish moves a competition to Finished. Finishing twice is harmless.
func (s *CompetitionService) Finish(ctx context.Context, id, callerID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, id, callerID); err != nil {
		return err
	}
	if err := s.repo.Competitions().SetStatus(ctx, id, models.CompetitionFinished); err != nil {
		return mapNotFound(err, ErrCompetitionNotFound)
	}
	slog.InfoContext(ctx, "competition finished", "action", "competition.finish",
		"user_id", callerID.String(), "competition_id", id.String())
	return nil
}

// ListForOrganizer groups the organizer's competitions by category and totals
// the counters in the same pass. The verification prompt is decided by the caller.
func (s *CompetitionService) ListForOrganizer(ctx context.Context, organizerID uuid.UUID) (*OrganizerDashboard, error) {
	comps, err := s.repo.Competitions().ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}

	d := &OrganizerDashboard{
		Categories:       []string{},
		ByCategory:       make(map[string][]models.Competition),
		CompetitionCount: len(comps),
	}
	for _, c := range comps {
		if _, seen := d.ByCategory[c.Category]; !seen {
			d.Categories = append(d.Categories, c.Category)
		}
		d.ByCategory[c.Category] = append(d.ByCategory[c.Category], c)

		switch c.Status {
		case models.CompetitionLive:
			d.LiveCount++
		case models.CompetitionFinished:
			d.FinishedCount++
		}
		d.TotalEarnings = addCapped(d.TotalEarnings, c.Earnings())
	}
	return d, nil
}

// addCapped sums non-negative amounts, stopping at math.MaxInt.
func addCapped(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Dashboard is ListForOrganizer plus the verification prompt for organizer.
func (s *CompetitionService) Dashboard(ctx context.Context, organizer *models.User) (*OrganizerDashboard, error) {
	d, err := s.ListForOrganizer(ctx, organizer.ID)
	if err != nil {
		return nil, err
	}
	d.PromptVerification = ShouldPromptVerification(d.CompetitionCount, organizer.VerificationStatus)
	return d, nil
}

func (s *CompetitionService) ListLive(ctx context.Context) ([]models.Competition, error) {
	comps, err := s.repo.Competitions().ListByStatus(ctx, models.CompetitionLive)
	if err != nil {
		return nil, fmt.Errorf("failed to list live competitions: %w", err)
	}
	return comps, nil
}
