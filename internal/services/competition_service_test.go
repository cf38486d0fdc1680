package services

import (
	"context"
	"math"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ueldo/ueldo-backend/internal/models"
	"github.com/ueldo/ueldo-backend/internal/store"
)

func TestParseFee(t *testing.T) {
	tests := map[string]int{
		"150":   150,
		" 20 ":  20,
		"0":     0,
		"":      0,
		"abc":   0,
		"-5":    0,
		"12.50": 0,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseFee(in), in)
	}
}

func TestCreateCompetition(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	svc := NewCompetitionService(repo, false)
	organizerID := uuid.New()

	comp, err := svc.Create(ctx, organizerID, CompetitionFields{Name: " Chess Open ", Category: "Board", Fee: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "Chess Open", comp.Name)
	assert.Equal(t, 0, comp.EntryFee)
	assert.Equal(t, models.CompetitionLive, comp.Status)
	assert.Equal(t, 0, comp.Registrations)
	assert.Equal(t, organizerID, comp.OrganizerID)

	stored, err := repo.Competitions().FindByID(ctx, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.EntryFee)
}

func TestUpdateCompetition(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	owner, other := uuid.New(), uuid.New()

	open := NewCompetitionService(repo, false)
	comp, err := open.Create(ctx, owner, CompetitionFields{Name: "Cup", Fee: "100"})
	require.NoError(t, err)
	comp.QRCode = "qr/owner/code.png"
	require.NoError(t, repo.Competitions().Save(ctx, comp))

	t.Run("any caller without enforcement", func(t *testing.T) {
		updated, err := open.Update(ctx, comp.ID, other, CompetitionFields{Name: "Cup II", Fee: "x"})
		require.NoError(t, err)
		assert.Equal(t, "Cup II", updated.Name)
		assert.Equal(t, 0, updated.EntryFee)
		assert.Equal(t, "qr/owner/code.png", updated.QRCode)
		assert.Equal(t, owner, updated.OrganizerID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := open.Update(ctx, uuid.New(), owner, CompetitionFields{})
		assert.ErrorIs(t, err, ErrCompetitionNotFound)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("enforced ownership", func(t *testing.T) {
		strict := NewCompetitionService(repo, true)
		_, err := strict.Update(ctx, comp.ID, other, CompetitionFields{Name: "Hijack"})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.ErrorIs(t, strict.Finish(ctx, comp.ID, other), ErrForbidden)

		_, err = strict.Update(ctx, comp.ID, owner, CompetitionFields{Name: "Cup III", Fee: "5"})
		require.NoError(t, err)
	})
}

func TestFinishCompetition(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	svc := NewCompetitionService(repo, false)
	owner := uuid.New()
	comp, err := svc.Create(ctx, owner, CompetitionFields{Name: "Cup"})
	require.NoError(t, err)

	require.NoError(t, svc.Finish(ctx, comp.ID, owner))
	require.NoError(t, svc.Finish(ctx, comp.ID, owner))

	stored, err := svc.Get(ctx, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompetitionFinished, stored.Status)

	assert.ErrorIs(t, svc.Finish(ctx, uuid.New(), owner), ErrCompetitionNotFound)

	live, err := svc.ListLive(ctx)
	require.NoError(t, err)
	assert.Empty(t, live)
}

func TestListForOrganizer(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	svc := NewCompetitionService(repo, false)
	owner := uuid.New()

	chess, err := svc.Create(ctx, owner, CompetitionFields{Name: "Chess", Category: "Board", Fee: "100"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner, CompetitionFields{Name: "Sprint", Category: "Athletics", Fee: "50"})
	require.NoError(t, err)
	gobang, err := svc.Create(ctx, owner, CompetitionFields{Name: "Go", Category: "Board", Fee: "20"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, uuid.New(), CompetitionFields{Name: "Elsewhere", Category: "Board", Fee: "999"})
	require.NoError(t, err)

	require.NoError(t, repo.Competitions().SetRegistrations(ctx, chess.ID, 3))
	require.NoError(t, repo.Competitions().SetRegistrations(ctx, gobang.ID, 2))
	require.NoError(t, svc.Finish(ctx, gobang.ID, owner))

	d, err := svc.ListForOrganizer(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"Board", "Athletics"}, d.Categories)
	require.Len(t, d.ByCategory["Board"], 2)
	assert.Equal(t, "Chess", d.ByCategory["Board"][0].Name)
	assert.Equal(t, "Go", d.ByCategory["Board"][1].Name)
	assert.Len(t, d.ByCategory["Athletics"], 1)
	assert.Equal(t, 3, d.CompetitionCount)
	assert.Equal(t, 2, d.LiveCount)
	assert.Equal(t, 1, d.FinishedCount)
	assert.Equal(t, 100*3+20*2, d.TotalEarnings)
}

func TestListForOrganizer_EarningsSaturate(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository()
	svc := NewCompetitionService(repo, false)
	owner := uuid.New()

	huge := strconv.Itoa(math.MaxInt / 2)
	for _, name := range []string{"A", "B"} {
		comp, err := svc.Create(ctx, owner, CompetitionFields{Name: name, Category: "Board", Fee: huge})
		require.NoError(t, err)
		require.NoError(t, repo.Competitions().SetRegistrations(ctx, comp.ID, 3))
	}

	d, err := svc.ListForOrganizer(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, d.ByCategory["Board"][0].Earnings())
	assert.Equal(t, math.MaxInt, d.TotalEarnings)
}

func TestDashboard_VerificationPrompt(t *testing.T) {
	ctx := context.Background()
	svc := NewCompetitionService(store.NewMemoryRepository(), false)
	organizer := &models.User{ID: uuid.New(), Role: models.RoleOrganizer, VerificationStatus: models.VerificationNone}

	_, err := svc.Create(ctx, organizer.ID, CompetitionFields{Name: "One"})
	require.NoError(t, err)
	d, err := svc.Dashboard(ctx, organizer)
	require.NoError(t, err)
	assert.False(t, d.PromptVerification)

	_, err = svc.Create(ctx, organizer.ID, CompetitionFields{Name: "Two"})
	require.NoError(t, err)
	d, err = svc.Dashboard(ctx, organizer)
	require.NoError(t, err)
	assert.True(t, d.PromptVerification)

	organizer.VerificationStatus = models.VerificationSubmitted
	d, err = svc.Dashboard(ctx, organizer)
	require.NoError(t, err)
	assert.False(t, d.PromptVerification)
}
