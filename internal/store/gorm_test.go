package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ueldo/ueldo-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder keeps every statement gorm builds, including dry runs.
type sqlRecorder struct {
	stmts []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface      { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	stmt, _ := fc()
	r.stmts = append(r.stmts, stmt)
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, r.stmts)
	return r.stmts[len(r.stmts)-1]
}

// failingPool is a connection that rejects every statement with err.
type failingPool struct {
	err error
}

func (p failingPool) PrepareContext(context.Context, string) (*sql.Stmt, error) { return nil, p.err }
func (p failingPool) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, p.err
}
func (p failingPool) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, p.err
}
func (p failingPool) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }

func openPostgres(t *testing.T, dryRun bool, poolErr error) (*GormRepository, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: failingPool{err: poolErr}}), &gorm.Config{
		Logger:                 rec,
		DryRun:                 dryRun,
		TranslateError:         true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)
	return NewGormRepository(db), rec
}

func TestGormCompetitions_SaveWritesDescriptiveColumnsOnly(t *testing.T) {
	repo, rec := openPostgres(t, true, nil)
	comp := &models.Competition{ID: uuid.New(), Name: "Cup", EntryFee: 100, Status: models.CompetitionFinished, Registrations: 7}

	require.NoError(t, repo.Competitions().Save(context.Background(), comp))
	stmt := rec.last(t)
	assert.True(t, strings.HasPrefix(stmt, `UPDATE "competitions" SET`), stmt)
	for _, col := range []string{`"name"=`, `"entry_fee"=`, `"qr_code"=`, `"contact_link"=`, `"updated_at"=`} {
		assert.Contains(t, stmt, col)
	}
	for _, col := range []string{`"status"`, `"registrations"`, `"organizer_id"`, `"created_at"`} {
		assert.NotContains(t, stmt, col)
	}
	assert.Contains(t, stmt, comp.ID.String())
}

func TestGormCompetitions_LockByIDSelectsForUpdate(t *testing.T) {
	repo, rec := openPostgres(t, true, nil)
	id := uuid.New()

	_, err := repo.Competitions().LockByID(context.Background(), id)
	require.NoError(t, err)
	stmt := rec.last(t)
	assert.True(t, strings.HasPrefix(stmt, `SELECT * FROM "competitions"`), stmt)
	assert.Contains(t, stmt, id.String())
	assert.True(t, strings.HasSuffix(stmt, "FOR UPDATE"), stmt)
}

func TestGormRegistrations_CountByStatus(t *testing.T) {
	repo, rec := openPostgres(t, true, nil)
	compID := uuid.New()

	_, err := repo.Registrations().CountByStatus(context.Background(), compID, models.RegistrationApproved)
	require.NoError(t, err)
	stmt := rec.last(t)
	assert.True(t, strings.HasPrefix(stmt, `SELECT count(*) FROM "registrations" WHERE`), stmt)
	assert.Contains(t, stmt, "competition_id = '"+compID.String()+"'")
	assert.Contains(t, stmt, "status = 'Approved'")
}

func TestGormLists_UseCreationOrderWithTieBreak(t *testing.T) {
	repo, rec := openPostgres(t, true, nil)
	ctx := context.Background()
	id := uuid.New()

	calls := map[string]func() error{
		"competitions by organizer": func() error { _, err := repo.Competitions().ListByOrganizer(ctx, id); return err },
		"competitions by status": func() error {
			_, err := repo.Competitions().ListByStatus(ctx, models.CompetitionLive)
			return err
		},
		"registrations by participant": func() error { _, err := repo.Registrations().ListByParticipant(ctx, id); return err },
		"registrations by competition": func() error { _, err := repo.Registrations().ListByCompetition(ctx, id); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			rec.stmts = nil
			_ = call()
			require.NotEmpty(t, rec.stmts)
			assert.Contains(t, rec.stmts[0], "ORDER BY created_at ASC, id ASC")
		})
	}
}

func TestGormUsers_CreateMapsUniqueViolation(t *testing.T) {
	repo, _ := openPostgres(t, false, &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Users().Create(context.Background(), &models.User{Phone: "9000000001"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGormUsers_CreatePassesOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	repo, _ := openPostgres(t, false, boom)

	err := repo.Users().Create(context.Background(), &models.User{Phone: "9000000001"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicate)
}
