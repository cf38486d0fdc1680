package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ueldo/ueldo-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository is the relational Repository.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Users() UserStore                 { return gormUsers{r.db} }
func (r *GormRepository) Competitions() CompetitionStore   { return gormCompetitions{r.db} }
func (r *GormRepository) Registrations() RegistrationStore { return gormRegistrations{r.db} }

func (r *GormRepository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRepository(tx))
	})
}

// notFound maps gorm's miss to ErrNotFound. Updates check existence with a
// read first since MySQL reports zero affected rows for unchanged values.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// creationOrder breaks created_at ties by id so repeated reads agree.
const creationOrder = "created_at ASC, id ASC"

// ForOrganizer scopes competition queries to one owner.
func ForOrganizer(organizerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organizer_id = ?", organizerID)
	}
}

// ForCompetition scopes registration queries to one competition.
func ForCompetition(competitionID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("competition_id = ?", competitionID)
	}
}

type gormUsers struct{ db *gorm.DB }

func (s gormUsers) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s gormUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s gormUsers) Create(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (s gormUsers) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

type gormCompetitions struct{ db *gorm.DB }

func (s gormCompetitions) Create(ctx context.Context, comp *models.Competition) error {
	return s.db.WithContext(ctx).Create(comp).Error
}

func (s gormCompetitions) FindByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	var comp models.Competition
	if err := s.db.WithContext(ctx).First(&comp, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &comp, nil
}

func (s gormCompetitions) LockByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	var comp models.Competition
	err := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&comp, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &comp, nil
}

// Save writes the descriptive fields only; owner, status and the counter have their own paths.
func (s gormCompetitions) Save(ctx context.Context, comp *models.Competition) error {
	if _, err := s.FindByID(ctx, comp.ID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.Competition{}).Where("id = ?", comp.ID).
		Select("name", "category", "subcategory", "date", "venue", "map_link", "description",
			"entry_fee", "prize_pool", "qr_code", "contact_link", "updated_at").
		Updates(comp).Error
}

func (s gormCompetitions) SetStatus(ctx context.Context, id uuid.UUID, status models.CompetitionStatus) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.Competition{}).Where("id = ?", id).Update("status", status).Error
}

func (s gormCompetitions) SetRegistrations(ctx context.Context, id uuid.UUID, count int) error {
	return s.db.WithContext(ctx).Model(&models.Competition{}).Where("id = ?", id).Update("registrations", count).Error
}

func (s gormCompetitions) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]models.Competition, error) {
	var comps []models.Competition
	err := s.db.WithContext(ctx).Scopes(ForOrganizer(organizerID)).Order(creationOrder).Find(&comps).Error
	return comps, err
}

func (s gormCompetitions) ListByStatus(ctx context.Context, status models.CompetitionStatus) ([]models.Competition, error) {
	var comps []models.Competition
	err := s.db.WithContext(ctx).Where("status = ?", status).Order(creationOrder).Find(&comps).Error
	return comps, err
}

type gormRegistrations struct{ db *gorm.DB }

func (s gormRegistrations) Create(ctx context.Context, reg *models.Registration) error {
	return s.db.WithContext(ctx).Create(reg).Error
}

func (s gormRegistrations) FindByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	var reg models.Registration
	if err := s.db.WithContext(ctx).First(&reg, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &reg, nil
}

func (s gormRegistrations) SetStatus(ctx context.Context, id uuid.UUID, status models.RegistrationStatus) error {
	return s.db.WithContext(ctx).Model(&models.Registration{}).Where("id = ?", id).Update("status", status).Error
}

func (s gormRegistrations) CountByStatus(ctx context.Context, competitionID uuid.UUID, status models.RegistrationStatus) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Registration{}).
		Scopes(ForCompetition(competitionID)).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (s gormRegistrations) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Registration, error) {
	var regs []models.Registration
	err := s.db.WithContext(ctx).Preload("Participant").
		Scopes(ForCompetition(competitionID)).
		Order(creationOrder).
		Find(&regs).Error
	return regs, err
}

func (s gormRegistrations) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]models.Registration, error) {
	var regs []models.Registration
	err := s.db.WithContext(ctx).Where("participant_id = ?", participantID).Order(creationOrder).Find(&regs).Error
	return regs, err
}
