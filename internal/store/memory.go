package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ueldo/ueldo-backend/internal/models"
)

// MemoryRepository keeps everything in process memory. It backs DB_DRIVER=memory
// for local demos and is the fixture for tests.
type MemoryRepository struct {
	mu            sync.RWMutex
	txMu          sync.Mutex
	seq           int64
	users         map[uuid.UUID]*memRow[models.User]
	competitions  map[uuid.UUID]*memRow[models.Competition]
	registrations map[uuid.UUID]*memRow[models.Registration]
	now           func() time.Time
}

type memRow[T any] struct {
	seq int64
	val T
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:         make(map[uuid.UUID]*memRow[models.User]),
		competitions:  make(map[uuid.UUID]*memRow[models.Competition]),
		registrations: make(map[uuid.UUID]*memRow[models.Registration]),
		now:           time.Now,
	}
}

func (r *MemoryRepository) Users() UserStore                 { return memUsers{r} }
func (r *MemoryRepository) Competitions() CompetitionStore   { return memCompetitions{r} }
func (r *MemoryRepository) Registrations() RegistrationStore { return memRegistrations{r} }

// Transaction serializes fn against other transactions. There is no rollback.
func (r *MemoryRepository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

// DeleteUser removes a user row directly, as an out-of-band cleanup would.
func (r *MemoryRepository) DeleteUser(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

func (r *MemoryRepository) nextSeq() int64 {
	r.seq++
	return r.seq
}

func sortedRows[T any](rows map[uuid.UUID]*memRow[T], keep func(*T) bool) []T {
	matched := make([]*memRow[T], 0)
	for _, row := range rows {
		if keep(&row.val) {
			matched = append(matched, row)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })
	out := make([]T, 0, len(matched))
	for _, row := range matched {
		out = append(out, row.val)
	}
	return out
}

type memUsers struct{ r *MemoryRepository }

func (s memUsers) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()
	for _, row := range s.r.users {
		if row.val.Phone == phone {
			u := row.val
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s memUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()
	row, ok := s.r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := row.val
	return &u, nil
}

func (s memUsers) Create(ctx context.Context, user *models.User) error {
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	for _, row := range s.r.users {
		if row.val.Phone == user.Phone {
			return ErrDuplicate
		}
	}
	now := s.r.now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.r.users[user.ID] = &memRow[models.User]{seq: s.r.nextSeq(), val: *user}
	return nil
}

func (s memUsers) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	row, ok := s.r.users[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "role":
			row.val.Role = v.(models.Role)
		case "organizer_type":
			row.val.OrganizerType = v.(models.OrganizerType)
		case "verification_status":
			row.val.VerificationStatus = v.(models.VerificationStatus)
		case "proof_doc":
			row.val.ProofDoc = v.(string)
		}
	}
	row.val.UpdatedAt = s.r.now()
	return nil
}

type memCompetitions struct{ r *MemoryRepository }

func (s memCompetitions) Create(ctx context.Context, comp *models.Competition) error {
	if err := comp.BeforeCreate(nil); err != nil {
		return err
	}
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	now := s.r.now()
	comp.CreatedAt, comp.UpdatedAt = now, now
	s.r.competitions[comp.ID] = &memRow[models.Competition]{seq: s.r.nextSeq(), val: *comp}
	return nil
}

func (s memCompetitions) FindByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()
	row, ok := s.r.competitions[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := row.val
	return &c, nil
}

// LockByID is FindByID: Transaction already serializes writers.
func (s memCompetitions) LockByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	return s.FindByID(ctx, id)
}

func (s memCompetitions) Save(ctx context.Context, comp *models.Competition) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	row, ok := s.r.competitions[comp.ID]
	if !ok {
		return ErrNotFound
	}
	v := &row.val
	v.Name, v.Category, v.Subcategory = comp.Name, comp.Category, comp.Subcategory
	v.Date, v.Venue, v.MapLink = comp.Date, comp.Venue, comp.MapLink
	v.Description, v.EntryFee, v.PrizePool = comp.Description, comp.EntryFee, comp.PrizePool
	v.QRCode, v.ContactLink = comp.QRCode, comp.ContactLink
	v.UpdatedAt = s.r.now()
	return nil
}

func (s memCompetitions) SetStatus(ctx context.Context, id uuid.UUID, status models.CompetitionStatus) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	row, ok := s.r.competitions[id]
	if !ok {
		return ErrNotFound
	}
	row.val.Status = status
	row.val.UpdatedAt = s.r.now()
	return nil
}

func (s memCompetitions) SetRegistrations(ctx context.Context, id uuid.UUID, count int) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	row, ok := s.r.competitions[id]
	if !ok {
		return ErrNotFound
	}
	row.val.Registrations = count
	return nil
}

func (s memCompetitions) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]models.Competition, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()
	return sortedRows(s.r.competitions, func(c *models.Competition) bool { return c.OrganizerID == organizerID }), nil
}

func (s memCompetitions) ListByStatus(ctx context.Context, status models.CompetitionStatus) ([]models.Competition, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()
	return sortedRows(s.r.competitions, func(c *models.Competition) bool { return c.Status == status }), nil
}

type memRegistrations struct{ r *MemoryRepository }

func (s memRegistrations) Create(ctx context.Context, reg *models.Registration) error {
	if err := reg.BeforeCreate(nil); err != nil {
		return err
	}
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	now := s.r.now()
	reg.CreatedAt, reg.UpdatedAt = now, now
	s.r.registrations[reg.ID] = &memRow[models.Registration]{seq: s.r.nextSeq(), val: *reg}
	return nil
}

func (s memRegistrations) FindByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()
	row, ok := s.r.registrations[id]
	if !ok {
		return nil, ErrNotFound
	}
	reg := row.val
	return &reg, nil
}

func (s memRegistrations) SetStatus(ctx context.Context, id uuid.UUID, status models.RegistrationStatus) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	row, ok := s.r.registrations[id]
	if !ok {
		return ErrNotFound
	}
	row.val.Status = status
	row.val.UpdatedAt = s.r.now()
	return nil
}

func (s memRegistrations) CountByStatus(ctx context.Context, competitionID uuid.UUID, status models.RegistrationStatus) (int64, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()
	var n int64
	for _, row := range s.r.registrations {
		if row.val.CompetitionID == competitionID && row.val.Status == status {
			n++
		}
	}
	return n, nil
}

func (s memRegistrations) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Registration, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()
	regs := sortedRows(s.r.registrations, func(reg *models.Registration) bool { return reg.CompetitionID == competitionID })
	for i := range regs {
		if u, ok := s.r.users[regs[i].ParticipantID]; ok {
			regs[i].Participant = u.val
		}
	}
	return regs, nil
}

func (s memRegistrations) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]models.Registration, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()
	return sortedRows(s.r.registrations, func(reg *models.Registration) bool { return reg.ParticipantID == participantID }), nil
}
