package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompetitionStatus string

const (
	CompetitionLive     CompetitionStatus = "Live"
	CompetitionFinished CompetitionStatus = "Finished"
)

// Competition is an event listing owned by one organizer. Registrations is a
// derived count of approved registrations and is only ever recomputed.
type Competition struct {
	ID            uuid.UUID         `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrganizerID   uuid.UUID         `gorm:"type:varchar(36);not null;index" json:"organizer_id"`
	Name          string            `gorm:"size:100" json:"name"`
	Category      string            `gorm:"size:50;index" json:"category"`
	Subcategory   string            `gorm:"size:50" json:"subcategory"`
	Date          string            `gorm:"size:50" json:"date"`
	Venue         string            `gorm:"size:100" json:"venue"`
	MapLink       string            `gorm:"size:500" json:"map_link"`
	Description   string            `gorm:"type:text" json:"description"`
	EntryFee      int               `gorm:"not null;default:0" json:"entry_fee"`
	PrizePool     string            `gorm:"size:100" json:"prize_pool"`
	QRCode        string            `gorm:"column:qr_code;size:255" json:"-"`
	ContactLink   string            `gorm:"size:500" json:"contact_link"`
	Status        CompetitionStatus `gorm:"size:20;not null;default:'Live';index" json:"status"`
	Registrations int               `gorm:"not null;default:0" json:"registrations"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Organizer     User              `gorm:"foreignKey:OrganizerID" json:"-"`
}

func (c *Competition) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Earnings is the fee collected from approved registrations, capped at math.MaxInt.
func (c *Competition) Earnings() int {
	if c.EntryFee <= 0 || c.Registrations <= 0 {
		return 0
	}
	if c.EntryFee > math.MaxInt/c.Registrations {
		return math.MaxInt
	}
	return c.EntryFee * c.Registrations
}
