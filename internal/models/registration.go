package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "Pending"
	RegistrationApproved RegistrationStatus = "Approved"
)

// Registration moves Pending -> Approved only.
type Registration struct {
	ID            uuid.UUID          `gorm:"type:varchar(36);primaryKey" json:"id"`
	ParticipantID uuid.UUID          `gorm:"type:varchar(36);not null;index" json:"participant_id"`
	CompetitionID uuid.UUID          `gorm:"type:varchar(36);not null;index:idx_registrations_competition_status" json:"competition_id"`
	Status        RegistrationStatus `gorm:"size:20;not null;default:'Pending';index:idx_registrations_competition_status" json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Participant   User               `gorm:"foreignKey:ParticipantID" json:"-"`
	Competition   Competition        `gorm:"foreignKey:CompetitionID" json:"-"`
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
