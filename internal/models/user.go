package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUnset       Role = ""
	RoleOrganizer   Role = "organizer"
	RoleParticipant Role = "participant"
)

// ParseRole accepts only the two selectable roles.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOrganizer, RoleParticipant:
		return Role(s), true
	default:
		return RoleUnset, false
	}
}

type OrganizerType string

const (
	OrganizerClub       OrganizerType = "Club"
	OrganizerIndividual OrganizerType = "Individual"
)

type VerificationStatus string

const (
	VerificationNone      VerificationStatus = "None"
	VerificationSubmitted VerificationStatus = "Submitted"
	VerificationVerified  VerificationStatus = "Verified"
)

// User is identified by phone number and created on first successful login.
type User struct {
	ID                 uuid.UUID          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Phone              string             `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	Role               Role               `gorm:"size:20" json:"role"`
	OrganizerType      OrganizerType      `gorm:"size:20" json:"organizer_type,omitempty"`
	VerificationStatus VerificationStatus `gorm:"size:20;not null;default:'None'" json:"verification_status"`
	ProofDoc           string             `gorm:"size:255" json:"-"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.VerificationStatus == "" {
		u.VerificationStatus = VerificationNone
	}
	return nil
}
