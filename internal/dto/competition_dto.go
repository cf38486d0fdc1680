package dto

import (
	"time"

	"github.com/google/uuid"
)

type CompetitionResponse struct {
	ID            uuid.UUID `json:"id"`
	OrganizerID   uuid.UUID `json:"organizer_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory"`
	Date          string    `json:"date"`
	Venue         string    `json:"venue"`
	MapLink       string    `json:"map_link"`
	Description   string    `json:"description"`
	EntryFee      int       `json:"entry_fee"`
	PrizePool     string    `json:"prize_pool"`
	QRCodeURL     string    `json:"qr_code_url,omitempty"`
	ContactLink   string    `json:"contact_link"`
	Status        string    `json:"status"`
	Registrations int       `json:"registrations"`
	Earnings      int       `json:"earnings"`
	CreatedAt     time.Time `json:"created_at"`
}

type CategoryGroup struct {
	Category     string                `json:"category"`
	Competitions []CompetitionResponse `json:"competitions"`
}

type DashboardResponse struct {
	User               UserResponse    `json:"user"`
	Categories         []CategoryGroup `json:"categories"`
	CompetitionCount   int             `json:"competition_count"`
	LiveCount          int             `json:"live_count"`
	FinishedCount      int             `json:"finished_count"`
	TotalEarnings      int             `json:"total_earnings"`
	PromptVerification bool            `json:"prompt_verification"`
}

// CompetitionFormView backs the create and edit screens.
type CompetitionFormView struct {
	Action      string               `json:"action"`
	Competition *CompetitionResponse `json:"competition,omitempty"`
}

type RegistrationResponse struct {
	ID               uuid.UUID `json:"id"`
	ParticipantID    uuid.UUID `json:"participant_id"`
	ParticipantPhone string    `json:"participant_phone"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type RegistrationsResponse struct {
	Competition   CompetitionResponse    `json:"competition"`
	Registrations []RegistrationResponse `json:"registrations"`
	ExportURL     string                 `json:"export_url"`
}

type FeedItem struct {
	Competition CompetitionResponse `json:"competition"`
	// MyStatus is empty when the participant has not registered.
	MyStatus string `json:"my_status,omitempty"`
}

type FeedResponse struct {
	User         UserResponse `json:"user"`
	Competitions []FeedItem   `json:"competitions"`
}

type PayView struct {
	CompetitionID uuid.UUID `json:"competition_id"`
	Name          string    `json:"name"`
	EntryFee      int       `json:"entry_fee"`
	ContactLink   string    `json:"contact_link"`
	// QRCodeURL is the organizer's uploaded code, or a generated one.
	QRCodeURL string `json:"qr_code_url"`
	Generated bool   `json:"generated"`
}
