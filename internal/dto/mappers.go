package dto

import "github.com/ueldo/ueldo-backend/internal/models"

// URLSigner turns a storage key into a link the browser can fetch.
type URLSigner interface {
	URL(key string) (string, error)
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Phone:              u.Phone,
		Role:               string(u.Role),
		OrganizerType:      string(u.OrganizerType),
		VerificationStatus: string(u.VerificationStatus),
	}
}

func NewCompetitionResponse(c *models.Competition, signer URLSigner) (CompetitionResponse, error) {
	resp := CompetitionResponse{
		ID:            c.ID,
		OrganizerID:   c.OrganizerID,
		Name:          c.Name,
		Category:      c.Category,
		Subcategory:   c.Subcategory,
		Date:          c.Date,
		Venue:         c.Venue,
		MapLink:       c.MapLink,
		Description:   c.Description,
		EntryFee:      c.EntryFee,
		PrizePool:     c.PrizePool,
		ContactLink:   c.ContactLink,
		Status:        string(c.Status),
		Registrations: c.Registrations,
		Earnings:      c.Earnings(),
		CreatedAt:     c.CreatedAt,
	}
	if c.QRCode != "" && signer != nil {
		u, err := signer.URL(c.QRCode)
		if err != nil {
			return CompetitionResponse{}, err
		}
		resp.QRCodeURL = u
	}
	return resp, nil
}

func NewCompetitionResponses(list []models.Competition, signer URLSigner) ([]CompetitionResponse, error) {
	out := make([]CompetitionResponse, 0, len(list))
	for i := range list {
		r, err := NewCompetitionResponse(&list[i], signer)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func NewRegistrationResponse(r *models.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:               r.ID,
		ParticipantID:    r.ParticipantID,
		ParticipantPhone: r.Participant.Phone,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
	}
}
