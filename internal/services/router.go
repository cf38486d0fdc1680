package services

import "github.com/ueldo/ueldo-backend/internal/models"

type Destination int

const (
	DestinationLogin Destination = iota
	DestinationRoleSelection
	DestinationOrganizerDashboard
	DestinationParticipantFeed
)

func (d Destination) Path() string {
	switch d {
	case DestinationOrganizerDashboard:
		return "/organizer/dashboard"
	case DestinationParticipantFeed:
		return "/participant/feed"
	case DestinationRoleSelection:
		return "/select_role"
	default:
		return "/"
	}
}

func (d Destination) String() string {
	switch d {
	case DestinationOrganizerDashboard:
		return "organizer_dashboard"
	case DestinationParticipantFeed:
		return "participant_feed"
	case DestinationRoleSelection:
		return "role_selection"
	default:
		return "login"
	}
}

// RouteByRole picks the landing surface for a resolved user. A nil user,
// meaning no binding or a binding that no longer resolves, lands on login.
func RouteByRole(user *models.User) Destination {
	if user == nil {
		return DestinationLogin
	}
	switch user.Role {
	case models.RoleOrganizer:
		return DestinationOrganizerDashboard
	case models.RoleParticipant:
		return DestinationParticipantFeed
	default:
		return DestinationRoleSelection
	}
}
