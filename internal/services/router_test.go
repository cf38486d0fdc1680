package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ueldo/ueldo-backend/internal/models"
)

func TestRouteByRole(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want Destination
		path string
	}{
		{"anonymous", nil, DestinationLogin, "/"},
		{"role unset", &models.User{Role: models.RoleUnset}, DestinationRoleSelection, "/select_role"},
		{"organizer", &models.User{Role: models.RoleOrganizer}, DestinationOrganizerDashboard, "/organizer/dashboard"},
		{"participant", &models.User{Role: models.RoleParticipant}, DestinationParticipantFeed, "/participant/feed"},
		{"unknown role", &models.User{Role: "admin"}, DestinationRoleSelection, "/select_role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RouteByRole(tt.user)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.path, got.Path())
		})
	}
}

func TestShouldPromptVerification(t *testing.T) {
	tests := []struct {
		count  int
		status models.VerificationStatus
		want   bool
	}{
		{0, models.VerificationNone, false},
		{1, models.VerificationNone, false},
		{2, models.VerificationNone, true},
		{7, models.VerificationNone, true},
		{2, "", true},
		{5, models.VerificationSubmitted, false},
		{5, models.VerificationVerified, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShouldPromptVerification(tt.count, tt.status), "count=%d status=%q", tt.count, tt.status)
	}
}
