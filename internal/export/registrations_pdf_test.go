package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ueldo/ueldo-backend/internal/models"
)

func TestRegistrationsPDF(t *testing.T) {
	comp := &models.Competition{Name: "Chess Open", Category: "Board", EntryFee: 100, Registrations: 1, Status: models.CompetitionLive}
	regs := []models.Registration{
		{Status: models.RegistrationApproved, Participant: models.User{Phone: "9000000001"}, CreatedAt: time.Now()},
		{Status: models.RegistrationPending, Participant: models.User{Phone: "9000000002"}, CreatedAt: time.Now()},
	}

	out, err := RegistrationsPDF(comp, regs, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := RegistrationsPDF(comp, nil, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF")))
}
