package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompetitionEarnings(t *testing.T) {
	tests := []struct {
		name          string
		fee, approved int
		want          int
	}{
		{"free", 0, 10, 0},
		{"no approvals", 100, 0, 0},
		{"fee times approvals", 150, 4, 600},
		{"capped", math.MaxInt / 2, 3, math.MaxInt},
		{"exactly max", math.MaxInt, 1, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Competition{EntryFee: tt.fee, Registrations: tt.approved}
			assert.Equal(t, tt.want, c.Earnings())
		})
	}
}
