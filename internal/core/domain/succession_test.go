package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSuccession(t *testing.T) {
	tests := []struct {
		name        string
		heirs       int
		legittima   string
		disponibile string
		perHeir     float64
	}{
		{"single heir", 1, "1/2", "1/2", 50.0},
		{"two heirs", 2, "2/3", "1/3", 33.3},
		{"three heirs", 3, "2/3", "1/3", 22.2},
		{"four heirs", 4, "2/3", "1/3", 16.7},
		{"six heirs", 6, "2/3", "1/3", 11.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := ComputeSuccession(tt.heirs)
			assert.Equal(t, tt.legittima, shares.Legittima)
			assert.Equal(t, tt.disponibile, shares.Disponibile)
			assert.InDelta(t, tt.perHeir, shares.PerHeirPct, 0.001)
		})
	}
}

func TestComputeSuccession_NoHeirs(t *testing.T) {
	assert.Equal(t, SuccessionShares{}, ComputeSuccession(0))
	assert.Equal(t, SuccessionShares{}, ComputeSuccession(-3))
}
