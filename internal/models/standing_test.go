package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandingCoefficients(t *testing.T) {
	assert.InDelta(t, 0.85, StandingToRenovate.Coefficient(), 1e-9)
	assert.InDelta(t, 1.0, StandingStandard.Coefficient(), 1e-9)
	assert.InDelta(t, 1.20, StandingHighEnd.Coefficient(), 1e-9)

	// Monotonic: worse condition never outprices better condition.
	assert.Less(t, StandingToRenovate.Coefficient(), StandingStandard.Coefficient())
	assert.Less(t, StandingStandard.Coefficient(), StandingHighEnd.Coefficient())
}

func TestParseStanding(t *testing.T) {
	tests := []struct {
		input   string
		want    Standing
		wantErr bool
	}{
		{input: "to_renovate", want: StandingToRenovate},
		{input: "standard", want: StandingStandard},
		{input: "high_end", want: StandingHighEnd},
		{input: "luxury", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStanding(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
