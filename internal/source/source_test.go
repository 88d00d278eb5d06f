package source

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"estimmo/server/internal/models"
)

type stubConnector struct {
	rows  []models.RawTransaction
	err   error
	calls int
}

func (s *stubConnector) Fetch(_ context.Context, _ string) ([]models.RawTransaction, error) {
	s.calls++
	return s.rows, s.err
}

func TestValidMunicipalityCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"33114", true},
		{"75056", true},
		{"2A004", true}, // Ajaccio, Corse-du-Sud
		{"2B033", true}, // Bastia, Haute-Corse
		{"3311", false},
		{"331145", false},
		{"33A14", false},
		{"bordeaux", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidMunicipalityCode(tt.code))
		})
	}
}

func TestAdapter_InvalidCodeNeverReachesConnectors(t *testing.T) {
	primary := &stubConnector{}
	fallback := &stubConnector{}
	adapter := NewAdapter(logrus.New(), primary, fallback)

	_, _, err := adapter.Fetch(context.Background(), "not-a-code")

	assert.ErrorIs(t, err, ErrInvalidMunicipality)
	assert.Zero(t, primary.calls)
	assert.Zero(t, fallback.calls)
}

func TestAdapter_PrimarySuccessIsReal(t *testing.T) {
	primary := &stubConnector{rows: []models.RawTransaction{{Price: 200000, Surface: 80}}}
	fallback := &stubConnector{}
	adapter := NewAdapter(logrus.New(), primary, fallback)

	rows, provenance, err := adapter.Fetch(context.Background(), "33114")

	assert.NoError(t, err)
	assert.Equal(t, models.ProvenanceReal, provenance)
	assert.Len(t, rows, 1)
	assert.Zero(t, fallback.calls)
}

func TestAdapter_EmptyPrimaryResultIsStillReal(t *testing.T) {
	primary := &stubConnector{rows: nil}
	fallback := &stubConnector{rows: []models.RawTransaction{{Price: 1, Surface: 1}}}
	adapter := NewAdapter(logrus.New(), primary, fallback)

	rows, provenance, err := adapter.Fetch(context.Background(), "33114")

	assert.NoError(t, err)
	assert.Equal(t, models.ProvenanceReal, provenance)
	assert.Empty(t, rows)
	assert.Zero(t, fallback.calls, "an empty result is not a failure")
}

func TestAdapter_TransportFailureFallsBack(t *testing.T) {
	primary := &stubConnector{err: errors.New("dvf http 503")}
	fallback := &stubConnector{rows: []models.RawTransaction{{Price: 200000, Surface: 80}}}
	adapter := NewAdapter(logrus.New(), primary, fallback)

	rows, provenance, err := adapter.Fetch(context.Background(), "33114")

	assert.NoError(t, err, "transport failures are absorbed by the fallback")
	assert.Equal(t, models.ProvenanceSynthetic, provenance)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}
