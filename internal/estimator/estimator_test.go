package estimator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"estimmo/server/internal/models"
	"estimmo/server/internal/normalizer"
	"estimmo/server/internal/source"
	"estimmo/server/internal/synthetic"
)

// stubConnector returns canned rows or a canned error.
type stubConnector struct {
	rows []models.RawTransaction
	err  error
}

func (s *stubConnector) Fetch(_ context.Context, _ string) ([]models.RawTransaction, error) {
	return s.rows, s.err
}

func newTestEstimator(t *testing.T, primary source.Connector, now time.Time) *Estimator {
	t.Helper()
	logger := logrus.New()
	clock := clockwork.NewFakeClockAt(now)
	fallback := synthetic.NewGenerator(logger, 150, 5, clock)
	adapter := source.NewAdapter(logger, primary, fallback)
	norm := normalizer.NewNormalizer(logger, clock)
	return NewEstimator(logger, adapter, norm, clock, 0.05, 0.05)
}

// sameDayRows builds raw rows that all share one date, so the trend
// estimator collapses to the plain mean of price per m².
func sameDayRows(day string, pricesPerM2 ...float64) []models.RawTransaction {
	rows := make([]models.RawTransaction, len(pricesPerM2))
	for i, p := range pricesPerM2 {
		rows[i] = models.RawTransaction{Date: date(day), Price: p, Surface: 1}
	}
	return rows
}

func TestEstimate_MeanScenario(t *testing.T) {
	// Mean price per m² 2223.28 on a 75 m² standard property gives
	// 166,746 with a ±5% band.
	primary := &stubConnector{rows: sameDayRows("2024-01-15", 2200.0, 2246.56)}
	est := newTestEstimator(t, primary, date("2024-06-01"))

	result, err := est.Estimate(context.Background(), Request{
		MunicipalityCode: "33114",
		SurfaceArea:      75,
		Standing:         models.StandingStandard,
	})

	assert.NoError(t, err)
	assert.InDelta(t, 166746.0, result.PointEstimate, 0.5)
	assert.InDelta(t, 158408.7, result.LowerBound, 0.5)
	assert.InDelta(t, 175083.3, result.UpperBound, 0.5)
	assert.Equal(t, 2, result.SampleSize)
	assert.Equal(t, models.ProvenanceReal, result.Provenance)
}

func TestEstimate_StandingMonotonicity(t *testing.T) {
	primary := &stubConnector{rows: sameDayRows("2024-01-15", 2000, 2100, 2300)}
	est := newTestEstimator(t, primary, date("2024-06-01"))

	estimates := make(map[models.Standing]float64)
	for _, standing := range []models.Standing{models.StandingToRenovate, models.StandingStandard, models.StandingHighEnd} {
		result, err := est.Estimate(context.Background(), Request{
			MunicipalityCode: "33114",
			SurfaceArea:      75,
			Standing:         standing,
		})
		assert.NoError(t, err)
		estimates[standing] = result.PointEstimate
	}

	assert.Less(t, estimates[models.StandingToRenovate], estimates[models.StandingStandard])
	assert.Less(t, estimates[models.StandingStandard], estimates[models.StandingHighEnd])
}

func TestEstimate_FallsBackToSyntheticOnTransportFailure(t *testing.T) {
	primary := &stubConnector{err: errors.New("connection timed out")}
	est := newTestEstimator(t, primary, date("2024-06-01"))

	result, err := est.Estimate(context.Background(), Request{
		MunicipalityCode: "33114",
		SurfaceArea:      75,
		Standing:         models.StandingStandard,
	})

	assert.NoError(t, err, "transport failures must not surface to the caller")
	assert.Equal(t, models.ProvenanceSynthetic, result.Provenance)
	assert.Equal(t, 150, result.SampleSize)
	assert.Greater(t, result.PointEstimate, 0.0)
	assert.LessOrEqual(t, result.LowerBound, result.PointEstimate)
	assert.LessOrEqual(t, result.PointEstimate, result.UpperBound)
}

func TestEstimate_InvalidInputs(t *testing.T) {
	primary := &stubConnector{rows: sameDayRows("2024-01-15", 2000, 2100)}
	est := newTestEstimator(t, primary, date("2024-06-01"))

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "invalid municipality code",
			req:     Request{MunicipalityCode: "bordeaux", SurfaceArea: 75, Standing: models.StandingStandard},
			wantErr: source.ErrInvalidMunicipality,
		},
		{
			name:    "non-positive surface",
			req:     Request{MunicipalityCode: "33114", SurfaceArea: 0, Standing: models.StandingStandard},
			wantErr: ErrInvalidArea,
		},
		{
			name:    "unknown standing",
			req:     Request{MunicipalityCode: "33114", SurfaceArea: 75, Standing: models.Standing("luxury")},
			wantErr: ErrInvalidStanding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := est.Estimate(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEstimate_InsufficientData(t *testing.T) {
	primary := &stubConnector{rows: sameDayRows("2024-01-15", 2000)}
	est := newTestEstimator(t, primary, date("2024-06-01"))

	_, err := est.Estimate(context.Background(), Request{
		MunicipalityCode: "33114",
		SurfaceArea:      75,
		Standing:         models.StandingStandard,
	})

	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEstimate_TrimsRealOutliers(t *testing.T) {
	// One absurd bulk-sale row among ordinary ones; the trimmed fit must
	// not be dragged by it.
	rows := sameDayRows("2024-01-15",
		2000, 2050, 2100, 2150, 2200, 2250, 2300, 2350, 2400, 2450,
		2000, 2050, 2100, 2150, 2200, 2250, 2300, 2350, 2400, 2450,
		90000)
	primary := &stubConnector{rows: rows}
	est := newTestEstimator(t, primary, date("2024-06-01"))

	result, err := est.Estimate(context.Background(), Request{
		MunicipalityCode: "33114",
		SurfaceArea:      100,
		Standing:         models.StandingStandard,
	})

	assert.NoError(t, err)
	assert.Equal(t, 20, result.SampleSize)
	assert.Less(t, result.ReferencePricePerM2, 3000.0)
}

func TestMarketView(t *testing.T) {
	primary := &stubConnector{rows: sameDayRows("2024-01-15", 2000, 2200, 2400)}
	est := newTestEstimator(t, primary, date("2024-06-01"))

	dataset, stats, err := est.MarketView(context.Background(), "33114")

	assert.NoError(t, err)
	assert.Equal(t, 3, dataset.Size())
	assert.Equal(t, models.ProvenanceReal, dataset.Provenance)
	assert.InDelta(t, 2200.0, stats.MeanPricePerM2, 1e-9)
	assert.InDelta(t, 2000.0, stats.MinPricePerM2, 1e-9)
	assert.InDelta(t, 2400.0, stats.MaxPricePerM2, 1e-9)
}

func TestTrimOutliers_SmallDatasetsUntouched(t *testing.T) {
	ds := dataset(record("2023-01-01", 2000), record("2023-02-01", 90000))
	trimmed := trimOutliers(ds, 0.05)
	assert.Equal(t, 2, trimmed.Size())
}
