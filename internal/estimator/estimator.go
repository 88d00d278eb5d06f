package estimator

import (
	"context"
	"sort"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"estimmo/server/internal/models"
	"estimmo/server/internal/normalizer"
	"estimmo/server/internal/source"
)

// Request carries the user inputs of one estimation.
type Request struct {
	MunicipalityCode string
	SurfaceArea      float64
	Standing         models.Standing
}

// Estimator runs the full pipeline: fetch, normalize, fit, adjust,
// compose. It holds no state across requests; every intermediate entity is
// request-scoped.
type Estimator struct {
	logger      *logrus.Logger
	adapter     *source.Adapter
	normalizer  *normalizer.Normalizer
	clock       clockwork.Clock
	margin      float64
	outlierTrim float64
}

func NewEstimator(logger *logrus.Logger, adapter *source.Adapter, norm *normalizer.Normalizer, clock clockwork.Clock, margin, outlierTrim float64) *Estimator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Estimator{
		logger:      logger,
		adapter:     adapter,
		normalizer:  norm,
		clock:       clock,
		margin:      margin,
		outlierTrim: outlierTrim,
	}
}

// Estimate produces the market value estimate for a request. Transport
// failures never surface here; the adapter falls back to synthetic data.
// The returned errors are user-correctable input conditions or the typed
// insufficient-data outcome.
func (e *Estimator) Estimate(ctx context.Context, req Request) (*models.EstimateResult, error) {
	if !req.Standing.Valid() {
		return nil, ErrInvalidStanding
	}
	if req.SurfaceArea <= 0 {
		return nil, ErrInvalidArea
	}

	rows, provenance, err := e.adapter.Fetch(ctx, req.MunicipalityCode)
	if err != nil {
		return nil, err
	}

	dataset := e.normalizer.Normalize(rows, req.MunicipalityCode, provenance)

	// Real DVF extracts carry registration artifacts (bulk sales, data
	// entry slips); trim the price-per-m² tails before fitting, as the
	// original analysis did. Synthetic data is generated in range.
	if dataset.Provenance == models.ProvenanceReal && e.outlierTrim > 0 {
		dataset = trimOutliers(dataset, e.outlierTrim)
	}

	now := e.clock.Now()
	trend, err := EstimateTrend(dataset, now)
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"municipality": req.MunicipalityCode,
			"sample_size":  dataset.Size(),
		}).Warn("Not enough data to fit a trend")
		return nil, err
	}

	adjusted := AdjustForStanding(trend.ReferencePrice, req.Standing)

	result, err := Compose(adjusted, req.SurfaceArea, dataset, trend, req.Standing, e.margin)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"municipality":   req.MunicipalityCode,
		"provenance":     result.Provenance,
		"sample_size":    result.SampleSize,
		"point_estimate": result.PointEstimate,
	}).Info("Estimate computed")

	return &result, nil
}

// MarketView returns the normalized dataset view of a municipality without
// computing an estimate, for the chart and statistics panel.
func (e *Estimator) MarketView(ctx context.Context, municipalityCode string) (*models.TransactionDataset, models.MarketStats, error) {
	rows, provenance, err := e.adapter.Fetch(ctx, municipalityCode)
	if err != nil {
		return nil, models.MarketStats{}, err
	}

	dataset := e.normalizer.Normalize(rows, municipalityCode, provenance)
	if dataset.Provenance == models.ProvenanceReal && e.outlierTrim > 0 {
		dataset = trimOutliers(dataset, e.outlierTrim)
	}

	return &dataset, marketStats(dataset), nil
}

// trimOutliers drops records whose price per m² falls outside the
// [trim, 1-trim] quantile band of the dataset.
func trimOutliers(dataset models.TransactionDataset, trim float64) models.TransactionDataset {
	n := dataset.Size()
	if n < 3 {
		return dataset
	}

	values := make([]float64, n)
	for i, r := range dataset.Records {
		values[i] = r.PricePerM2
	}
	sort.Float64s(values)

	lower := values[int(trim*float64(n-1))]
	upper := values[int((1-trim)*float64(n-1))]

	kept := make([]models.TransactionRecord, 0, n)
	for _, r := range dataset.Records {
		if r.PricePerM2 >= lower && r.PricePerM2 <= upper {
			kept = append(kept, r)
		}
	}

	dataset.Records = kept
	return dataset
}
