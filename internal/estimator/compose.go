package estimator

import (
	"sort"

	"estimmo/server/internal/models"
)

// Compose assembles the final estimate from the adjusted price per m², the
// requested surface and the dataset the trend was fitted on.
//
// The confidence band is a fixed symmetric margin around the point
// estimate, not a statistically derived interval; preserving this exact
// semantic is deliberate.
func Compose(adjustedPricePerM2, surfaceArea float64, dataset models.TransactionDataset, trend models.TrendResult, standing models.Standing, margin float64) (models.EstimateResult, error) {
	if surfaceArea <= 0 {
		return models.EstimateResult{}, ErrInvalidArea
	}

	point := adjustedPricePerM2 * surfaceArea

	return models.EstimateResult{
		PointEstimate:       point,
		LowerBound:          point * (1 - margin),
		UpperBound:          point * (1 + margin),
		ReferencePricePerM2: trend.ReferencePrice,
		SlopePerYear:        trend.SlopePerYear,
		Standing:            standing,
		Coefficient:         standing.Coefficient(),
		SampleSize:          dataset.Size(),
		Provenance:          dataset.Provenance,
		MarketStats:         marketStats(dataset),
		TimeSeries:          dataset.TimeSeries(),
	}, nil
}

// marketStats summarizes the price-per-m² distribution for the frontend's
// statistics panel.
func marketStats(dataset models.TransactionDataset) models.MarketStats {
	if dataset.Size() == 0 {
		return models.MarketStats{}
	}

	values := make([]float64, dataset.Size())
	sum := 0.0
	for i, r := range dataset.Records {
		values[i] = r.PricePerM2
		sum += r.PricePerM2
	}
	sort.Float64s(values)

	n := len(values)
	median := values[n/2]
	if n%2 == 0 {
		median = (values[n/2-1] + values[n/2]) / 2
	}

	return models.MarketStats{
		MinPricePerM2:    values[0],
		MaxPricePerM2:    values[n-1],
		MeanPricePerM2:   sum / float64(n),
		MedianPricePerM2: median,
	}
}
