package estimator

import (
	"time"

	"estimmo/server/internal/models"
)

const hoursPerYear = 24 * 365.25

// EstimateTrend fits an ordinary least-squares line of price-per-m² against
// elapsed years since the earliest record, and projects it to now. When now
// lies beyond the last observation this is a linear extrapolation, accepted
// as the trend model.
//
// With two or more records sharing a single date the time variance is zero
// and no line exists; the reference falls back to the plain mean with a
// flat slope.
func EstimateTrend(dataset models.TransactionDataset, now time.Time) (models.TrendResult, error) {
	records := dataset.Records
	if len(records) < 2 {
		return models.TrendResult{}, ErrInsufficientData
	}

	// Records are ordered by date, so the earliest is first.
	earliest := records[0].Date

	n := float64(len(records))
	var sumX, sumY float64
	for _, r := range records {
		sumX += yearsBetween(earliest, r.Date)
		sumY += r.PricePerM2
	}
	meanX := sumX / n
	meanY := sumY / n

	var varX, covXY float64
	for _, r := range records {
		dx := yearsBetween(earliest, r.Date) - meanX
		varX += dx * dx
		covXY += dx * (r.PricePerM2 - meanY)
	}

	if varX == 0 {
		return models.TrendResult{SlopePerYear: 0, ReferencePrice: meanY}, nil
	}

	slope := covXY / varX
	intercept := meanY - slope*meanX
	reference := intercept + slope*yearsBetween(earliest, now)

	return models.TrendResult{SlopePerYear: slope, ReferencePrice: reference}, nil
}

func yearsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / hoursPerYear
}
