package synthetic

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"estimmo/server/internal/models"
)

// Base price-per-m² at the start of the window, and its yearly rise. These
// mirror the simulated market the demo dataset was built on: 2000 €/m²
// rising by 100 €/m² per year, with gaussian noise per sale.
const (
	basePricePerM2 = 2000.0
	yearlyRise     = 100.0
	noiseStdDev    = 200.0
	minSurfaceM2   = 30.0
	maxSurfaceM2   = 150.0
	daysPerYear    = 365
	minPricePerM2  = 100.0
)

// Generator produces a deterministic fallback dataset when no real DVF data
// can be fetched. The generator is seeded from the municipality code and
// the current calendar day, so two fallback fetches for the same commune on
// the same day yield byte-identical rows.
type Generator struct {
	logger      *logrus.Logger
	datasetSize int
	windowYears int
	clock       clockwork.Clock
}

func NewGenerator(logger *logrus.Logger, datasetSize, windowYears int, clock clockwork.Clock) *Generator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Generator{
		logger:      logger,
		datasetSize: datasetSize,
		windowYears: windowYears,
		clock:       clock,
	}
}

// Fetch generates the synthetic rows for a municipality. It never fails.
func (g *Generator) Fetch(_ context.Context, municipalityCode string) ([]models.RawTransaction, error) {
	now := g.clock.Now()
	rng := rand.New(rand.NewSource(g.seed(municipalityCode, now)))

	windowStart := now.AddDate(-g.windowYears, 0, 0)
	windowDays := g.windowYears * daysPerYear

	rows := make([]models.RawTransaction, g.datasetSize)
	for i := range rows {
		date := windowStart.AddDate(0, 0, rng.Intn(windowDays))

		// Rising mean trend by calendar year since the window start,
		// plus bounded noise per sale.
		yearsIn := float64(date.Year() - windowStart.Year())
		pricePerM2 := basePricePerM2 + yearsIn*yearlyRise + rng.NormFloat64()*noiseStdDev
		if pricePerM2 < minPricePerM2 {
			pricePerM2 = minPricePerM2
		}

		surface := minSurfaceM2 + rng.Float64()*(maxSurfaceM2-minSurfaceM2)

		rows[i] = models.RawTransaction{
			Date:    date,
			Price:   pricePerM2 * surface,
			Surface: surface,
		}
	}

	g.logger.WithFields(logrus.Fields{
		"municipality": municipalityCode,
		"rows":         len(rows),
		"window_years": g.windowYears,
	}).Info("Generated synthetic transactions")

	return rows, nil
}

// seed derives a stable per-commune, per-day random seed.
func (g *Generator) seed(municipalityCode string, now time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(municipalityCode))
	h.Write([]byte(now.Format("2006-01-02")))
	return int64(h.Sum64())
}
