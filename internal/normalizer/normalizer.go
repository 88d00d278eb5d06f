package normalizer

import (
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"estimmo/server/internal/models"
)

// Normalizer turns raw connector rows into a validated, date-ordered
// dataset. Rows with a missing date, a date in the future, or a
// non-positive price or surface are dropped and counted, never fatal.
type Normalizer struct {
	logger *logrus.Logger
	clock  clockwork.Clock
}

func NewNormalizer(logger *logrus.Logger, clock clockwork.Clock) *Normalizer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Normalizer{logger: logger, clock: clock}
}

// Normalize validates and coerces raw rows into a TransactionDataset.
// Price per m² is computed here, once per kept record. An empty result is
// a legitimate "no usable transactions" state.
func (n *Normalizer) Normalize(rows []models.RawTransaction, municipalityCode string, provenance models.Provenance) models.TransactionDataset {
	now := n.clock.Now()

	records := make([]models.TransactionRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if !valid(row, now) {
			dropped++
			continue
		}
		records = append(records, models.TransactionRecord{
			Date:             row.Date,
			Price:            row.Price,
			Surface:          row.Surface,
			MunicipalityCode: municipalityCode,
			PricePerM2:       row.Price / row.Surface,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	if dropped > 0 {
		n.logger.WithFields(logrus.Fields{
			"municipality": municipalityCode,
			"kept":         len(records),
			"dropped":      dropped,
		}).Warn("Dropped malformed transaction rows")
	}

	return models.TransactionDataset{
		MunicipalityCode: municipalityCode,
		Provenance:       provenance,
		Records:          records,
		Dropped:          dropped,
	}
}

func valid(row models.RawTransaction, now time.Time) bool {
	if row.Date.IsZero() || row.Date.After(now) {
		return false
	}
	return row.Price > 0 && row.Surface > 0
}
