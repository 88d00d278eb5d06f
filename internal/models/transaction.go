package models

import "time"

// Provenance marks whether a dataset comes from real DVF records or from
// the synthetic fallback generator.
type Provenance string

const (
	ProvenanceReal      Provenance = "REAL"
	ProvenanceSynthetic Provenance = "SYNTHETIC"
)

// RawTransaction is a single row as produced by a transaction connector,
// before validation. Connectors parse leniently: a cell that cannot be
// parsed comes through as its zero value and is dropped by the normalizer.
type RawTransaction struct {
	Date    time.Time `json:"date"`
	Price   float64   `json:"price"`
	Surface float64   `json:"surface"`
}

// TransactionRecord is a validated sale with its derived price per square
// meter. PricePerM2 is computed once at normalization and never updated.
type TransactionRecord struct {
	Date             time.Time `json:"date"`
	Price            float64   `json:"price"`
	Surface          float64   `json:"surface"`
	MunicipalityCode string    `json:"municipality_code"`
	PricePerM2       float64   `json:"price_per_m2"`
}

// TransactionDataset holds the normalized transactions of one municipality,
// ordered by date ascending. An empty dataset is a valid "no transactions
// found" state, not an error.
type TransactionDataset struct {
	MunicipalityCode string              `json:"municipality_code"`
	Provenance       Provenance          `json:"provenance"`
	Records          []TransactionRecord `json:"records"`

	// Dropped counts raw rows discarded during normalization.
	Dropped int `json:"dropped"`
}

// Size returns the number of records in the dataset.
func (d *TransactionDataset) Size() int {
	return len(d.Records)
}

// TimeSeries returns the (date, price-per-m²) pairs used for charting.
func (d *TransactionDataset) TimeSeries() []TimeSeriesPoint {
	points := make([]TimeSeriesPoint, len(d.Records))
	for i, r := range d.Records {
		points[i] = TimeSeriesPoint{Date: r.Date, PricePerM2: r.PricePerM2}
	}
	return points
}
