package models

import "time"

// TimeSeriesPoint is one charting sample of the price-per-m² evolution.
type TimeSeriesPoint struct {
	Date       time.Time `json:"date"`
	PricePerM2 float64   `json:"price_per_m2"`
}

// TrendResult is the fitted temporal trend of a dataset. ReferencePrice is
// the price per m² projected to the current date, before any standing
// adjustment.
type TrendResult struct {
	SlopePerYear   float64 `json:"slope_per_year"`
	ReferencePrice float64 `json:"reference_price"`
}

// MarketStats summarizes the price-per-m² distribution of the dataset used
// for an estimate.
type MarketStats struct {
	MinPricePerM2    float64 `json:"min_price_per_m2"`
	MaxPricePerM2    float64 `json:"max_price_per_m2"`
	MeanPricePerM2   float64 `json:"mean_price_per_m2"`
	MedianPricePerM2 float64 `json:"median_price_per_m2"`
}

// EstimateResult is the final artifact returned to the presentation layer.
// It is assembled once per request and not persisted.
type EstimateResult struct {
	PointEstimate       float64           `json:"point_estimate"`
	LowerBound          float64           `json:"lower_bound"`
	UpperBound          float64           `json:"upper_bound"`
	ReferencePricePerM2 float64           `json:"reference_price_per_m2"`
	SlopePerYear        float64           `json:"slope_per_year"`
	Standing            Standing          `json:"standing"`
	Coefficient         float64           `json:"coefficient"`
	SampleSize          int               `json:"sample_size"`
	Provenance          Provenance        `json:"provenance"`
	MarketStats         MarketStats       `json:"market_stats"`
	TimeSeries          []TimeSeriesPoint `json:"time_series"`
}
