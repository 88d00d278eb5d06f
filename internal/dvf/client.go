package dvf

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"estimmo/server/internal/models"
)

// Client fetches DVF (Demandes de Valeurs Foncières) transaction records
// from the geo-DVF CSV mirror on data.gouv.fr. Files are published per
// commune under {base}/{year}/communes/{department}/{insee}.csv.
type Client struct {
	logger  *logrus.Logger
	baseURL string
	year    int
	client  *http.Client
}

// Columns of interest in the geo-DVF commune files.
const (
	colDateMutation      = "date_mutation"
	colNatureMutation    = "nature_mutation"
	colValeurFonciere    = "valeur_fonciere"
	colTypeLocal         = "type_local"
	colSurfaceReelleBati = "surface_reelle_bati"
)

const dvfDateLayout = "2006-01-02"

func NewClient(logger *logrus.Logger, baseURL string, year int, timeout time.Duration) *Client {
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		year:    year,
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and parses the commune file for the given INSEE code.
// Only recorded sales ("Vente") of houses and apartments are returned.
// Cells that fail to parse come through as zero values; the normalizer is
// responsible for dropping them.
func (c *Client) Fetch(ctx context.Context, municipalityCode string) ([]models.RawTransaction, error) {
	department := municipalityCode[:2]
	url := fmt.Sprintf("%s/%d/communes/%s/%s.csv", c.baseURL, c.year, department, municipalityCode)

	c.logger.WithFields(logrus.Fields{
		"municipality": municipalityCode,
		"url":          url,
	}).Info("Fetching DVF transactions")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Estimmo Property Estimator/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dvf request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dvf http %d for %s", resp.StatusCode, municipalityCode)
	}

	rows, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"municipality": municipalityCode,
		"rows":         len(rows),
	}).Info("Fetched DVF transactions")

	return rows, nil
}

// ParseCSV reads a geo-DVF commune payload and keeps the sale rows for
// houses and apartments. The same format is served by the remote mirror
// and used for local extracts loaded by cmd/ingest.
func ParseCSV(r io.Reader) ([]models.RawTransaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dvf header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range []string{colDateMutation, colNatureMutation, colValeurFonciere, colTypeLocal, colSurfaceReelleBati} {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("dvf payload missing column %q", name)
		}
	}

	var rows []models.RawTransaction
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}

		if field(record, index[colNatureMutation]) != "Vente" {
			continue
		}
		typeLocal := field(record, index[colTypeLocal])
		if typeLocal != "Maison" && typeLocal != "Appartement" {
			continue
		}

		date, _ := time.Parse(dvfDateLayout, field(record, index[colDateMutation]))
		price, _ := strconv.ParseFloat(field(record, index[colValeurFonciere]), 64)
		surface, _ := strconv.ParseFloat(field(record, index[colSurfaceReelleBati]), 64)

		rows = append(rows, models.RawTransaction{
			Date:    date,
			Price:   price,
			Surface: surface,
		})
	}

	return rows, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
