package source

import (
	"context"
	"errors"
	"regexp"

	"github.com/sirupsen/logrus"

	"estimmo/server/internal/models"
)

// ErrInvalidMunicipality is returned when the requested code is not a
// well-formed INSEE commune code. It is the only error a fetch can surface;
// transport failures are absorbed by the fallback policy.
var ErrInvalidMunicipality = errors.New("invalid municipality code")

// INSEE commune codes: two department digits (2A/2B for Corsica) followed
// by three digits.
var inseeCodePattern = regexp.MustCompile(`^(\d{2}|2[AB])\d{3}$`)

// Connector produces raw transaction rows for a municipality. A connector
// may fail (remote mirror down, unreadable file) or return zero rows; both
// outcomes are handled by the Adapter.
type Connector interface {
	Fetch(ctx context.Context, municipalityCode string) ([]models.RawTransaction, error)
}

// Adapter is the transaction source used by the estimation pipeline. It
// tries the primary connector first and falls back to the synthetic
// generator on any failure, tagging the result with its provenance. The
// adapter holds no per-request state.
type Adapter struct {
	logger   *logrus.Logger
	primary  Connector
	fallback Connector
}

func NewAdapter(logger *logrus.Logger, primary, fallback Connector) *Adapter {
	return &Adapter{logger: logger, primary: primary, fallback: fallback}
}

// ValidMunicipalityCode reports whether code is a well-formed INSEE code.
func ValidMunicipalityCode(code string) bool {
	return inseeCodePattern.MatchString(code)
}

// Fetch returns the raw rows for a municipality and their provenance.
// A primary success with zero rows is still a REAL result; only an invalid
// municipality code produces an error.
func (a *Adapter) Fetch(ctx context.Context, municipalityCode string) ([]models.RawTransaction, models.Provenance, error) {
	if !ValidMunicipalityCode(municipalityCode) {
		return nil, "", ErrInvalidMunicipality
	}

	rows, err := a.primary.Fetch(ctx, municipalityCode)
	if err == nil {
		return rows, models.ProvenanceReal, nil
	}

	a.logger.WithError(err).WithField("municipality", municipalityCode).
		Warn("Primary transaction source failed, falling back to synthetic data")

	rows, err = a.fallback.Fetch(ctx, municipalityCode)
	if err != nil {
		// The synthetic generator never fails; keep the contract anyway.
		return nil, "", err
	}
	return rows, models.ProvenanceSynthetic, nil
}
