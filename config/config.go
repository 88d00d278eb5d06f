package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port string `env:"PORT" envDefault:"5360"`
	}

	// DVF remote source configuration
	DVF struct {
		// Base URL of the geo-DVF CSV mirror
		BaseURL string `env:"DVF_BASE_URL" envDefault:"https://files.data.gouv.fr/geo-dvf/latest/csv"`

		// Vintage year of the published commune files
		Year int `env:"DVF_YEAR" envDefault:"2023"`

		// Timeout for a remote fetch (in seconds)
		FetchTimeout int `env:"DVF_FETCH_TIMEOUT" envDefault:"15"`

		// Optional path to a local sqlite DVF extract. When set, the local
		// store is used as the primary source instead of the remote mirror.
		LocalDBPath string `env:"DVF_LOCAL_DB" envDefault:""`
	}

	// Synthetic fallback generator configuration
	Synthetic struct {
		// Number of records generated per fallback dataset
		DatasetSize int `env:"SYNTHETIC_SIZE" envDefault:"150"`

		// Length of the generated historical window (in years)
		WindowYears int `env:"SYNTHETIC_WINDOW_YEARS" envDefault:"5"`
	}

	// Estimation configuration
	Estimation struct {
		// Symmetric confidence margin applied around the point estimate
		Margin float64 `env:"ESTIMATION_MARGIN" envDefault:"0.05"`

		// Fraction trimmed from each tail of the price-per-m² distribution
		// before fitting a trend on real data
		OutlierTrim float64 `env:"ESTIMATION_OUTLIER_TRIM" envDefault:"0.05"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
