package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"estimmo/server/config"
	"estimmo/server/internal/api"
	"estimmo/server/internal/database"
	"estimmo/server/internal/dvf"
	"estimmo/server/internal/estimator"
	"estimmo/server/internal/normalizer"
	"estimmo/server/internal/source"
	"estimmo/server/internal/synthetic"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	clock := clockwork.NewRealClock()

	// Primary source: a local DVF extract when configured, otherwise the
	// remote data.gouv.fr mirror.
	var primary source.Connector
	if cfg.DVF.LocalDBPath != "" {
		logger.Infof("Using local DVF extract at: %s", cfg.DVF.LocalDBPath)
		db, err := database.NewDatabase(cfg.DVF.LocalDBPath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to open local DVF extract")
		}
		defer db.Close()

		if err := db.RunMigrations(); err != nil {
			logger.WithError(err).Fatal("Failed to run database migrations")
		}
		primary = db
	} else {
		primary = dvf.NewClient(logger, cfg.DVF.BaseURL, cfg.DVF.Year,
			time.Duration(cfg.DVF.FetchTimeout)*time.Second)
	}

	fallback := synthetic.NewGenerator(logger, cfg.Synthetic.DatasetSize, cfg.Synthetic.WindowYears, clock)
	adapter := source.NewAdapter(logger, primary, fallback)
	norm := normalizer.NewNormalizer(logger, clock)
	est := estimator.NewEstimator(logger, adapter, norm, clock,
		cfg.Estimation.Margin, cfg.Estimation.OutlierTrim)

	router := gin.Default()
	api.SetupRoutes(router, est, logger)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
