package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/FurmanCenter/nyc-hotels/config"
	"github.com/FurmanCenter/nyc-hotels/internal/database"
	"github.com/FurmanCenter/nyc-hotels/internal/geocoding"
	"github.com/FurmanCenter/nyc-hotels/internal/geometry"
	"github.com/FurmanCenter/nyc-hotels/internal/pipeline"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.DatabasePath)
	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	overrides, err := config.LoadOverrides(cfg.OverridesPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load override table")
	}
	logger.Infof("Loaded %d overrides (version %q)", len(overrides.Overrides), overrides.Version)

	var districts *geometry.DistrictIndex
	if cfg.DistrictsPath != "" {
		districts, err = geometry.LoadDistrictIndex(cfg.DistrictsPath, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load community district boundaries")
		}
	}

	cacheDir := cfg.GeocodeCacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "nyc-hotels", "geocode_cache")
	}
	geocoder := geocoding.NewGeocoder(logger, cacheDir)

	inputs, err := pipeline.LoadInputs(db, cfg, geocoder, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load source snapshots")
	}

	hotels, _ := pipeline.New(overrides, districts, logger).Run(inputs)

	sink, err := database.OpenSink(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open persistence sink")
	}
	if err := database.ReplaceRun(sink, hotels, cfg.BatchProcessing.MaxBatchSize); err != nil {
		logger.WithError(err).Fatal("Failed to persist reconciliation run")
	}

	logger.Infof("Persisted %d canonical hotel records", len(hotels))
}
