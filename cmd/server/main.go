package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/FurmanCenter/nyc-hotels/config"
	"github.com/FurmanCenter/nyc-hotels/internal/api"
	"github.com/FurmanCenter/nyc-hotels/internal/database"
	"github.com/FurmanCenter/nyc-hotels/internal/geocoding"
	"github.com/FurmanCenter/nyc-hotels/internal/geometry"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
	"github.com/FurmanCenter/nyc-hotels/internal/pipeline"
	"github.com/FurmanCenter/nyc-hotels/internal/processor"
	"github.com/FurmanCenter/nyc-hotels/internal/queue"
	"github.com/FurmanCenter/nyc-hotels/internal/scheduler"
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

	// Scheduled re-reconciliation hands each full run to the queue; the
	// processor replaces the canonical set atomically.
	if cfg.Server.ReconcileInterval > 0 {
		sink, err := database.OpenSink(cfg.DatabasePath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to open persistence sink")
		}

		// One pending run at a time; a run arriving while the previous one
		// is still persisting is reported back to the scheduler.
		hotelQueue := queue.NewHotelQueue(1, logger)
		batchProcessor := processor.NewBatchProcessor(sink, hotelQueue, cfg, logger)
		hotelQueue.Start()
		batchProcessor.Start()
		defer batchProcessor.Stop()

		overrides, err := config.LoadOverrides(cfg.OverridesPath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load override table")
		}

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

		job := func() error {
			inputs, err := pipeline.LoadInputs(db, cfg, geocoder, logger)
			if err != nil {
				return err
			}
			hotels, _ := pipeline.New(overrides, districts, logger).Run(inputs)
			run := make([]*models.CanonicalHotel, len(hotels))
			for i := range hotels {
				run[i] = &hotels[i]
			}
			return hotelQueue.Push(run)
		}

		interval := time.Duration(cfg.Server.ReconcileInterval) * time.Hour
		sched := scheduler.NewScheduler(job, interval, logger)
		sched.Start()
		defer sched.Stop()
	}

	router := gin.Default()
	router.Use(cors.Default())
	api.SetupRoutes(router, db)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
