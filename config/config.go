package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// DatabasePath is the sqlite store holding the assessment extract, the
	// condo crosswalk, and the canonical output table.
	DatabasePath string `env:"HOTELS_DB_PATH" envDefault:"database/hotels.db"`

	// Report years for the assessment extract. Current-year room counts
	// take precedence over prior-year ones during fusion.
	ReportYear int `env:"HOTELS_REPORT_YEAR" envDefault:"2022"`
	PriorYear  int `env:"HOTELS_PRIOR_YEAR" envDefault:"2021"`

	// Flat-file source paths
	ScrapePath    string `env:"HOTELS_SCRAPE_PATH" envDefault:"data/scraped_hotels.jsonl"`
	ManualPath    string `env:"HOTELS_MANUAL_PATH" envDefault:"data/manual_research.csv"`
	UnionPath     string `env:"HOTELS_UNION_PATH" envDefault:"data/union_directory.csv"`
	OverridesPath string `env:"HOTELS_OVERRIDES_PATH" envDefault:"config/overrides.json"`

	// DistrictsPath is an optional community-district boundary GeoJSON;
	// when set, records missing a district are backfilled from their
	// coordinates.
	DistrictsPath string `env:"HOTELS_DISTRICTS_PATH" envDefault:""`

	// GeocodeCacheDir holds the Nominatim response cache.
	GeocodeCacheDir string `env:"HOTELS_GEOCODE_CACHE" envDefault:""`

	Server struct {
		Port string `env:"HOTELS_PORT" envDefault:"5250"`

		// Hours between scheduled re-reconciliation runs; 0 disables
		// the scheduler.
		ReconcileInterval int `env:"HOTELS_RECONCILE_INTERVAL" envDefault:"0"`
	}

	BatchProcessing struct {
		// Maximum number of canonical records per persisted batch
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
