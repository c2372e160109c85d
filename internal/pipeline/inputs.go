package pipeline

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/FurmanCenter/nyc-hotels/config"
	"github.com/FurmanCenter/nyc-hotels/internal/database"
	"github.com/FurmanCenter/nyc-hotels/internal/geocoding"
	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
	"github.com/FurmanCenter/nyc-hotels/internal/sources"
)

// LoadInputs pulls every source snapshot for one run. Any unreachable
// required source aborts here, before the pipeline produces anything.
func LoadInputs(db *database.Database, cfg *config.Config, geocoder *geocoding.Geocoder, logger *logrus.Logger) (Inputs, error) {
	var in Inputs

	cw, err := db.GetCrosswalk(cfg.ReportYear)
	if err != nil {
		// Ambiguity is a data defect, not an unreachable source.
		if errors.Is(err, identifier.ErrLookupAmbiguous) {
			return in, fmt.Errorf("loading condo crosswalk: %w", err)
		}
		return in, fmt.Errorf("%w: condo crosswalk for %d: %v", sources.ErrMissingRequiredSource, cfg.ReportYear, err)
	}
	in.Crosswalk = cw
	logger.Infof("Loaded crosswalk with %d condo units for %d", cw.Len(), cw.Year())

	in.Assessments, err = db.GetAssessments(cfg.ReportYear)
	if err != nil {
		return in, fmt.Errorf("%w: %d assessments: %v", sources.ErrMissingRequiredSource, cfg.ReportYear, err)
	}
	in.PriorAssessments, err = db.GetAssessments(cfg.PriorYear)
	if err != nil {
		return in, fmt.Errorf("%w: %d assessments: %v", sources.ErrMissingRequiredSource, cfg.PriorYear, err)
	}
	logger.Infof("Loaded %d current and %d prior assessment rows",
		len(in.Assessments), len(in.PriorAssessments))

	in.Scrapes, err = sources.LoadScrape(cfg.ScrapePath, logger)
	if err != nil {
		return in, err
	}
	in.Manuals, err = sources.LoadManual(cfg.ManualPath, logger)
	if err != nil {
		return in, err
	}
	in.Unions, err = sources.LoadUnion(cfg.UnionPath, geocoder, logger)
	if err != nil {
		return in, err
	}

	return in, nil
}
