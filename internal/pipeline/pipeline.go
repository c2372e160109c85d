// Package pipeline runs the reconciliation pass: aggregate assessment
// records by mappable lot, fuse fields across sources, classify, apply
// overrides, and filter down to the final deliverable set.
package pipeline

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/FurmanCenter/nyc-hotels/config"
	"github.com/FurmanCenter/nyc-hotels/internal/aggregate"
	"github.com/FurmanCenter/nyc-hotels/internal/classify"
	"github.com/FurmanCenter/nyc-hotels/internal/fusion"
	"github.com/FurmanCenter/nyc-hotels/internal/geometry"
	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

// Inputs are the immutable source snapshots for one run.
type Inputs struct {
	Crosswalk        *identifier.Crosswalk
	Assessments      []models.AssessmentRecord
	PriorAssessments []models.AssessmentRecord
	Scrapes          []models.ScrapeRecord
	Manuals          []models.ManualRecord
	Unions           []models.UnionRecord
}

// Summary counts what happened to the run, for the closing log line.
type Summary struct {
	AssessmentRows    int
	MappableLots      int
	DroppedCategory   int
	DroppedManual     int
	DroppedUngeocoded int
	Emitted           int
}

type Pipeline struct {
	logger    *logrus.Logger
	overrides *config.OverrideTable
	districts *geometry.DistrictIndex
}

// New builds a pipeline. The district index is optional; without it,
// records missing a community district simply stay unknown.
func New(overrides *config.OverrideTable, districts *geometry.DistrictIndex, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.New()
	}
	return &Pipeline{
		logger:    logger,
		overrides: overrides,
		districts: districts,
	}
}

// Run executes one reconciliation pass. Output is ordered by BBL so
// re-runs are reproducible.
func (p *Pipeline) Run(in Inputs) ([]models.CanonicalHotel, Summary) {
	summary := Summary{AssessmentRows: len(in.Assessments)}

	lots := aggregate.GroupByLot(in.Assessments, in.Crosswalk)
	summary.MappableLots = len(lots)

	src := fusion.Sources{
		PriorRooms: aggregate.RoomsByLot(in.PriorAssessments, in.Crosswalk),
		Scrapes:    indexScrapes(in.Scrapes, in.Crosswalk),
		Manuals:    indexManuals(in.Manuals, in.Crosswalk),
		Unions:     indexUnions(in.Unions, in.Crosswalk),
	}
	resolver := fusion.NewResolver(src, p.logger)

	hotels := make([]models.CanonicalHotel, 0, len(lots))
	for _, lot := range lots {
		hotel := resolver.Resolve(lot)

		if hotel.CommunityDistrict == nil && p.districts != nil &&
			hotel.Latitude != nil && hotel.Longitude != nil {
			hotel.CommunityDistrict = p.districts.Lookup(*hotel.Latitude, *hotel.Longitude)
		}

		hotel.Category = classify.CategoryName(hotel.BuildingClass)
		hotel.ZoningCategory = classify.ZoningCategory(hotel.ZoningDistrict)
		hotel.Eligible = classify.Eligible(hotel.ZoningCategory, hotel.CommunityDistrict, hotel.YearBuilt)

		hotels = append(hotels, hotel)
	}

	// Overrides run after every other resolution step so a literal
	// correction always wins.
	fusion.ApplyOverrides(hotels, p.overrides, p.logger)

	// Eligibility can change when an override moves a record's district.
	for i := range hotels {
		hotels[i].Eligible = classify.Eligible(
			hotels[i].ZoningCategory, hotels[i].CommunityDistrict, hotels[i].YearBuilt)
	}

	out := make([]models.CanonicalHotel, 0, len(hotels))
	for _, h := range hotels {
		switch {
		case config.IsExcludedCategory(h.Category):
			summary.DroppedCategory++
		case !h.ManualInclude:
			summary.DroppedManual++
		case h.Latitude == nil || h.Longitude == nil:
			summary.DroppedUngeocoded++
		default:
			out = append(out, h)
		}
	}
	summary.Emitted = len(out)

	sort.Slice(out, func(i, j int) bool {
		return out[i].BBL < out[j].BBL
	})

	p.logger.WithFields(logrus.Fields{
		"assessment_rows":    summary.AssessmentRows,
		"mappable_lots":      summary.MappableLots,
		"dropped_category":   summary.DroppedCategory,
		"dropped_manual":     summary.DroppedManual,
		"dropped_ungeocoded": summary.DroppedUngeocoded,
		"emitted":            summary.Emitted,
	}).Info("Reconciliation run complete")

	return out, summary
}

// The index builders normalize each record under its mappable lot. When two
// rows land on the same lot, the first by original row order wins; that
// tie-break is explicit, not an artifact of map iteration.

func indexScrapes(records []models.ScrapeRecord, cw *identifier.Crosswalk) map[identifier.BBL]models.ScrapeRecord {
	idx := make(map[identifier.BBL]models.ScrapeRecord, len(records))
	for _, rec := range records {
		key := cw.Resolve(rec.BBL)
		if _, ok := idx[key]; !ok {
			idx[key] = rec
		}
	}
	return idx
}

func indexManuals(records []models.ManualRecord, cw *identifier.Crosswalk) map[identifier.BBL]models.ManualRecord {
	idx := make(map[identifier.BBL]models.ManualRecord, len(records))
	for _, rec := range records {
		key := cw.Resolve(rec.BBL)
		if _, ok := idx[key]; !ok {
			idx[key] = rec
		}
	}
	return idx
}

func indexUnions(records []models.UnionRecord, cw *identifier.Crosswalk) map[identifier.BBL]models.UnionRecord {
	idx := make(map[identifier.BBL]models.UnionRecord, len(records))
	for _, rec := range records {
		key := cw.Resolve(rec.BBL)
		if _, ok := idx[key]; !ok {
			idx[key] = rec
		}
	}
	return idx
}
