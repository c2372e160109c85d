// Package fusion coalesces one canonical value per field from the competing
// sources for a mappable lot, then applies the literal override table as the
// final pass.
package fusion

import (
	"github.com/sirupsen/logrus"

	"github.com/FurmanCenter/nyc-hotels/config"
	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

// Candidate is one source's offer of a room count. Precedence is the order
// candidates appear in the chain, never anything implicit.
type Candidate struct {
	Source string
	Value  *int
}

// NormalizeRooms maps a zero room count to nil. No source can report a
// genuine zero-room hotel, so zero means "not reported". Idempotent.
func NormalizeRooms(v *int) *int {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

// Coalesce returns the first non-null normalized candidate and the name of
// the source that supplied it. All candidates null yields (nil, "").
func Coalesce(candidates []Candidate) (*int, string) {
	for _, c := range candidates {
		if v := NormalizeRooms(c.Value); v != nil {
			return v, c.Source
		}
	}
	return nil, ""
}

// Sources holds the per-lot lookups the resolver coalesces over, all keyed
// by mappable (parent) lot.
type Sources struct {
	PriorRooms map[identifier.BBL]*int
	Scrapes    map[identifier.BBL]models.ScrapeRecord
	Manuals    map[identifier.BBL]models.ManualRecord
	Unions     map[identifier.BBL]models.UnionRecord
}

type Resolver struct {
	src    Sources
	logger *logrus.Logger
}

func NewResolver(src Sources, logger *logrus.Logger) *Resolver {
	if logger == nil {
		logger = logrus.New()
	}
	return &Resolver{src: src, logger: logger}
}

// Resolve fuses one aggregated lot into a canonical record. Fusion cannot
// fail: every field lands on either a source value or its declared default.
func (r *Resolver) Resolve(lot models.MappableLot) models.CanonicalHotel {
	scrape, hasScrape := r.src.Scrapes[lot.BBL]
	manual, hasManual := r.src.Manuals[lot.BBL]
	union, hasUnion := r.src.Unions[lot.BBL]

	chain := []Candidate{
		{Source: "assessment", Value: lot.Rooms},
		{Source: "prior_assessment", Value: r.src.PriorRooms[lot.BBL]},
	}
	if hasScrape {
		chain = append(chain, Candidate{Source: "scrape", Value: scrape.Rooms})
	}
	if hasManual {
		chain = append(chain, Candidate{Source: "manual", Value: manual.Rooms})
	}

	rooms, source := Coalesce(chain)
	if rooms != nil {
		r.logger.WithFields(logrus.Fields{
			"bbl":    lot.BBL.String(),
			"rooms":  *rooms,
			"source": source,
		}).Debug("Fused room count")
	}

	hotel := models.CanonicalHotel{
		BBL:               lot.BBL.String(),
		ChildBBLs:         models.JoinBBLs(lot.ChildBBLs),
		UnitCount:         lot.UnitCount,
		Address:           lot.Address,
		BuildingClass:     lot.BuildingClass,
		FinalRooms:        rooms,
		ZoningDistrict:    lot.ZoningDistrict,
		CommunityDistrict: lot.CommunityDistrict,
		YearBuilt:         normalizeYear(lot.YearBuilt),
		ManualInclude:     true,
	}

	if hasScrape {
		hotel.HotelID = scrape.HotelID
		hotel.Name = scrape.Name
		hotel.ClosedFrom = scrape.ClosedFrom
		hotel.ClosedTo = scrape.ClosedTo
		hotel.Latitude = scrape.Latitude
		hotel.Longitude = scrape.Longitude
	}
	if hasUnion {
		hotel.IsUnion = union.IsUnion
		if hotel.Name == "" {
			hotel.Name = union.Name
		}
		if hotel.Latitude == nil || hotel.Longitude == nil {
			hotel.Latitude = union.Latitude
			hotel.Longitude = union.Longitude
		}
	}
	if hasManual && manual.Include != nil {
		hotel.ManualInclude = *manual.Include
	}

	return hotel
}

// normalizeYear treats a zero year built as unknown, mirroring the room
// count sentinel rule.
func normalizeYear(v *int) *int {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

// ApplyOverrides applies the correction table to resolved records, in file
// order, by exact BBL or hotel-id match. Overrides run after all
// coalescing, so they win regardless of source precedence. An override
// matching no record is logged and skipped: a stale correction must not
// block the run.
func ApplyOverrides(hotels []models.CanonicalHotel, table *config.OverrideTable, logger *logrus.Logger) {
	if table == nil || len(table.Overrides) == 0 {
		return
	}
	if logger == nil {
		logger = logrus.New()
	}

	byBBL := make(map[string]int, len(hotels))
	byHotelID := make(map[string]int)
	for i, h := range hotels {
		byBBL[h.BBL] = i
		if h.HotelID != "" {
			byHotelID[h.HotelID] = i
		}
	}

	for _, ov := range table.Overrides {
		// BBL match first; fall back to hotel id when the BBL misses.
		idx := -1
		if ov.BBL != "" {
			if i, ok := byBBL[ov.BBL]; ok {
				idx = i
			}
		}
		if idx < 0 && ov.HotelID != "" {
			if i, ok := byHotelID[ov.HotelID]; ok {
				idx = i
			}
		}
		if idx < 0 {
			logger.WithFields(logrus.Fields{
				"bbl":      ov.BBL,
				"hotel_id": ov.HotelID,
				"note":     ov.Note,
			}).Warn("Override key matches no record")
			continue
		}

		h := &hotels[idx]
		if ov.FinalRooms != nil {
			h.FinalRooms = NormalizeRooms(ov.FinalRooms)
		}
		if ov.Latitude != nil {
			h.Latitude = ov.Latitude
		}
		if ov.Longitude != nil {
			h.Longitude = ov.Longitude
		}
		if ov.CommunityDistrict != nil {
			h.CommunityDistrict = ov.CommunityDistrict
		}
	}
}
