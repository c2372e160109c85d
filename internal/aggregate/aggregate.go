// Package aggregate collapses per-unit assessment records into one row per
// mappable lot: a condo parent with its units merged, or a standalone lot.
package aggregate

import (
	"sort"

	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

// GroupByLot aggregates assessment records under their mappable lot.
//
// The group's room count is the sum of the DISTINCT non-null member counts:
// condo units frequently repeat the building-wide total, so two units both
// reporting 150 contribute 150, not 300. The flip side, two genuinely
// separate hotels on one lot with identical counts being merged, is accepted
// behavior.
//
// Non-room fields come from the group's representative: the member with the
// lowest original row order, an explicit tie-break so re-runs are
// reproducible. Child identifiers are listed in the same order.
func GroupByLot(records []models.AssessmentRecord, cw *identifier.Crosswalk) []models.MappableLot {
	groups := make(map[identifier.BBL][]models.AssessmentRecord)
	for _, rec := range records {
		parent := cw.Resolve(rec.BBL)
		groups[parent] = append(groups[parent], rec)
	}

	lots := make([]models.MappableLot, 0, len(groups))
	for parent, members := range groups {
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Seq < members[j].Seq
		})

		rep := members[0]
		lot := models.MappableLot{
			BBL:               parent,
			UnitCount:         len(members),
			BuildingClass:     rep.BuildingClass,
			ZoningDistrict:    rep.ZoningDistrict,
			CommunityDistrict: rep.CommunityDistrict,
			YearBuilt:         rep.YearBuilt,
			Address:           rep.Address,
			Year:              rep.Year,
			Seq:               rep.Seq,
		}

		seen := make(map[int]bool)
		total := 0
		counted := false
		for _, m := range members {
			lot.ChildBBLs = append(lot.ChildBBLs, m.BBL)
			if m.Rooms == nil || seen[*m.Rooms] {
				continue
			}
			seen[*m.Rooms] = true
			total += *m.Rooms
			counted = true
		}
		if counted {
			lot.Rooms = &total
		}

		lots = append(lots, lot)
	}

	sort.Slice(lots, func(i, j int) bool {
		return lots[i].BBL < lots[j].BBL
	})
	return lots
}

// RoomsByLot builds a lookup of aggregated room counts keyed by mappable
// lot, used to feed a prior-year assessment into the fusion chain.
func RoomsByLot(records []models.AssessmentRecord, cw *identifier.Crosswalk) map[identifier.BBL]*int {
	rooms := make(map[identifier.BBL]*int)
	for _, lot := range GroupByLot(records, cw) {
		rooms[lot.BBL] = lot.Rooms
	}
	return rooms
}
