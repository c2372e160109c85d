package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

func intPtr(v int) *int { return &v }

func newTestDatabase(t *testing.T) (*Database, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hotels.db")
	db, err := NewDatabase(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())
	return db, path
}

func TestGetAssessments(t *testing.T) {
	db, _ := newTestDatabase(t)

	insert := `
		INSERT INTO assessments
			(bbl, year, building_class, rooms, zoning_district, community_district, year_built, address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	// Zero rooms must come back as null
	_, err := db.GetDB().Exec(insert, "1008760001", 2022, "H2", 0, "C5-3", 105, 1928, "123 W 44th St")
	require.NoError(t, err)
	_, err = db.GetDB().Exec(insert, "3001230050", 2022, "H3", 220, "C6-4", 302, 1965, "456 Fulton St")
	require.NoError(t, err)
	// Wrong year and non-hotel class are filtered out
	_, err = db.GetDB().Exec(insert, "1008760001", 2021, "H2", 150, "C5-3", 105, 1928, "123 W 44th St")
	require.NoError(t, err)
	_, err = db.GetDB().Exec(insert, "4005550001", 2022, "D4", 0, "R8", 401, 1950, "789 Main St")
	require.NoError(t, err)
	// Malformed identifier is dropped with a warning, not fatal
	_, err = db.GetDB().Exec(insert, "junk", 2022, "H1", 75, "C5-3", 105, 1920, "1 Bad Row")
	require.NoError(t, err)

	records, err := db.GetAssessments(2022)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, identifier.MustParse("1008760001"), first.BBL)
	assert.Equal(t, "H2", first.BuildingClass)
	assert.Nil(t, first.Rooms)
	require.NotNil(t, first.CommunityDistrict)
	assert.Equal(t, 105, *first.CommunityDistrict)
	assert.Equal(t, 0, first.Seq)

	second := records[1]
	require.NotNil(t, second.Rooms)
	assert.Equal(t, 220, *second.Rooms)
	assert.Equal(t, 1, second.Seq)
}

func TestGetCrosswalk(t *testing.T) {
	db, _ := newTestDatabase(t)

	insert := `INSERT INTO condo_units (child_bbl, parent_bbl, year) VALUES (?, ?, ?)`
	_, err := db.GetDB().Exec(insert, "1008767501", "1008760001", 2022)
	require.NoError(t, err)
	_, err = db.GetDB().Exec(insert, "1008767502", "1008760001", 2022)
	require.NoError(t, err)

	cw, err := db.GetCrosswalk(2022)
	require.NoError(t, err)
	assert.Equal(t, 2, cw.Len())
	assert.Equal(t, identifier.MustParse("1008760001"), cw.Resolve(identifier.MustParse("1008767501")))
}

func TestReplaceRunAndReadBack(t *testing.T) {
	db, path := newTestDatabase(t)

	sink, err := OpenSink(path)
	require.NoError(t, err)

	lat, lng := 40.75, -73.98
	hotels := []models.CanonicalHotel{
		{
			BBL:           "1008760001",
			ChildBBLs:     "1008767501;1008767502",
			UnitCount:     2,
			Name:          "Hotel Alpha",
			Category:      "Full Service Hotel",
			BuildingClass: "H2",
			FinalRooms:    intPtr(176),
			IsUnion:       true,
			ManualInclude: true,
			Eligible:      true,
			Latitude:      &lat,
			Longitude:     &lng,
		},
		{
			BBL:           "3001230050",
			ChildBBLs:     "3001230050",
			UnitCount:     1,
			Name:          "Hotel Beta",
			Category:      "Motel",
			BuildingClass: "H4",
			FinalRooms:    intPtr(40),
			ManualInclude: true,
		},
	}

	require.NoError(t, ReplaceRun(sink, hotels, 1))

	got, err := db.GetCanonicalHotels(0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1008760001", got[0].BBL)
	require.NotNil(t, got[0].FinalRooms)
	assert.Equal(t, 176, *got[0].FinalRooms)
	assert.True(t, got[0].IsUnion)

	// Borough filter
	brooklyn, err := db.GetCanonicalHotels(3)
	require.NoError(t, err)
	require.Len(t, brooklyn, 1)
	assert.Equal(t, "3001230050", brooklyn[0].BBL)

	// A second run replaces the previous set outright
	require.NoError(t, ReplaceRun(sink, hotels[:1], 10))
	got, err = db.GetCanonicalHotels(0)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	stats, err := db.GetHotelStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalHotels)
	assert.Equal(t, 176, stats.TotalRooms)
	assert.Equal(t, 1, stats.UnionHotels)
	assert.Equal(t, 1, stats.EligibleHotels)

	boroughStats, err := db.GetBoroughStats(1)
	require.NoError(t, err)
	assert.Equal(t, 1, boroughStats.HotelCount)
	assert.Equal(t, 176, boroughStats.TotalRooms)
}

func TestReplaceAllDropsStaleRows(t *testing.T) {
	db, path := newTestDatabase(t)

	sink, err := OpenSink(path)
	require.NoError(t, err)

	runA := []*models.CanonicalHotel{
		{BBL: "1000010001", Name: "Hotel Alpha", ManualInclude: true},
		{BBL: "1000020001", Name: "Hotel Beta", ManualInclude: true},
	}
	require.NoError(t, sink.Transaction(func(tx *gorm.DB) error {
		return ReplaceAll(tx, runA, 1)
	}))

	// The newer run no longer includes Hotel Beta; it must not survive.
	runB := []*models.CanonicalHotel{
		{BBL: "1000010001", Name: "Hotel Alpha", ManualInclude: true},
	}
	require.NoError(t, sink.Transaction(func(tx *gorm.DB) error {
		return ReplaceAll(tx, runB, 10)
	}))

	got, err := db.GetCanonicalHotels(0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1000010001", got[0].BBL)
}
