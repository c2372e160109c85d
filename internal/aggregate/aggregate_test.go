package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

func intPtr(v int) *int { return &v }

func rec(bbl string, rooms *int, seq int) models.AssessmentRecord {
	return models.AssessmentRecord{
		BBL:           identifier.MustParse(bbl),
		Year:          2022,
		BuildingClass: "H2",
		Rooms:         rooms,
		Seq:           seq,
	}
}

func TestGroupByLot_DistinctRoomCounts(t *testing.T) {
	cw := identifier.NewCrosswalk(2022)
	// Parent P with two units both reporting the building-wide total
	require.NoError(t, cw.Add(identifier.MustParse("1000017501"), identifier.MustParse("1000010001")))
	require.NoError(t, cw.Add(identifier.MustParse("1000017502"), identifier.MustParse("1000010001")))
	// Parent Q with two units reporting different counts
	require.NoError(t, cw.Add(identifier.MustParse("1000027501"), identifier.MustParse("1000020001")))
	require.NoError(t, cw.Add(identifier.MustParse("1000027502"), identifier.MustParse("1000020001")))

	lots := GroupByLot([]models.AssessmentRecord{
		rec("1000017501", intPtr(50), 0),
		rec("1000017502", intPtr(50), 1),
		rec("1000027501", intPtr(80), 2),
		rec("1000027502", intPtr(120), 3),
	}, cw)

	require.Len(t, lots, 2)

	// Identical counts within a group are counted once
	p := lots[0]
	assert.Equal(t, identifier.BBL("1000010001"), p.BBL)
	require.NotNil(t, p.Rooms)
	assert.Equal(t, 50, *p.Rooms)
	assert.Equal(t, 2, p.UnitCount)

	// Distinct counts sum
	q := lots[1]
	assert.Equal(t, identifier.BBL("1000020001"), q.BBL)
	require.NotNil(t, q.Rooms)
	assert.Equal(t, 200, *q.Rooms)
}

func TestGroupByLot_StandaloneLot(t *testing.T) {
	cw := identifier.NewCrosswalk(2022)

	lots := GroupByLot([]models.AssessmentRecord{
		rec("2000050001", intPtr(90), 0),
	}, cw)

	require.Len(t, lots, 1)
	assert.Equal(t, identifier.BBL("2000050001"), lots[0].BBL)
	assert.Equal(t, 1, lots[0].UnitCount)
	require.NotNil(t, lots[0].Rooms)
	assert.Equal(t, 90, *lots[0].Rooms)
	assert.Equal(t, []identifier.BBL{identifier.MustParse("2000050001")}, lots[0].ChildBBLs)
}

func TestGroupByLot_AllRoomsUnknown(t *testing.T) {
	cw := identifier.NewCrosswalk(2022)
	require.NoError(t, cw.Add(identifier.MustParse("1000037501"), identifier.MustParse("1000030001")))
	require.NoError(t, cw.Add(identifier.MustParse("1000037502"), identifier.MustParse("1000030001")))

	lots := GroupByLot([]models.AssessmentRecord{
		rec("1000037501", nil, 0),
		rec("1000037502", nil, 1),
	}, cw)

	require.Len(t, lots, 1)
	assert.Nil(t, lots[0].Rooms)
	assert.Equal(t, 2, lots[0].UnitCount)
}

func TestGroupByLot_RepresentativeByRowOrder(t *testing.T) {
	cw := identifier.NewCrosswalk(2022)
	require.NoError(t, cw.Add(identifier.MustParse("1000047501"), identifier.MustParse("1000040001")))
	require.NoError(t, cw.Add(identifier.MustParse("1000047502"), identifier.MustParse("1000040001")))

	first := rec("1000047502", intPtr(10), 3)
	first.BuildingClass = "H3"
	first.Address = "100 First Ave"
	second := rec("1000047501", intPtr(20), 7)
	second.BuildingClass = "H4"
	second.Address = "200 Second Ave"

	// Input order deliberately reversed: the ordinal decides, not slice order
	lots := GroupByLot([]models.AssessmentRecord{second, first}, cw)

	require.Len(t, lots, 1)
	assert.Equal(t, "H3", lots[0].BuildingClass)
	assert.Equal(t, "100 First Ave", lots[0].Address)
	assert.Equal(t, []identifier.BBL{
		identifier.MustParse("1000047502"),
		identifier.MustParse("1000047501"),
	}, lots[0].ChildBBLs)
}

func TestRoomsByLot(t *testing.T) {
	cw := identifier.NewCrosswalk(2021)
	require.NoError(t, cw.Add(identifier.MustParse("1000057501"), identifier.MustParse("1000050001")))

	rooms := RoomsByLot([]models.AssessmentRecord{
		rec("1000057501", intPtr(150), 0),
		rec("3000990001", nil, 1),
	}, cw)

	require.NotNil(t, rooms[identifier.MustParse("1000050001")])
	assert.Equal(t, 150, *rooms[identifier.MustParse("1000050001")])
	assert.Nil(t, rooms[identifier.MustParse("3000990001")])
}
