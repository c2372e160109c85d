package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScrape(t *testing.T) {
	content := `{"hotel_id":"scr-1","bbl":"1008760001","name":"Hotel Alpha","rooms":176,"latitude":40.75,"longitude":-73.98}
{"hotel_id":"scr-2","bbl":"3001230050","name":"Hotel Beta","rooms":0,"closed_from":"2020-04-01","closed_to":"2021-06-15"}
{"hotel_id":"scr-3","bbl":"not-a-bbl","name":"Dropped"}
not json at all
`
	path := writeFile(t, "scrape.jsonl", content)

	records, err := LoadScrape(path, logrus.New())
	require.NoError(t, err)
	require.Len(t, records, 2)

	alpha := records[0]
	assert.Equal(t, identifier.MustParse("1008760001"), alpha.BBL)
	assert.Equal(t, "scr-1", alpha.HotelID)
	require.NotNil(t, alpha.Rooms)
	assert.Equal(t, 176, *alpha.Rooms)
	require.NotNil(t, alpha.Latitude)
	assert.Equal(t, 40.75, *alpha.Latitude)

	// Zero rooms normalized to null; closure window parsed
	beta := records[1]
	assert.Nil(t, beta.Rooms)
	require.NotNil(t, beta.ClosedFrom)
	assert.Equal(t, "2020-04-01", beta.ClosedFrom.Format("2006-01-02"))
	require.NotNil(t, beta.ClosedTo)
	assert.Equal(t, "2021-06-15", beta.ClosedTo.Format("2006-01-02"))
}

func TestLoadScrape_MissingFile(t *testing.T) {
	_, err := LoadScrape(filepath.Join(t.TempDir(), "nope.jsonl"), logrus.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredSource)
}

func TestLoadManual(t *testing.T) {
	content := `bbl,include,rooms,note
1008760001,,150,confirmed with operator
2001230001,false,0,converted to offices in 2018
3004560001,yes,75,
bad-bbl,true,10,dropped row
`
	path := writeFile(t, "manual.csv", content)

	records, err := LoadManual(path, logrus.New())
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Empty include cell stays unspecified
	assert.Nil(t, records[0].Include)
	require.NotNil(t, records[0].Rooms)
	assert.Equal(t, 150, *records[0].Rooms)
	assert.Equal(t, "confirmed with operator", records[0].Note)

	// Explicit exclusion, zero rooms normalized to null
	require.NotNil(t, records[1].Include)
	assert.False(t, *records[1].Include)
	assert.Nil(t, records[1].Rooms)

	require.NotNil(t, records[2].Include)
	assert.True(t, *records[2].Include)
}

func TestLoadUnion_NoGeocoder(t *testing.T) {
	content := `bbl,name,address,is_union
1008760001,Hotel Alpha,123 West 44th Street,true
3001230050,Hotel Beta,456 Fulton Street,false
`
	path := writeFile(t, "union.csv", content)

	// A nil geocoder skips address resolution entirely
	records, err := LoadUnion(path, nil, logrus.New())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, records[0].IsUnion)
	assert.Equal(t, "Hotel Alpha", records[0].Name)
	assert.False(t, records[1].IsUnion)
	assert.Nil(t, records[0].Latitude)
}
