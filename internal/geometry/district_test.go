package geometry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const districtsJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"boro_cd": 105},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[-74.00, 40.74], [-73.97, 40.74], [-73.97, 40.77], [-74.00, 40.77], [-74.00, 40.74]]]
			}
		},
		{
			"type": "Feature",
			"properties": {"boro_cd": 302},
			"geometry": {
				"type": "MultiPolygon",
				"coordinates": [[[[-73.99, 40.68], [-73.97, 40.68], [-73.97, 40.70], [-73.99, 40.70], [-73.99, 40.68]]]]
			}
		},
		{
			"type": "Feature",
			"properties": {},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[0, 0], [1, 0], [1, 1], [0, 1], [0, 0]]]
			}
		}
	]
}`

func loadTestIndex(t *testing.T) *DistrictIndex {
	t.Helper()
	path := filepath.Join(t.TempDir(), "districts.geojson")
	require.NoError(t, os.WriteFile(path, []byte(districtsJSON), 0644))

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	idx, err := LoadDistrictIndex(path, logger)
	require.NoError(t, err)
	return idx
}

func TestDistrictIndex_Lookup(t *testing.T) {
	idx := loadTestIndex(t)

	// Inside the Manhattan polygon
	cd := idx.Lookup(40.755, -73.985)
	require.NotNil(t, cd)
	assert.Equal(t, 105, *cd)

	// Inside the Brooklyn multipolygon
	cd = idx.Lookup(40.69, -73.98)
	require.NotNil(t, cd)
	assert.Equal(t, 302, *cd)

	// Outside every boundary
	assert.Nil(t, idx.Lookup(41.5, -72.0))
}

func TestLoadDistrictIndex_SkipsFeaturesWithoutCode(t *testing.T) {
	idx := loadTestIndex(t)
	assert.Len(t, idx.features, 2)
}

func TestLoadDistrictIndex_MissingFile(t *testing.T) {
	_, err := LoadDistrictIndex(filepath.Join(t.TempDir(), "absent.geojson"), logrus.New())
	assert.Error(t, err)
}
