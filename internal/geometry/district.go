package geometry

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/sirupsen/logrus"
)

// DistrictIndex answers point-in-polygon queries against the community
// district boundary file, used to backfill a missing district from geocoded
// coordinates before eligibility is derived.
type DistrictIndex struct {
	logger   *logrus.Logger
	features []*geojson.Feature
}

// LoadDistrictIndex reads a GeoJSON FeatureCollection of community district
// boundaries. Each feature carries the district code in a "boro_cd"
// property (e.g. 104 for Manhattan CD 4).
func LoadDistrictIndex(path string, logger *logrus.Logger) (*DistrictIndex, error) {
	if logger == nil {
		logger = logrus.New()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read district boundaries: %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse district boundaries: %v", err)
	}

	idx := &DistrictIndex{logger: logger}
	for _, f := range fc.Features {
		if districtCode(f) == nil {
			logger.Warn("Skipping district feature without a boro_cd property")
			continue
		}
		idx.features = append(idx.features, f)
	}

	logger.Infof("Loaded %d community district boundaries", len(idx.features))
	return idx, nil
}

// Lookup returns the community district containing the point, or nil when
// no boundary contains it.
func (idx *DistrictIndex) Lookup(lat, lng float64) *int {
	point := orb.Point{lng, lat}
	for _, f := range idx.features {
		if !containsPoint(f.Geometry, point) {
			continue
		}
		return districtCode(f)
	}
	return nil
}

func containsPoint(g orb.Geometry, p orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, p)
	default:
		return false
	}
}

func districtCode(f *geojson.Feature) *int {
	switch v := f.Properties["boro_cd"].(type) {
	case float64:
		cd := int(v)
		return &cd
	case int:
		cd := v
		return &cd
	}
	return nil
}
