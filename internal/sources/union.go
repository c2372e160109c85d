package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/FurmanCenter/nyc-hotels/internal/geocoding"
	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

// LoadUnion reads the unionization directory and geocodes each address.
// Expected columns: bbl, name, address, is_union. Rows that fail geocoding
// are dropped here; the reconciliation core only ever sees successfully
// geocoded union rows.
func LoadUnion(path string, geocoder *geocoding.Geocoder, logger *logrus.Logger) ([]models.UnionRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: union directory %s: %v", ErrMissingRequiredSource, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read union directory header: %v", err)
	}
	cols := columnIndex(header)

	var records []models.UnionRecord
	line := 1
	dropped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read union directory row: %v", err)
		}
		line++

		bbl, err := identifier.Parse(field(row, cols, "bbl"))
		if err != nil {
			logger.WithError(err).WithField("line", line).Warn("Skipping union row with malformed identifier")
			continue
		}

		rec := models.UnionRecord{
			BBL:     bbl,
			Name:    field(row, cols, "name"),
			Address: field(row, cols, "address"),
			IsUnion: true,
		}
		if v := parseBoolPtr(field(row, cols, "is_union")); v != nil {
			rec.IsUnion = *v
		}

		if geocoder != nil && rec.Address != "" {
			lat, lng, err := geocoder.GeocodeAddress(rec.Address, bbl.Borough())
			if err != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"bbl":     bbl.String(),
					"address": rec.Address,
				}).Warn("Dropping union row that failed geocoding")
				dropped++
				continue
			}
			rec.Latitude = &lat
			rec.Longitude = &lng
		}

		records = append(records, rec)
	}

	logger.WithFields(logrus.Fields{
		"loaded":  len(records),
		"dropped": dropped,
	}).Infof("Loaded union directory from %s", path)
	return records, nil
}
