package sources

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

// scrapeRow matches one line of the scraper's JSON-lines export.
type scrapeRow struct {
	HotelID    string   `json:"hotel_id"`
	BBL        string   `json:"bbl"`
	Name       string   `json:"name"`
	Rooms      *int     `json:"rooms"`
	ClosedFrom string   `json:"closed_from"`
	ClosedTo   string   `json:"closed_to"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// LoadScrape reads the hotel-listing scrape export. Rows with malformed
// identifiers are dropped with a warning; an unreadable file is fatal.
func LoadScrape(path string, logger *logrus.Logger) ([]models.ScrapeRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: scrape export %s: %v", ErrMissingRequiredSource, path, err)
	}
	defer file.Close()

	var records []models.ScrapeRecord
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var row scrapeRow
		if err := json.Unmarshal(raw, &row); err != nil {
			logger.WithError(err).WithField("line", line).Warn("Skipping unparseable scrape row")
			continue
		}

		bbl, err := identifier.Parse(row.BBL)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"line":     line,
				"hotel_id": row.HotelID,
			}).Warn("Skipping scrape row with malformed identifier")
			continue
		}

		records = append(records, models.ScrapeRecord{
			BBL:        bbl,
			HotelID:    row.HotelID,
			Name:       row.Name,
			Rooms:      normalizeRooms(row.Rooms),
			ClosedFrom: parseDate(row.ClosedFrom),
			ClosedTo:   parseDate(row.ClosedTo),
			Latitude:   row.Latitude,
			Longitude:  row.Longitude,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scrape export: %v", err)
	}

	logger.Infof("Loaded %d scraped hotels from %s", len(records), path)
	return records, nil
}

func normalizeRooms(v *int) *int {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
