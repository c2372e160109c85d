package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

// LoadManual reads the manually researched entries. Expected columns:
// bbl, include, rooms, note. An empty include cell means the researcher
// left inclusion unspecified (the fusion default, included, applies).
func LoadManual(path string, logger *logrus.Logger) ([]models.ManualRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: manual research %s: %v", ErrMissingRequiredSource, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read manual research header: %v", err)
	}
	cols := columnIndex(header)

	var records []models.ManualRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read manual research row: %v", err)
		}
		line++

		bbl, err := identifier.Parse(field(row, cols, "bbl"))
		if err != nil {
			logger.WithError(err).WithField("line", line).Warn("Skipping manual row with malformed identifier")
			continue
		}

		records = append(records, models.ManualRecord{
			BBL:     bbl,
			Include: parseBoolPtr(field(row, cols, "include")),
			Rooms:   normalizeRooms(parseIntPtr(field(row, cols, "rooms"))),
			Note:    field(row, cols, "note"),
		})
	}

	logger.Infof("Loaded %d manual research entries from %s", len(records), path)
	return records, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseBoolPtr(s string) *bool {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1":
		v := true
		return &v
	case "false", "no", "n", "0":
		v := false
		return &v
	}
	return nil
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
