package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Override is one literal correction applied after all source coalescing.
// It is keyed by either a normalized BBL or the scrape source's hotel id;
// only the fields present in the entry are replaced.
type Override struct {
	BBL               string   `json:"bbl,omitempty"`
	HotelID           string   `json:"hotel_id,omitempty"`
	FinalRooms        *int     `json:"final_rooms,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	CommunityDistrict *int     `json:"community_district,omitempty"`
	Note              string   `json:"note,omitempty"`
}

// OverrideTable is the versioned correction list for known bad geocoding or
// source errors. It is static configuration: loaded once per run, applied
// in file order as the final resolution pass.
type OverrideTable struct {
	Version   string     `json:"version"`
	Overrides []Override `json:"overrides"`
}

// LoadOverrides reads an override table from a JSON file. A missing file is
// not an error: runs without corrections use an empty table.
func LoadOverrides(path string) (*OverrideTable, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &OverrideTable{}, nil
		}
		return nil, fmt.Errorf("failed to read override file: %v", err)
	}

	var table OverrideTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse override file: %v", err)
	}

	return &table, nil
}
