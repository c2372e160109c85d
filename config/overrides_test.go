package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverrides(t *testing.T) {
	content := `{
		"version": "2022-06",
		"overrides": [
			{"bbl": "1008760001", "final_rooms": 176, "note": "DOF extract doubles the count"},
			{"hotel_id": "scr-17", "latitude": 40.7484, "longitude": -73.9857}
		]
	}`
	path := filepath.Join(t.TempDir(), "overrides.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, "2022-06", table.Version)
	require.Len(t, table.Overrides, 2)

	first := table.Overrides[0]
	assert.Equal(t, "1008760001", first.BBL)
	require.NotNil(t, first.FinalRooms)
	assert.Equal(t, 176, *first.FinalRooms)

	second := table.Overrides[1]
	assert.Equal(t, "scr-17", second.HotelID)
	require.NotNil(t, second.Latitude)
	assert.Equal(t, 40.7484, *second.Latitude)
}

func TestLoadOverrides_MissingFileIsEmptyTable(t *testing.T) {
	table, err := LoadOverrides(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, table.Overrides)
}

func TestLoadOverrides_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadOverrides(path)
	assert.Error(t, err)
}
