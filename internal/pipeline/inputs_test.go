package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FurmanCenter/nyc-hotels/config"
	"github.com/FurmanCenter/nyc-hotels/internal/database"
	"github.com/FurmanCenter/nyc-hotels/internal/sources"
)

func TestLoadInputs_UnreachableAssessmentSource(t *testing.T) {
	// A database file with no tables behaves like a missing extract.
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := database.NewDatabase(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{ReportYear: 2022, PriorYear: 2021}

	_, err = LoadInputs(db, cfg, nil, logrus.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, sources.ErrMissingRequiredSource)
}
