package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

// OpenSink opens the gorm handle the batch persistence path writes through.
// It points at the same sqlite file as the raw read side.
func OpenSink(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sink database: %w", err)
	}
	return db, nil
}

// UpsertHotels writes a batch of canonical records, replacing any previous
// row for the same lot.
func UpsertHotels(tx *gorm.DB, hotels []*models.CanonicalHotel) error {
	if len(hotels) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bbl"}},
		UpdateAll: true,
	}).Create(hotels).Error
}

// ReplaceAll clears the previous canonical set and writes the new one in
// batches, all inside the caller's transaction. Records a run dropped never
// survive from an earlier run.
func ReplaceAll(tx *gorm.DB, hotels []*models.CanonicalHotel, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 100
	}
	if err := tx.Exec("DELETE FROM canonical_hotels").Error; err != nil {
		return fmt.Errorf("failed to clear previous run: %w", err)
	}
	for start := 0; start < len(hotels); start += batchSize {
		end := start + batchSize
		if end > len(hotels) {
			end = len(hotels)
		}
		if err := UpsertHotels(tx, hotels[start:end]); err != nil {
			return fmt.Errorf("failed to persist batch: %w", err)
		}
	}
	return nil
}

// ReplaceRun atomically replaces the whole canonical set with the output of
// one reconciliation run. The run either lands in full or not at all.
func ReplaceRun(db *gorm.DB, hotels []models.CanonicalHotel, batchSize int) error {
	run := make([]*models.CanonicalHotel, len(hotels))
	for i := range hotels {
		run[i] = &hotels[i]
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return ReplaceAll(tx, run, batchSize)
	})
}
