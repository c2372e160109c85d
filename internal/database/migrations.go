package database

import "fmt"

func (d *Database) RunMigrations() error {
	// Assessment extract, one row per lot per report year
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS assessments (
			bbl TEXT NOT NULL,
			year INTEGER NOT NULL,
			building_class TEXT NOT NULL,
			rooms INTEGER,
			zoning_district TEXT,
			community_district INTEGER,
			year_built INTEGER,
			address TEXT,
			PRIMARY KEY (bbl, year)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create assessments table: %v", err)
	}

	// Condo crosswalk, one row per unit per report year
	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS condo_units (
			child_bbl TEXT NOT NULL,
			parent_bbl TEXT NOT NULL,
			year INTEGER NOT NULL,
			PRIMARY KEY (child_bbl, year)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create condo_units table: %v", err)
	}

	// Reconciled output, one row per mappable lot
	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS canonical_hotels (
			bbl TEXT PRIMARY KEY,
			child_bbls TEXT,
			unit_count INTEGER,
			name TEXT,
			address TEXT,
			hotel_id TEXT,
			building_class TEXT,
			category TEXT,
			final_rooms INTEGER,
			is_union BOOLEAN DEFAULT 0,
			manual_include BOOLEAN DEFAULT 1,
			zoning_district TEXT,
			zoning_category TEXT,
			community_district INTEGER,
			year_built INTEGER,
			eligible BOOLEAN DEFAULT 0,
			closed_from TIMESTAMP,
			closed_to TIMESTAMP,
			latitude REAL,
			longitude REAL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create canonical_hotels table: %v", err)
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_canonical_hotels_coordinates
		ON canonical_hotels(latitude, longitude);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_assessments_year_class
		ON assessments(year, building_class);
	`)
	if err != nil {
		return err
	}

	return nil
}
