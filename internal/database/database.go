package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// GetAssessments returns the hotel-class assessment rows for one report
// year, in extract order. Only the H building-class family is in scope;
// the extract is expected to already be filtered to it, and the query
// enforces that anyway. Room counts of zero come back as null.
func (d *Database) GetAssessments(year int) ([]models.AssessmentRecord, error) {
	query := `
        SELECT
            bbl,
            year,
            building_class,
            NULLIF(rooms, 0) as rooms,
            COALESCE(zoning_district, '') as zoning_district,
            community_district,
            year_built,
            COALESCE(address, '') as address
        FROM assessments
        WHERE year = ?
        AND building_class LIKE 'H%'
        ORDER BY rowid
    `
	rows, err := d.db.Query(query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %v", err)
	}
	defer rows.Close()

	var records []models.AssessmentRecord
	seq := 0
	for rows.Next() {
		var rec models.AssessmentRecord
		var rawBBL string
		var rooms, communityDistrict, yearBuilt sql.NullInt64

		err := rows.Scan(
			&rawBBL,
			&rec.Year,
			&rec.BuildingClass,
			&rooms,
			&rec.ZoningDistrict,
			&communityDistrict,
			&yearBuilt,
			&rec.Address,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %v", err)
		}

		bbl, err := identifier.Parse(rawBBL)
		if err != nil {
			logrus.WithError(err).WithField("bbl", rawBBL).Warn("Dropping assessment row with malformed identifier")
			continue
		}
		rec.BBL = bbl

		if rooms.Valid {
			r := int(rooms.Int64)
			rec.Rooms = &r
		}
		if communityDistrict.Valid {
			cd := int(communityDistrict.Int64)
			rec.CommunityDistrict = &cd
		}
		if yearBuilt.Valid {
			yb := int(yearBuilt.Int64)
			rec.YearBuilt = &yb
		}

		rec.Seq = seq
		seq++
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessments: %v", err)
	}

	return records, nil
}

// GetCrosswalk loads the condo unit-to-parent mapping for one report year.
// A unit appearing with two different parents is surfaced as
// identifier.ErrLookupAmbiguous, which is fatal to the run.
func (d *Database) GetCrosswalk(year int) (*identifier.Crosswalk, error) {
	rows, err := d.db.Query(`
		SELECT child_bbl, parent_bbl
		FROM condo_units
		WHERE year = ?
		ORDER BY rowid
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query condo crosswalk: %v", err)
	}
	defer rows.Close()

	cw := identifier.NewCrosswalk(year)
	for rows.Next() {
		var rawChild, rawParent string
		if err := rows.Scan(&rawChild, &rawParent); err != nil {
			return nil, fmt.Errorf("failed to scan crosswalk row: %v", err)
		}

		child, err := identifier.Parse(rawChild)
		if err != nil {
			logrus.WithError(err).WithField("bbl", rawChild).Warn("Dropping crosswalk row with malformed identifier")
			continue
		}
		parent, err := identifier.Parse(rawParent)
		if err != nil {
			logrus.WithError(err).WithField("bbl", rawParent).Warn("Dropping crosswalk row with malformed identifier")
			continue
		}

		if err := cw.Add(child, parent); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating crosswalk: %v", err)
	}

	return cw, nil
}

// GetCanonicalHotels returns the persisted canonical set ordered by BBL,
// optionally filtered to one borough.
func (d *Database) GetCanonicalHotels(borough int) ([]models.CanonicalHotel, error) {
	query := `
        SELECT
            bbl, child_bbls, unit_count, name, address, hotel_id,
            building_class, category, final_rooms, is_union, manual_include,
            zoning_district, zoning_category, community_district, year_built,
            eligible, closed_from, closed_to, latitude, longitude
        FROM canonical_hotels
        WHERE (? = 0 OR substr(bbl, 1, 1) = CAST(? AS TEXT))
        ORDER BY bbl
    `
	rows, err := d.db.Query(query, borough, borough)
	if err != nil {
		return nil, fmt.Errorf("failed to query canonical hotels: %v", err)
	}
	defer rows.Close()

	var hotels []models.CanonicalHotel
	for rows.Next() {
		var h models.CanonicalHotel
		var finalRooms, communityDistrict, yearBuilt sql.NullInt64
		var zoningCategory, closedFrom, closedTo sql.NullString
		var latitude, longitude sql.NullFloat64

		err := rows.Scan(
			&h.BBL, &h.ChildBBLs, &h.UnitCount, &h.Name, &h.Address, &h.HotelID,
			&h.BuildingClass, &h.Category, &finalRooms, &h.IsUnion, &h.ManualInclude,
			&h.ZoningDistrict, &zoningCategory, &communityDistrict, &yearBuilt,
			&h.Eligible, &closedFrom, &closedTo, &latitude, &longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan canonical hotel: %v", err)
		}

		if finalRooms.Valid {
			r := int(finalRooms.Int64)
			h.FinalRooms = &r
		}
		if communityDistrict.Valid {
			cd := int(communityDistrict.Int64)
			h.CommunityDistrict = &cd
		}
		if yearBuilt.Valid {
			yb := int(yearBuilt.Int64)
			h.YearBuilt = &yb
		}
		if zoningCategory.Valid && zoningCategory.String != "" {
			zc := zoningCategory.String
			h.ZoningCategory = &zc
		}
		if closedFrom.Valid && closedFrom.String != "" {
			if t, err := time.Parse(time.RFC3339, closedFrom.String); err == nil {
				h.ClosedFrom = &t
			}
		}
		if closedTo.Valid && closedTo.String != "" {
			if t, err := time.Parse(time.RFC3339, closedTo.String); err == nil {
				h.ClosedTo = &t
			}
		}
		if latitude.Valid {
			lat := latitude.Float64
			h.Latitude = &lat
		}
		if longitude.Valid {
			lng := longitude.Float64
			h.Longitude = &lng
		}

		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating canonical hotels: %v", err)
	}

	return hotels, nil
}

// GetHotelStats summarizes the persisted canonical set.
func (d *Database) GetHotelStats() (models.HotelStats, error) {
	query := `
        SELECT
            COUNT(*) as total_hotels,
            COALESCE(SUM(final_rooms), 0) as total_rooms,
            COALESCE(AVG(final_rooms), 0) as average_rooms,
            COALESCE(SUM(CASE WHEN is_union THEN 1 ELSE 0 END), 0) as union_hotels,
            COALESCE(SUM(CASE WHEN eligible THEN 1 ELSE 0 END), 0) as eligible_hotels
        FROM canonical_hotels
    `
	var stats models.HotelStats
	err := d.db.QueryRow(query).Scan(
		&stats.TotalHotels,
		&stats.TotalRooms,
		&stats.AverageRooms,
		&stats.UnionHotels,
		&stats.EligibleHotels,
	)
	return stats, err
}

// GetBoroughStats summarizes one borough's canonical records.
func (d *Database) GetBoroughStats(borough int) (models.BoroughStats, error) {
	query := `
        SELECT
            COUNT(*) as hotel_count,
            COALESCE(SUM(final_rooms), 0) as total_rooms,
            COALESCE(AVG(final_rooms), 0) as average_rooms,
            COALESCE(SUM(CASE WHEN eligible THEN 1 ELSE 0 END), 0) as eligible_hotels
        FROM canonical_hotels
        WHERE substr(bbl, 1, 1) = CAST(? AS TEXT)
    `
	stats := models.BoroughStats{Borough: borough}
	err := d.db.QueryRow(query, borough).Scan(
		&stats.HotelCount,
		&stats.TotalRooms,
		&stats.AverageRooms,
		&stats.EligibleHotels,
	)
	return stats, err
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}
