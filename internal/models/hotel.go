package models

import (
	"strings"
	"time"

	"github.com/FurmanCenter/nyc-hotels/internal/identifier"
)

// AssessmentRecord is one hotel-class lot row from the tax-assessment extract
// for a single report year. Nullable fields use pointers; a room count of
// zero is normalized to nil at ingestion (zero means "not reported").
type AssessmentRecord struct {
	BBL               identifier.BBL
	Year              int
	BuildingClass     string
	Rooms             *int
	ZoningDistrict    string
	CommunityDistrict *int
	YearBuilt         *int
	Address           string
	// Seq is the original row order in the extract. Group representatives
	// and child lists are ordered by it so re-runs are reproducible.
	Seq int
}

// ScrapeRecord is one listing from the hotel web-scrape export.
type ScrapeRecord struct {
	BBL        identifier.BBL
	HotelID    string
	Name       string
	Rooms      *int
	ClosedFrom *time.Time
	ClosedTo   *time.Time
	Latitude   *float64
	Longitude  *float64
}

// ManualRecord is one manually researched entry. A nil Include means the
// researcher left inclusion unspecified, which defaults to included.
type ManualRecord struct {
	BBL     identifier.BBL
	Include *bool
	Rooms   *int
	Note    string
}

// UnionRecord is one row from the unionization directory, already geocoded
// by the adapter (rows that fail geocoding never reach the pipeline).
type UnionRecord struct {
	BBL       identifier.BBL
	IsUnion   bool
	Name      string
	Address   string
	Latitude  *float64
	Longitude *float64
}

// MappableLot is one aggregated assessment group: a condo parent with its
// units collapsed, or a non-condo lot standing alone.
type MappableLot struct {
	BBL               identifier.BBL
	ChildBBLs         []identifier.BBL
	UnitCount         int
	Rooms             *int
	BuildingClass     string
	ZoningDistrict    string
	CommunityDistrict *int
	YearBuilt         *int
	Address           string
	Year              int
	Seq               int
}

// CanonicalHotel is the fused record for one mappable lot, one row of the
// final deliverable set.
type CanonicalHotel struct {
	BBL               string     `gorm:"primaryKey;column:bbl" json:"bbl"`
	ChildBBLs         string     `gorm:"column:child_bbls" json:"child_bbls"`
	UnitCount         int        `gorm:"column:unit_count" json:"unit_count"`
	Name              string     `gorm:"column:name" json:"name"`
	Address           string     `gorm:"column:address" json:"address"`
	HotelID           string     `gorm:"column:hotel_id" json:"hotel_id"`
	BuildingClass     string     `gorm:"column:building_class" json:"building_class"`
	Category          string     `gorm:"column:category" json:"category"`
	FinalRooms        *int       `gorm:"column:final_rooms" json:"final_rooms"`
	IsUnion           bool       `gorm:"column:is_union" json:"is_union"`
	ManualInclude     bool       `gorm:"column:manual_include" json:"manual_include"`
	ZoningDistrict    string     `gorm:"column:zoning_district" json:"zoning_district"`
	ZoningCategory    *string    `gorm:"column:zoning_category" json:"zoning_category"`
	CommunityDistrict *int       `gorm:"column:community_district" json:"community_district"`
	YearBuilt         *int       `gorm:"column:year_built" json:"year_built"`
	Eligible          bool       `gorm:"column:eligible" json:"eligible"`
	ClosedFrom        *time.Time `gorm:"column:closed_from" json:"closed_from"`
	ClosedTo          *time.Time `gorm:"column:closed_to" json:"closed_to"`
	Latitude          *float64   `gorm:"column:latitude" json:"latitude"`
	Longitude         *float64   `gorm:"column:longitude" json:"longitude"`
}

func (CanonicalHotel) TableName() string {
	return "canonical_hotels"
}

// JoinBBLs renders a child list for display, semicolon-joined in encounter
// order.
func JoinBBLs(bbls []identifier.BBL) string {
	parts := make([]string, len(bbls))
	for i, b := range bbls {
		parts[i] = b.String()
	}
	return strings.Join(parts, ";")
}

// HotelStats summarizes the canonical set for the stats endpoint.
type HotelStats struct {
	TotalHotels    int     `json:"total_hotels"`
	TotalRooms     int     `json:"total_rooms"`
	AverageRooms   float64 `json:"average_rooms"`
	UnionHotels    int     `json:"union_hotels"`
	EligibleHotels int     `json:"eligible_hotels"`
}

// BoroughStats summarizes one borough's canonical records.
type BoroughStats struct {
	Borough        int     `json:"borough"`
	HotelCount     int     `json:"hotel_count"`
	TotalRooms     int     `json:"total_rooms"`
	AverageRooms   float64 `json:"average_rooms"`
	EligibleHotels int     `json:"eligible_hotels"`
}
