// Package classify derives categorical labels from fused lot fields. All
// functions are pure lookups over the policy tables in config.
package classify

import (
	"strings"

	"github.com/FurmanCenter/nyc-hotels/config"
)

const (
	ZoningCommercial    = "Commercial"
	ZoningResidential   = "Residential"
	ZoningManufacturing = "Manufacturing"
)

// CategoryName resolves a building-class code to its display category.
// Unknown codes fall back to the miscellaneous bucket rather than erroring.
func CategoryName(buildingClass string) string {
	code := strings.ToUpper(strings.TrimSpace(buildingClass))
	if name, ok := config.CategoryNames[code]; ok {
		return name
	}
	return config.DefaultCategory
}

// ZoningCategory derives the broad zoning category from the primary zoning
// district code. Special districts without a C/R/M prefix that are treated
// as Commercial are handled by policy table; any other code yields nil.
func ZoningCategory(zoningDistrict string) *string {
	code := strings.ToUpper(strings.TrimSpace(zoningDistrict))
	if code == "" {
		return nil
	}
	if config.CommercialSpecialDistricts[code] {
		c := ZoningCommercial
		return &c
	}
	switch code[0] {
	case 'C':
		c := ZoningCommercial
		return &c
	case 'R':
		c := ZoningResidential
		return &c
	case 'M':
		c := ZoningManufacturing
		return &c
	}
	return nil
}

// Eligible reports conversion eligibility: residentially or commercially
// zoned, inside an eligible community district, and completed strictly
// before the cutoff year. A year built of zero means unknown and never
// satisfies the cutoff.
func Eligible(zoningCategory *string, communityDistrict *int, yearBuilt *int) bool {
	if zoningCategory == nil {
		return false
	}
	if *zoningCategory != ZoningCommercial && *zoningCategory != ZoningResidential {
		return false
	}
	if communityDistrict == nil || !config.IsEligibleDistrict(*communityDistrict) {
		return false
	}
	if yearBuilt == nil || *yearBuilt == 0 {
		return false
	}
	return *yearBuilt < config.ConversionYearCutoff
}
