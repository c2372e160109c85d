package config

// Policy tables for classification and conversion eligibility. These are
// fixed rule tables, not tunable configuration: they encode the Department
// of Finance building-class scheme and the eligibility terms used across
// report years.

// CategoryNames maps a building-class code to its display category. Codes
// absent from the table fall back to DefaultCategory.
var CategoryNames = map[string]string{
	"H1": "Luxury Hotel",
	"H2": "Full Service Hotel",
	"H3": "Limited Service Hotel",
	"H4": "Motel",
	"H5": "Private Club",
	"H6": "Apartment Hotel",
	"H7": "Apartment Hotel - Cooperatively Owned",
	"H8": "Dormitory",
	"H9": "Miscellaneous Hotel",
	"HB": "Boutique Hotel",
	"HH": "Hostel",
	"HR": "SRO Hotel",
	"HS": "Extended Stay Hotel",
}

const DefaultCategory = "Miscellaneous Hotel"

// ExcludedCategories are building types outside the study universe. Records
// classified into one of these are dropped by the inclusion filter.
var ExcludedCategories = map[string]bool{
	"Private Club":                          true,
	"Apartment Hotel":                       true,
	"Apartment Hotel - Cooperatively Owned": true,
	"Dormitory":                             true,
}

// CommercialSpecialDistricts are zoning codes without a C/R/M prefix that
// are treated as Commercial. Battery Park City carries its own code but is
// commercially zoned for hotel purposes.
var CommercialSpecialDistricts = map[string]bool{
	"BPC": true,
}

// ConversionYearCutoff: only buildings completed strictly before this year
// qualify for conversion eligibility.
const ConversionYearCutoff = 1961

// EligibleDistricts is the enumerated set of community districts where
// conversion eligibility can apply.
var EligibleDistricts = map[int]bool{
	101: true,
	102: true,
	103: true,
	104: true,
	105: true,
	106: true,
	107: true,
	108: true,
	109: true,
	110: true,
	111: true,
	112: true,
	301: true,
	302: true,
	401: true,
	402: true,
}

// IsExcludedCategory reports whether a category is outside the universe.
func IsExcludedCategory(category string) bool {
	return ExcludedCategories[category]
}

// IsEligibleDistrict reports whether a community district is in the
// eligibility set.
func IsEligibleDistrict(cd int) bool {
	return EligibleDistricts[cd]
}
