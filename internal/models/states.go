package models

import (
	"sort"
	"strings"
)

// usStates is the fixed 51-entry jurisdiction enumeration (50 states + DC)
var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

// ValidState reports whether code is one of the 50 states or DC.
// Case-insensitive, since codes arrive from free-form client input.
func ValidState(code string) bool {
	_, ok := usStates[strings.ToUpper(code)]
	return ok
}

// StateName returns the full name for a state code, or "" if unknown
func StateName(code string) string {
	return usStates[strings.ToUpper(code)]
}

// StateCodes returns all state codes in alphabetical order
func StateCodes() []string {
	codes := make([]string, 0, len(usStates))
	for code := range usStates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// StateOption is one entry of the state selector the forms render
type StateOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StateOptions returns code/name pairs in alphabetical code order
func StateOptions() []StateOption {
	codes := StateCodes()
	options := make([]StateOption, 0, len(codes))
	for _, code := range codes {
		options = append(options, StateOption{Code: code, Name: usStates[code]})
	}
	return options
}
