package mapping

import (
	"strconv"
	"strings"
)

// FormatBool renders a boolean cell the way the back office spreadsheets
// expect it.
func FormatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// ParseBool reads a boolean cell. "yes" in any casing is true; an empty
// cell, "no" and any unrecognized text are all false.
func ParseBool(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "yes")
}

// FormatFloat renders an optional coordinate cell; nil becomes empty.
func FormatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// ParseFloat reads an optional coordinate cell; empty becomes nil.
func ParseFloat(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
