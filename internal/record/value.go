package record

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber accepts what a spreadsheet user would call a number: optional
// sign, decimals, exponent, surrounding blanks. NaN and infinities are not
// measurements and are rejected.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsNumber reports whether ParseNumber accepts s.
func IsNumber(s string) bool {
	_, ok := ParseNumber(s)
	return ok
}

// Value is a reporting result. Echoed lab text is kept verbatim and exported
// quoted; computed values are floats and exported bare.
type Value struct {
	Text     string
	Num      float64
	Computed bool
}

// TextValue wraps a verbatim result.
func TextValue(s string) Value { return Value{Text: s} }

// FloatValue wraps a computed result.
func FloatValue(f float64) Value { return Value{Num: f, Computed: true} }

// String renders the value as it appears in the upload file, unquoted.
func (v Value) String() string {
	if v.Computed {
		return FormatFloat(v.Num)
	}
	return v.Text
}

// Float returns the numeric reading of the value.
func (v Value) Float() (float64, bool) {
	if v.Computed {
		return v.Num, true
	}
	return ParseNumber(v.Text)
}

// Empty reports whether there is nothing to export.
func (v Value) Empty() bool { return !v.Computed && v.Text == "" }

// FormatFloat renders f as the shortest string that round-trips, always with
// a decimal point or exponent: 5 -> "5.0", 0.00005 -> "5e-05".
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if f != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
