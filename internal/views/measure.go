// Package views turns the filtered tables into the data each dashboard panel displays.
package views

import (
	"encoding/json"
	"math"
	"strconv"
)

// Measure is a float that may be missing. It encodes as JSON null when missing.
type Measure struct {
	Value float64
	Valid bool
}

func measureOf(v float64) Measure {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Measure{}
	}
	return Measure{Value: v, Valid: true}
}

// String formats the value with up to two decimals, "NaN" when missing
func (m Measure) String() string {
	if !m.Valid {
		return "NaN"
	}
	s := strconv.FormatFloat(m.Value, 'f', 2, 64)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	return trimDot(s)
}

func trimDot(s string) string {
	if len(s) > 0 && s[len(s)-1] == '.' {
		return s[:len(s)-1]
	}
	return s
}

func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}
