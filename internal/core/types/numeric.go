// Package types provides common numeric utilities.
//
// All quantity and money math in the domain packages is plain float64 rounded
// to two decimals. Round2 goes through decimal.Decimal so that values like
// 1.005 round half away from zero instead of drifting on binary
// representation.
package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds to 2 decimal places, half away from zero.
// Every numeric output of the calculation modules is closed under Round2:
// Round2(Round2(x)) == Round2(x).
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// SafeNumber coerces arbitrary input to a finite float64, returning fallback
// for anything unparseable. Persisted rows come back from the data layer with
// missing or malformed numeric fields; the calculation modules coerce rather
// than reject.
func SafeNumber(v any, fallback float64) float64 {
	switch n := v.(type) {
	case nil:
		return fallback
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return fallback
		}
		return n
	case float32:
		return SafeNumber(float64(n), fallback)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		return SafeNumber(string(n), fallback)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return fallback
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return fallback
		}
		return parsed
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return fallback
	}
}

// Clamp0 floors a value at zero.
func Clamp0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
