package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"integer", 3, 3},
		{"two decimals", 3.45, 3.45},
		{"truncates third decimal down", 1.114, 1.11},
		{"rounds third decimal up", 1.115, 1.12},
		{"negative half away from zero", -1.115, -1.12},
		{"large value", 12345.6789, 12345.68},
		{"nan coerced to zero", math.NaN(), 0},
		{"inf coerced to zero", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round2(tt.in))
		})
	}
}

func TestRound2_Closure(t *testing.T) {
	for _, v := range []float64{0.1 + 0.2, 1.005, -2.675, 99999.999, 3.5} {
		once := Round2(v)
		assert.Equal(t, once, Round2(once), "Round2 must be idempotent for %v", v)
	}
}

func TestSafeNumber(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		fallback float64
		want     float64
	}{
		{"float passes through", 2.5, 0, 2.5},
		{"int converts", 7, 0, 7},
		{"int64 converts", int64(9), 0, 9},
		{"numeric string", "3.25", 0, 3.25},
		{"padded string", "  4 ", 0, 4},
		{"json number", json.Number("1.5"), 0, 1.5},
		{"nil falls back", nil, 5, 5},
		{"garbage string falls back", "12kg", 1, 1},
		{"empty string falls back", "", 2, 2},
		{"nan falls back", math.NaN(), 3, 3},
		{"inf falls back", math.Inf(-1), 4, 4},
		{"bool true", true, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeNumber(tt.in, tt.fallback))
		})
	}
}

func TestClamp0(t *testing.T) {
	assert.Equal(t, 0.0, Clamp0(-3.1))
	assert.Equal(t, 0.0, Clamp0(0))
	assert.Equal(t, 2.4, Clamp0(2.4))
}
