package orders

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustDate(t *testing.T) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", "2026-01-15")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

func TestNextQuantity(t *testing.T) {
	assert.Equal(t, 1.0, NextQuantity(0, 1))
	assert.Equal(t, 1.5, NextQuantity(2, -0.5))
	assert.Equal(t, 0.0, NextQuantity(0.5, -1), "never goes below zero")
	assert.Equal(t, 2.5, NextQuantity(2.4, 0.1))
}

func TestParseQuantityInput(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"2.5", 2.5},
		{" 3 ", 3},
		{"0.25", 0.3}, // snapped to 0.1 kg step
		{"-4", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseQuantityInput(tt.in), "input %q", tt.in)
	}
}

func TestSelectedCount(t *testing.T) {
	quantities := map[string]float64{
		"VEG_TOMATO": 2,
		"VEG_LEMON":  0,
		"HRB_MINT":   0.5,
	}
	assert.Equal(t, 2, SelectedCount(quantities))
}

func TestMakeOrderRef(t *testing.T) {
	ref := MakeOrderRef(mustDate(t))
	assert.True(t, strings.HasPrefix(ref, "ORD-260115-"), ref)
	assert.Len(t, ref, len("ORD-260115-")+5)
}
