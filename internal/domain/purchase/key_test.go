package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveItemKey(t *testing.T) {
	lookup := map[string]string{"Tomato": "VEG_TOMATO"}

	tests := []struct {
		name   string
		code   string
		nameEN string
		want   string
	}{
		{"code wins", "VEG_LEMON", "Tomato", "VEG_LEMON"},
		{"code trimmed", "  VEG_LEMON ", "Tomato", "VEG_LEMON"},
		{"lookup by name", "", "Tomato", "VEG_TOMATO"},
		{"lookup by trimmed name", "", "  Tomato ", "VEG_TOMATO"},
		{"falls back to name", "", "Okra", "Okra"},
		{"blank code ignored", "   ", "Okra", "Okra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveItemKey(tt.code, tt.nameEN, lookup))
		})
	}
}
