package orders

import (
	"math"
	"strconv"
	"strings"
)

// Order quantities are entered in 0.1 kg steps.
const quantityPrecision = 10

func roundQty(v float64) float64 {
	return math.Round(v*quantityPrecision) / quantityPrecision
}

// NextQuantity applies a +/- step to the current quantity, floored at zero.
func NextQuantity(current, delta float64) float64 {
	return math.Max(0, roundQty(current+delta))
}

// ParseQuantityInput parses free-text quantity input. Unparseable or negative
// input yields zero rather than an error; the ordering screen treats it as
// "not selected".
func ParseQuantityInput(value string) float64 {
	num, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(num) || num < 0 {
		return 0
	}
	return roundQty(num)
}

// SelectedCount counts items with a positive quantity.
func SelectedCount(quantities map[string]float64) int {
	count := 0
	for _, q := range quantities {
		if q > 0 {
			count++
		}
	}
	return count
}
