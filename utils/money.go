package utils

import "math"

// Round2 rounds x to 2 decimal places (banking-style simple round).
// All stored money values carry 2-digit scale.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
