package utils

import "math"

// FormatFloat rounds f to the given number of decimal digits for reporting.
func FormatFloat(f float64, digits int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	pow := math.Pow(10, float64(digits))
	return math.Round(f*pow) / pow
}

func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
