// Package core holds small numeric helpers shared by the contour and peak
// packages.
package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampInt limits an index to the inclusive range [lo, hi].
func ClampInt(value, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}

	return max(lo, min(hi, value))
}

// RoundIndex rounds a fractional grid coordinate to the nearest index,
// resolving exact halves to the even neighbour.
func RoundIndex(x float64) int {
	return int(math.RoundToEven(x))
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
