// ABOUTME: Minimal precision formatting for scroll positions in the simulate trace
// ABOUTME: Formats float64 pairs with just enough digits to show the difference

package main

import (
	"fmt"
	"math"
	"strconv"
)

const (
	minDisplayPrecision = 2
	maxDisplayPrecision = 10
)

// FormatMinimalPrecision returns a formatted string of curr with the minimum
// precision needed to distinguish it from prev.
func FormatMinimalPrecision(prev, curr float64) string {
	return strconv.FormatFloat(curr, 'f', neededPrecision(prev, curr), 64)
}

// FormatWithMonotonicPrecision formats curr like FormatMinimalPrecision but never
// uses fewer digits than minPrecision. It returns the precision used so a column of
// values can keep growing its precision and never shrink it.
func FormatWithMonotonicPrecision(prev, curr float64, minPrecision int) (string, int) {
	precision := min(max(minPrecision, neededPrecision(prev, curr)), maxDisplayPrecision)

	return strconv.FormatFloat(curr, 'f', precision, 64), precision
}

// neededPrecision finds the first precision where prev and curr print differently,
// plus one digit for clarity
func neededPrecision(prev, curr float64) int {
	// Handle special cases
	if math.IsNaN(prev) || math.IsNaN(curr) || math.IsInf(prev, 0) || math.IsInf(curr, 0) || prev == curr {
		return minDisplayPrecision
	}

	for precision := 1; precision <= maxDisplayPrecision; precision++ {
		format := fmt.Sprintf("%%.%df", precision)
		if fmt.Sprintf(format, prev) != fmt.Sprintf(format, curr) {
			return max(min(precision+1, maxDisplayPrecision), minDisplayPrecision)
		}
	}

	// Fallback to max precision if still can't distinguish
	return maxDisplayPrecision
}
