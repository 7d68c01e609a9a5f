package util

import (
	"golang.org/x/exp/constraints"
)

// Coerce returns value if it is within [min, max], min if it is below
// and max if it is above that range.
func Coerce[T constraints.Ordered](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// InRange reports whether value lies strictly between min and max.
// A value equal to one of the bounds is not in range.
func InRange[T constraints.Ordered](value T, min T, max T) bool {
	return value > min && value < max
}

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	if len(values) <= 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

