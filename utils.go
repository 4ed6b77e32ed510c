package sparse

import (
	"math"

	"golang.org/x/exp/constraints"
)

// extend grows s with zero values to at least n entries.
func extend[T any](s []T, n int) []T {
	if len(s) >= n {
		return s
	}
	return append(s, make([]T, n-len(s))...)
}

// saturatingProduct multiplies two counts, clamping at limit.
func saturatingProduct[T constraints.Integer](a, b, limit T) T {
	if float64(a)*float64(b) >= float64(limit) {
		return limit
	}
	return a * b
}

func markowitzProduct(rows, cols int) int {
	return saturatingProduct(rows, cols, math.MaxInt32)
}
