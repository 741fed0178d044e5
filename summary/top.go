package summary

import (
	"cmp"
	"slices"
)

// Top returns up to n items with the highest counts. Items with equal counts keep their order.
func Top[T any](items []T, n int, count func(T) int) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(count(b), count(a))
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
