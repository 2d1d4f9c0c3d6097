package collections

import (
	"cmp"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

func Contains[T comparable](elem T, elements []T) bool {
	for _, e := range elements {
		if elem == e {
			return true
		}
	}
	return false
}

// Sorted returns the elements of the set in ascending order.
func Sorted[T cmp.Ordered](set mapset.Set[T]) []T {
	if set == nil {
		return []T{}
	}

	elems := set.ToSlice()
	slices.Sort(elems)
	return elems
}

// Chunk splits elements into consecutive slices of at most size elements.
// A size of zero or less returns all elements as a single chunk.
func Chunk[T any](elements []T, size int) [][]T {
	if len(elements) == 0 {
		return nil
	}

	if size <= 0 || size >= len(elements) {
		return [][]T{elements}
	}

	chunks := make([][]T, 0, (len(elements)+size-1)/size)
	for size < len(elements) {
		elements, chunks = elements[size:], append(chunks, elements[:size:size])
	}
	return append(chunks, elements)
}
