package derive

import (
	"cmp"
	"slices"
	"strings"
)

// Direction is a sort order.
type Direction int

const (
	Descending Direction = iota
	Ascending
)

func (d Direction) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// Arrow is the header marker for the direction.
func (d Direction) Arrow() string {
	if d == Ascending {
		return "▲"
	}
	return "▼"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortState is the view-local sort key and direction.
type SortState[K comparable] struct {
	Key K
	Dir Direction
}

// Toggle applies a click on key: the active key flips direction, a new key
// starts descending.
func (s SortState[K]) Toggle(key K) SortState[K] {
	if s.Key == key {
		return SortState[K]{Key: key, Dir: s.Dir.Flip()}
	}
	return SortState[K]{Key: key, Dir: Descending}
}

// Compare orders two records ascending.
type Compare[T any] func(a, b T) int

// Numeric compares by a numeric field.
func Numeric[T any, N cmp.Ordered](get func(T) N) Compare[T] {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}

// Text compares by a string field lexicographically.
func Text[T any](get func(T) string) Compare[T] {
	return func(a, b T) int { return strings.Compare(get(a), get(b)) }
}

// Sort returns a stably sorted copy of items. Ties keep their input order in
// both directions, so sorting the same input by the same key and direction
// always gives the same result.
func Sort[T any](items []T, compare Compare[T], dir Direction) []T {
	out := slices.Clone(items)
	if compare == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if dir == Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

// Cycle returns the element after cur in items, wrapping around. An
// unknown cur yields the first element.
func Cycle[T comparable](items []T, cur T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	i := slices.Index(items, cur)
	return items[(i+1)%len(items)]
}
