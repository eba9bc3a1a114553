package derive

// Mean averages a field. ok is false for an empty input so callers can
// show a placeholder instead of dividing by zero.
func Mean[T any](items []T, get func(T) float64) (mean float64, ok bool) {
	if len(items) == 0 {
		return 0, false
	}
	var sum float64
	for _, it := range items {
		sum += get(it)
	}
	return sum / float64(len(items)), true
}

// Percent is the share of items matching pred, 0-100. ok is false for an
// empty input.
func Percent[T any](items []T, pred func(T) bool) (pct float64, ok bool) {
	if len(items) == 0 {
		return 0, false
	}
	return float64(Count(items, pred)) / float64(len(items)) * 100, true
}

// Count returns how many items match pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

// Sum totals an integer field.
func Sum[T any](items []T, get func(T) int) int {
	total := 0
	for _, it := range items {
		total += get(it)
	}
	return total
}

// Stat is an optional aggregate for display.
type Stat struct {
	Value float64
	OK    bool
}

// NewStat wraps a (value, ok) pair.
func NewStat(v float64, ok bool) Stat {
	return Stat{Value: v, OK: ok}
}

// GroupCount is a label with a count, used for bar charts.
type GroupCount struct {
	Label string
	Count int
}

// CountBy groups items by key and returns the non-zero counts following
// the label order given.
func CountBy[T any](items []T, order []string, key func(T) string) []GroupCount {
	counts := make(map[string]int, len(order))
	for _, it := range items {
		counts[key(it)]++
	}
	out := make([]GroupCount, 0, len(order))
	for _, label := range order {
		if n := counts[label]; n > 0 {
			out = append(out, GroupCount{Label: label, Count: n})
		}
	}
	return out
}
