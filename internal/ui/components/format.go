package components

import (
	"fmt"

	"github.com/classlens/classlens/internal/derive"
)

// Percent formats an optional percentage, "n/a" when undefined.
func Percent(s derive.Stat) string {
	if !s.OK {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", s.Value)
}

// Signed formats an optional change with its sign.
func Signed(s derive.Stat) string {
	if !s.OK {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f", s.Value)
}

// Decimal formats an optional plain number with the given precision.
func Decimal(s derive.Stat, prec int) string {
	if !s.OK {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", prec, s.Value)
}

// CountBars turns group counts into bars scaled to the largest count.
func CountBars(groups []derive.GroupCount) []Bar {
	bars := make([]Bar, len(groups))
	for i, g := range groups {
		bars[i] = Bar{Label: g.Label, Value: float64(g.Count), Suffix: fmt.Sprintf("%d", g.Count)}
	}
	return bars
}
