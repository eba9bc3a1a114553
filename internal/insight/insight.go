// Package insight turns derived statistics into canned teaching insights.
// Every generator is a pure function of its inputs.
package insight

import (
	"fmt"
	"strings"
)

// Kind tags how urgent an insight is.
type Kind string

const (
	Critical Kind = "critical"
	Warning  Kind = "warning"
	Success  Kind = "success"
	Info     Kind = "info"
)

// Insight is one line of generated commentary.
type Insight struct {
	Kind  Kind
	Title string
	Text  string
}

func (i Insight) String() string {
	if i.Title == "" {
		return fmt.Sprintf("[%s] %s", i.Kind, i.Text)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Kind, i.Title, i.Text)
}

// NoData is the single insight returned when a selection matches nothing.
func NoData(subject string) []Insight {
	return []Insight{{
		Kind:  Info,
		Title: "No data",
		Text:  fmt.Sprintf("No %s match the current filters. Widen the student, topic or mode selection.", subject),
	}}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func pct(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

func joinNames(names []string, limit int) string {
	if len(names) <= limit {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(names[:limit], ", "), len(names)-limit)
}
