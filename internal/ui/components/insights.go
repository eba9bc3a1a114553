package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/insight"
	"github.com/classlens/classlens/internal/ui/theme"
)

var kindStyle = map[insight.Kind]struct {
	icon  string
	color color.Color
}{
	insight.Critical: {"✖", theme.Error},
	insight.Warning:  {"▲", theme.Accent},
	insight.Success:  {"✔", theme.Success},
	insight.Info:     {"●", theme.Info},
}

// Insights renders the "AI Insights" panel.
func Insights(items []insight.Insight, width int) string {
	return TitledInsights("AI Insights", items, width)
}

// TitledInsights renders an insight panel under its own heading.
func TitledInsights(title string, items []insight.Insight, width int) string {
	var rows []string
	textW := max(width-6, 10)
	for _, in := range items {
		k := kindStyle[in.Kind]
		icon := lipgloss.NewStyle().Foreground(k.color).Bold(true).Render(k.icon)
		title := lipgloss.NewStyle().Foreground(k.color).Bold(true).Render(in.Title)
		text := lipgloss.NewStyle().Foreground(theme.Text).Width(textW).Render(in.Text)
		rows = append(rows, icon+" "+title+"\n"+indent(text, 2))
	}
	return Card(title, strings.Join(rows, "\n"), width)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}
