package components

import (
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/ui/theme"
)

// Stat is one headline number on a summary card.
type Stat struct {
	Label string
	Value string
	Note  string
}

// Card wraps content in a rounded border with an optional title line.
func Card(title, content string, width int) string {
	if title != "" {
		content = theme.Title.Render(title) + "\n" + content
	}
	return theme.Card.Width(max(width, 4)).Render(content)
}

// StatCards lays stats out side by side, sharing the width evenly.
func StatCards(stats []Stat, width int) string {
	if len(stats) == 0 {
		return ""
	}
	w := max(width/len(stats), 12)
	cards := make([]string, len(stats))
	for i, s := range stats {
		body := theme.Subtitle.Render(s.Label) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.Value)
		if s.Note != "" {
			body += "\n" + theme.Hint.Render(s.Note)
		}
		cards[i] = theme.Card.Width(w).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
