package components

import (
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/ui/layout"
)

// SideWidth is the width of the insight column on wide terminals.
const SideWidth = 44

// Panes shows main and side next to each other when the terminal is wide.
// Narrow terminals show only one of them, picked by showSide.
func Panes(main, side func(w, h int) string, width, height int, showSide bool) string {
	clip := lipgloss.NewStyle().MaxHeight(height)
	if !layout.IsCompactWidth(width) {
		left := clip.Render(main(width-SideWidth-1, height))
		right := clip.Render(side(SideWidth, height))
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(width-SideWidth).Render(left),
			right)
	}
	if showSide {
		return clip.Render(side(width, height))
	}
	return clip.Render(main(width, height))
}
