package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	SidebarWidth = 24

	CompactWidthThreshold = 110
)

// AppName is shown at the left of the header.
const AppName = "ClassLens"

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether the sidebar should collapse.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" notice.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small\n\nResize to at least %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the title bar. Chips describe the active filters
// and are dropped from the right when they do not fit.
func RenderHeader(title string, chips []string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" " + AppName)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	innerWidth := max(width-4, 0)
	room := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - 4

	var rendered []string
	used := 0
	for _, c := range chips {
		chip := theme.Chip.Render(c)
		w := lipgloss.Width(chip) + 1
		if used+w > room {
			break
		}
		rendered = append(rendered, chip)
		used += w
	}
	right := strings.Join(rendered, " ")

	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(center)-lipgloss.Width(right), 2)
	leftGap := gap / 2
	if right == "" {
		leftGap = max((innerWidth-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	}
	rightGap := max(gap-leftGap, 1)
	if right == "" {
		rightGap = 0
	}

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFooter renders the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(" " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer into a full-screen frame.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return header + "\n" + body + "\n" + footer
}

// ContentHeight is what remains for a screen once the header and footer
// are drawn.
func ContentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}
