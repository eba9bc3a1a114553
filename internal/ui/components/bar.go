package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/ui/theme"
)

// Bar is one labelled horizontal bar.
type Bar struct {
	Label string
	Value float64
	// Suffix replaces the default percentage readout when set.
	Suffix string
	Color  color.Color
}

// BarChart renders bars scaled against Max.
type BarChart struct {
	Title      string
	Bars       []Bar
	Max        float64
	LabelWidth int
}

// View renders one row per bar.
func (c BarChart) View(width int) string {
	maxV := c.Max
	if maxV <= 0 {
		for _, b := range c.Bars {
			maxV = max(maxV, b.Value)
		}
	}
	labelW := c.LabelWidth
	if labelW == 0 {
		for _, b := range c.Bars {
			labelW = max(labelW, lipgloss.Width(b.Label))
		}
		labelW = min(labelW, width/3)
	}

	var rows []string
	if c.Title != "" {
		rows = append(rows, theme.Title.Render(c.Title))
	}
	for _, b := range c.Bars {
		suffix := b.Suffix
		if suffix == "" {
			suffix = fmt.Sprintf("%3.0f%%", b.Value)
		}
		label := b.Label
		if lipgloss.Width(label) > labelW {
			label = truncate(label, labelW)
		}
		barW := max(width-labelW-lipgloss.Width(suffix)-4, 4)
		rows = append(rows, fmt.Sprintf("%-*s  %s  %s",
			labelW, label,
			renderBar(b.Value, maxV, barW, b.Color),
			theme.Subtitle.Render(suffix)))
	}
	return strings.Join(rows, "\n")
}

func renderBar(value, maxV float64, width int, c color.Color) string {
	if c == nil {
		c = theme.Secondary
	}
	filled := 0
	if maxV > 0 {
		filled = int(float64(width) * value / maxV)
	}
	filled = min(max(filled, 0), width)
	return lipgloss.NewStyle().Background(c).Render(strings.Repeat(" ", filled)) +
		theme.BarEmpty.Render(strings.Repeat(" ", width-filled))
}
