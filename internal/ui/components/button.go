package components

import (
	"github.com/classlens/classlens/internal/ui/theme"
)

// Button is a focusable label. Pressing it is handled by the owning
// screen.
type Button struct {
	Label  string
	Active bool
}

func NewButton(label string) Button {
	return Button{Label: label}
}

func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
