package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/classlens/classlens/internal/ui/layout"
)

// Screen is one routable view of the terminal UI.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between the header and the footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen supply its own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// HeaderProvider lets a screen add chips to the right side of the header.
type HeaderProvider interface {
	HeaderChips() []string
}
