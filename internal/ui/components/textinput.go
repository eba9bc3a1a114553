package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and the app styling.
type TextInput struct {
	Label string
	Model textinput.Model
}

// NewTextInput creates a blurred input. Secret inputs mask their value.
func NewTextInput(label, placeholder string, secret bool, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	if limit > 0 {
		ti.CharLimit = limit
	}
	return TextInput{Label: label, Model: ti}
}

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }

func (t *TextInput) Blur() { t.Model.Blur() }

func (t TextInput) Focused() bool { return t.Model.Focused() }

func (t TextInput) Value() string { return t.Model.Value() }

func (t *TextInput) SetValue(s string) { t.Model.SetValue(s) }

func (t *TextInput) Reset() { t.Model.Reset() }

// Update forwards the message to the underlying model. Unfocused inputs
// ignore it.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label above a bordered field of the given width.
func (t TextInput) View(width int) string {
	t.Model.SetWidth(max(width-4, 1))
	border := theme.Border
	if t.Model.Focused() {
		border = theme.Primary
	}
	field := lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(t.Model.View())
	if t.Label == "" {
		return field
	}
	return theme.Subtitle.Render(t.Label) + "\n" + field
}
