package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/ui/theme"
)

// ListMode controls how items are marked.
type ListMode int

const (
	// Plain lists show only the cursor and the active item.
	Plain ListMode = iota
	// Radio lists allow one checked item.
	Radio
	// Check lists allow any number of checked items.
	Check
)

// ListItem is one row of a List.
type ListItem struct {
	Label    string
	Checked  bool
	Disabled bool
}

// List is a vertical cursor list used for the sidebar and the filter
// editor sections.
type List struct {
	Items  []ListItem
	Cursor int
	Mode   ListMode
	Focus  bool
	offset int
}

// NewList creates a list with the cursor on the first enabled item.
func NewList(mode ListMode, labels ...string) List {
	items := make([]ListItem, len(labels))
	for i, l := range labels {
		items[i] = ListItem{Label: l}
	}
	l := List{Items: items, Mode: mode}
	l.Cursor = l.next(-1, 1)
	return l
}

// next returns the first enabled index after from in direction dir, or
// the current cursor when there is none.
func (l List) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(l.Items); i += dir {
		if !l.Items[i].Disabled {
			return i
		}
	}
	if from < 0 {
		return 0
	}
	return l.Cursor
}

// Update moves the cursor. Space and enter toggle the item under the
// cursor in Radio and Check modes; the caller reads the result from
// Toggled.
func (l List) Update(msg tea.Msg) (List, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(l.Items) == 0 {
		return l, false
	}
	switch kmsg.String() {
	case "up", "k":
		l.Cursor = l.next(l.Cursor, -1)
	case "down", "j":
		l.Cursor = l.next(l.Cursor, 1)
	case "home", "g":
		l.Cursor = l.next(-1, 1)
	case "end", "G":
		l.Cursor = l.next(len(l.Items), -1)
	case "space", "enter":
		if l.Items[l.Cursor].Disabled {
			return l, false
		}
		return l, true
	}
	return l, false
}

// Current returns the label under the cursor.
func (l List) Current() string {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return ""
	}
	return l.Items[l.Cursor].Label
}

// SetChecked marks the items whose labels are in checked.
func (l *List) SetChecked(checked ...string) {
	set := make(map[string]bool, len(checked))
	for _, c := range checked {
		set[c] = true
	}
	for i := range l.Items {
		l.Items[i].Checked = set[l.Items[i].Label]
	}
}

// Checked returns the labels of checked items in list order.
func (l List) Checked() []string {
	var out []string
	for _, it := range l.Items {
		if it.Checked {
			out = append(out, it.Label)
		}
	}
	return out
}

// View renders at most height rows, scrolling to keep the cursor visible.
// active highlights an item regardless of the cursor, e.g. the current
// page in the sidebar; pass -1 for none.
func (l *List) View(width, height, active int) string {
	if height <= 0 {
		height = len(l.Items)
	}
	if l.Cursor < l.offset {
		l.offset = l.Cursor
	}
	if l.Cursor >= l.offset+height {
		l.offset = l.Cursor - height + 1
	}
	end := min(l.offset+height, len(l.Items))

	var b strings.Builder
	for i := l.offset; i < end; i++ {
		it := l.Items[i]
		cursor := "  "
		if l.Focus && i == l.Cursor {
			cursor = "▸ "
		}
		line := cursor + l.mark(it) + it.Label
		if width > 0 && lipgloss.Width(line) > width {
			line = truncate(line, width)
		}

		style := theme.Unselected
		switch {
		case it.Disabled:
			style = theme.Hint
		case i == active:
			style = theme.Active
		case l.Focus && i == l.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (l List) mark(it ListItem) string {
	switch l.Mode {
	case Radio:
		if it.Checked {
			return "(•) "
		}
		return "( ) "
	case Check:
		if it.Checked {
			return "[x] "
		}
		return "[ ] "
	}
	return ""
}

func truncate(s string, width int) string {
	if width <= 1 {
		return "…"
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
