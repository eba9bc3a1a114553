package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/ui/theme"
)

// Column describes one table column. Key identifies the sort key the
// column header toggles; columns without a key are not sortable.
type Column struct {
	Title string
	Width int
	Key   string
	Right bool
}

// Table is a scrollable, read-only grid with a sort indicator.
type Table struct {
	Columns []Column
	Rows    [][]string
	Cursor  int
	// SortKey and SortArrow mark the column the rows are ordered by.
	SortKey   string
	SortArrow string
	offset    int
}

// Update moves the row cursor.
func (t Table) Update(msg tea.Msg) Table {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return t
	}
	switch kmsg.String() {
	case "up", "k":
		t.Cursor = max(t.Cursor-1, 0)
	case "down", "j":
		t.Cursor = min(t.Cursor+1, max(len(t.Rows)-1, 0))
	case "pgup":
		t.Cursor = max(t.Cursor-10, 0)
	case "pgdown":
		t.Cursor = min(t.Cursor+10, max(len(t.Rows)-1, 0))
	}
	return t
}

// SetRows replaces the rows and keeps the cursor in range.
func (t *Table) SetRows(rows [][]string) {
	t.Rows = rows
	t.Cursor = min(t.Cursor, max(len(rows)-1, 0))
}

// View renders the header and as many rows as fit in height.
func (t *Table) View(width, height int) string {
	cols := t.fit(width)

	var header []string
	for _, c := range cols {
		title := c.Title
		if c.Key != "" && c.Key == t.SortKey {
			title += " " + t.SortArrow
		}
		header = append(header, cell(title, c))
	}
	lines := []string{theme.TableHeader.Render(strings.Join(header, " "))}

	if len(t.Rows) == 0 {
		lines = append(lines, theme.Hint.Render("  No rows match the current filters."))
		return strings.Join(lines, "\n")
	}

	visible := max(height-1, 1)
	if t.Cursor < t.offset {
		t.offset = t.Cursor
	}
	if t.Cursor >= t.offset+visible {
		t.offset = t.Cursor - visible + 1
	}
	t.offset = min(t.offset, max(len(t.Rows)-visible, 0))
	end := min(t.offset+visible, len(t.Rows))

	for i := t.offset; i < end; i++ {
		var cells []string
		for j, c := range cols {
			v := ""
			if j < len(t.Rows[i]) {
				v = t.Rows[i][j]
			}
			cells = append(cells, cell(v, c))
		}
		line := strings.Join(cells, " ")
		if i == t.Cursor {
			line = theme.Selected.Render(line)
		} else {
			line = theme.Unselected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// fit shrinks the widest columns until the row fits in width.
func (t Table) fit(width int) []Column {
	cols := make([]Column, len(t.Columns))
	copy(cols, t.Columns)
	total := func() int {
		n := len(cols) - 1
		for _, c := range cols {
			n += c.Width
		}
		return n
	}
	for total() > width {
		widest := 0
		for i, c := range cols {
			if c.Width > cols[widest].Width {
				widest = i
			}
		}
		if cols[widest].Width <= 4 {
			break
		}
		cols[widest].Width--
	}
	return cols
}

func cell(v string, c Column) string {
	if lipgloss.Width(v) > c.Width {
		v = truncate(v, c.Width)
	}
	pad := strings.Repeat(" ", max(c.Width-lipgloss.Width(v), 0))
	if c.Right {
		return pad + v
	}
	return v + pad
}
