package notes

import (
	"fmt"
	"image/color"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/session"
	"github.com/classlens/classlens/internal/ui/components"
	"github.com/classlens/classlens/internal/ui/layout"
	"github.com/classlens/classlens/internal/ui/theme"
)

var columns = []components.Column{
	{Title: "Student", Width: 18, Key: string(derive.NoteByStudent)},
	{Title: "Topic", Width: 22, Key: string(derive.NoteByTopic)},
	{Title: "Notes", Width: 6, Right: true},
	{Title: "Quality", Width: 10, Key: string(derive.NoteByQuality)},
	{Title: "Words", Width: 6, Key: string(derive.NoteByWords), Right: true},
	{Title: "When", Width: 16, Key: string(derive.NoteByDate)},
}

var qualityColor = map[dataset.Quality]color.Color{
	dataset.Excellent: theme.Success,
	dataset.Good:      theme.Info,
	dataset.Fair:      theme.Accent,
	dataset.Poor:      theme.Error,
}

// Model is the notes analysis page.
type Model struct {
	sess    *session.Session
	quality derive.QualityFilter
	sort    derive.SortState[derive.NoteKey]

	table    components.Table
	insights bool

	derived bool
	version uint64
	view    session.NotesView
}

func New(sess *session.Session) *Model {
	return &Model{
		sess:  sess,
		sort:  derive.DefaultNoteSort,
		table: components.Table{Columns: columns},
	}
}

// Rows returns the notes currently shown.
func (m *Model) Rows() []dataset.Note {
	m.refresh()
	return m.view.Rows
}

func (m *Model) refresh() {
	if m.derived && m.version == m.sess.Filters.Version() {
		return
	}
	m.rederive()
}

func (m *Model) rederive() {
	m.derived = true
	m.version = m.sess.Filters.Version()
	m.view = m.sess.Notes(m.sess.Filters.State(), m.quality, m.sort)

	rows := make([][]string, len(m.view.Rows))
	for i, n := range m.view.Rows {
		rows[i] = []string{
			n.StudentName,
			n.Topic,
			strconv.Itoa(n.NoteCount),
			string(n.Quality),
			strconv.Itoa(n.WordCount),
			n.Timestamp.Format(dataset.TimestampLayout),
		}
	}
	m.table.SetRows(rows)
	m.table.SortKey = string(m.sort.Key)
	m.table.SortArrow = m.sort.Dir.Arrow()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	m.refresh()
	switch kmsg.String() {
	case "s":
		m.sort = m.sort.Toggle(derive.Cycle(derive.NoteKeys, m.sort.Key))
		m.rederive()
	case "o":
		m.sort = m.sort.Toggle(m.sort.Key)
		m.rederive()
	case "b":
		m.quality = derive.Cycle(derive.QualityFilters, m.quality)
		m.rederive()
	case "r":
		m.quality, m.sort = derive.QualityFilter{}, derive.DefaultNoteSort
		m.rederive()
	case "i":
		m.insights = !m.insights
	default:
		m.table = m.table.Update(msg)
	}
	return nil
}

func (m *Model) View(width, height int) string {
	m.refresh()
	sum := m.view.Summary
	cards := components.StatCards([]components.Stat{
		{Label: "Note Sets", Value: strconv.Itoa(sum.Total)},
		{Label: "Total Notes", Value: strconv.Itoa(sum.Pages)},
		{Label: "Avg Words", Value: components.Decimal(sum.AvgWords, 0)},
		{Label: "Excellent", Value: components.Percent(sum.ExcellentShare)},
	}, width)

	controls := theme.Hint.Render(fmt.Sprintf("Quality %s · sorted by %s %s · %d note sets",
		m.quality, m.sort.Key, m.sort.Dir, len(m.view.Rows)))

	bodyH := max(height-lipgloss.Height(cards)-1, 3)
	body := components.Panes(
		func(w, h int) string { return m.table.View(w, h) },
		m.side,
		width, bodyH, m.insights)

	return lipgloss.JoinVertical(lipgloss.Left, cards, controls, body)
}

func (m *Model) side(width, _ int) string {
	bars := components.CountBars(m.view.ByQuality)
	for i := range bars {
		bars[i].Color = qualityColor[dataset.Quality(bars[i].Label)]
	}
	chart := components.BarChart{Bars: bars}.View(width - 4)
	return components.Card("Note Quality", chart, width) + "\n" +
		components.Insights(m.view.Insights, width)
}

func (m *Model) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "s", Description: "Sort"},
		{Key: "o", Description: "Order"},
		{Key: "b", Description: "Quality"},
		{Key: "i", Description: "Insights"},
	}
}
