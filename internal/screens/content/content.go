package content

import (
	"fmt"
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
	{Title: "Student", Width: 18, Key: string(derive.ScanByStudent)},
	{Title: "Topic", Width: 22, Key: string(derive.ScanByTopic)},
	{Title: "Pages", Width: 6, Key: string(derive.ScanByPages), Right: true},
	{Title: "Min", Width: 5, Key: string(derive.ScanByMinutes), Right: true},
	{Title: "Compr", Width: 6, Key: string(derive.ScanByComprehension), Right: true},
	{Title: "When", Width: 16, Key: string(derive.ScanByDate)},
}

// Model is the content scanning page.
type Model struct {
	sess   *session.Session
	bucket derive.ComprehensionBucket
	sort   derive.SortState[derive.ScanKey]

	table    components.Table
	insights bool

	derived bool
	version uint64
	view    session.ContentView
}

func New(sess *session.Session) *Model {
	return &Model{
		sess:   sess,
		bucket: derive.ComprehensionAll,
		sort:   derive.DefaultScanSort,
		table:  components.Table{Columns: columns},
	}
}

// Rows returns the scans currently shown.
func (m *Model) Rows() []dataset.Scan {
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
	m.view = m.sess.Content(m.sess.Filters.State(), m.bucket, m.sort)

	rows := make([][]string, len(m.view.Rows))
	for i, s := range m.view.Rows {
		rows[i] = []string{
			s.StudentName,
			s.Topic,
			strconv.Itoa(s.Pages),
			strconv.Itoa(s.Minutes),
			fmt.Sprintf("%d%%", s.Comprehension),
			s.Timestamp.Format(dataset.TimestampLayout),
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
		m.sort = m.sort.Toggle(derive.Cycle(derive.ScanKeys, m.sort.Key))
		m.rederive()
	case "o":
		m.sort = m.sort.Toggle(m.sort.Key)
		m.rederive()
	case "b":
		m.bucket = derive.Cycle(derive.ComprehensionBuckets, m.bucket)
		m.rederive()
	case "r":
		m.bucket, m.sort = derive.ComprehensionAll, derive.DefaultScanSort
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
		{Label: "Sessions", Value: strconv.Itoa(sum.Total)},
		{Label: "Pages Scanned", Value: strconv.Itoa(sum.Pages)},
		{Label: "Minutes", Value: strconv.Itoa(sum.Minutes)},
		{Label: "Avg Comprehension", Value: components.Percent(sum.AvgComprehension)},
	}, width)

	controls := theme.Hint.Render(fmt.Sprintf("Comprehension %s · sorted by %s %s · %d sessions",
		m.bucket, m.sort.Key, m.sort.Dir, len(m.view.Rows)))

	bodyH := max(height-lipgloss.Height(cards)-1, 3)
	body := components.Panes(
		func(w, h int) string { return m.table.View(w, h) },
		m.side,
		width, bodyH, m.insights)

	return lipgloss.JoinVertical(lipgloss.Left, cards, controls, body)
}

func (m *Model) side(width, _ int) string {
	chart := components.BarChart{Bars: components.CountBars(m.view.ByTopic), LabelWidth: 18}.View(width - 4)
	return components.Card("Sessions by Topic", chart, width) + "\n" +
		components.Insights(m.view.Insights, width)
}

func (m *Model) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "s", Description: "Sort"},
		{Key: "o", Description: "Order"},
		{Key: "b", Description: "Comprehension"},
		{Key: "i", Description: "Insights"},
	}
}
