package performance

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/session"
	"github.com/classlens/classlens/internal/ui/components"
	"github.com/classlens/classlens/internal/ui/layout"
	"github.com/classlens/classlens/internal/ui/theme"
)

var columns = []components.Column{
	{Title: "Student", Width: 18, Key: string(derive.PerfByName)},
	{Title: "Avg", Width: 6, Key: string(derive.PerfByAverage), Right: true},
	{Title: "Assign", Width: 6, Right: true},
	{Title: "Quiz", Width: 5, Right: true},
	{Title: "Part", Width: 5, Right: true},
	{Title: "Change", Width: 8, Key: string(derive.PerfByImprovement), Right: true},
	{Title: "Grade", Width: 5},
	{Title: "Trend", Width: 6},
}

// Model is the student performance page.
type Model struct {
	sess   *session.Session
	bucket derive.PerformanceBucket
	sort   derive.SortState[derive.PerformanceKey]

	table    components.Table
	insights bool

	derived bool
	version uint64
	view    session.PerformanceView
}

func New(sess *session.Session) *Model {
	return &Model{
		sess:   sess,
		bucket: derive.BucketAll,
		sort:   derive.DefaultPerformanceSort,
		table:  components.Table{Columns: columns},
	}
}

// Rows returns the rows currently shown.
func (m *Model) Rows() []derive.PerformanceRow {
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
	m.view = m.sess.Performance(m.sess.Filters.State(), m.bucket, m.sort)

	rows := make([][]string, len(m.view.Rows))
	for i, r := range m.view.Rows {
		rows[i] = []string{
			r.Name,
			fmt.Sprintf("%d%%", r.Average),
			strconv.Itoa(r.Assignments),
			strconv.Itoa(r.Quizzes),
			strconv.Itoa(r.Participation),
			fmt.Sprintf("%+d", r.Improvement),
			r.Grade,
			trendMark(r.Trend),
		}
	}
	m.table.SetRows(rows)
	m.table.SortKey = string(m.sort.Key)
	m.table.SortArrow = m.sort.Dir.Arrow()
}

func trendMark(t catalog.Trend) string {
	switch t {
	case catalog.TrendUp:
		return "↑ up"
	case catalog.TrendDown:
		return "↓ down"
	}
	return "→"
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	m.refresh()
	switch kmsg.String() {
	case "s":
		m.sort = m.sort.Toggle(derive.Cycle(derive.PerformanceKeys, m.sort.Key))
		m.rederive()
	case "o":
		m.sort = m.sort.Toggle(m.sort.Key)
		m.rederive()
	case "b":
		m.bucket = derive.Cycle(derive.PerformanceBuckets, m.bucket)
		m.rederive()
	case "r":
		m.bucket, m.sort = derive.BucketAll, derive.DefaultPerformanceSort
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
		{Label: "Class Average", Value: components.Percent(sum.ClassAverage)},
		{Label: "Top Performers", Value: strconv.Itoa(sum.TopPerformers), Note: "90% and above"},
		{Label: "Needs Support", Value: strconv.Itoa(sum.NeedsSupport), Note: "below 70%"},
		{Label: "Avg Improvement", Value: components.Signed(sum.AvgImprovement)},
	}, width)

	controls := theme.Hint.Render(fmt.Sprintf("Showing %s · sorted by %s %s · %d students",
		m.bucket, m.sort.Key, m.sort.Dir, len(m.view.Rows)))

	bodyH := max(height-lipgloss.Height(cards)-1, 3)
	body := components.Panes(
		func(w, h int) string { return m.table.View(w, h) },
		func(w, h int) string { return components.Insights(m.view.Insights, w) },
		width, bodyH, m.insights)

	return lipgloss.JoinVertical(lipgloss.Left, cards, controls, body)
}

func (m *Model) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "s", Description: "Sort"},
		{Key: "o", Description: "Order"},
		{Key: "b", Description: "Bucket"},
		{Key: "i", Description: "Insights"},
	}
}
