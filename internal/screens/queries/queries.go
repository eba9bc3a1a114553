package queries

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/session"
	"github.com/classlens/classlens/internal/ui/components"
	"github.com/classlens/classlens/internal/ui/layout"
	"github.com/classlens/classlens/internal/ui/theme"
)

var columns = []components.Column{
	{Title: "Student", Width: 16, Key: string(derive.QueryByStudent)},
	{Title: "Topic", Width: 16, Key: string(derive.QueryByTopic)},
	{Title: "Query", Width: 34},
	{Title: "Level", Width: 7, Key: string(derive.QueryByDifficulty)},
	{Title: "Reps", Width: 6, Key: string(derive.QueryByRepetitions), Right: true},
	{Title: "Rel", Width: 6, Key: string(derive.QueryByRelevance), Right: true},
	{Title: "Time", Width: 7, Key: string(derive.QueryByTime), Right: true},
	{Title: "Status", Width: 10},
}

type tab int

const (
	tabLog tab = iota
	tabSignature
)

var tabNames = []string{"Query Log", "Query Signature"}

// Model is the query analysis page. It has two tabs: the query log and the
// per-student query signature with its timeline drill-down.
type Model struct {
	sess      *session.Session
	tab       tab
	signature *signatureTab

	filter derive.QueryFilter
	sort   derive.SortState[derive.QueryKey]

	table    components.Table
	insights bool

	derived bool
	version uint64
	view    session.QueriesView
}

func New(sess *session.Session) *Model {
	return &Model{
		sess:      sess,
		signature: newSignatureTab(sess),
		filter:    derive.QueriesAll,
		sort:      derive.DefaultQuerySort,
		table:     components.Table{Columns: columns},
	}
}

// Signatures returns the signature rows currently shown.
func (m *Model) Signatures() []catalog.QuerySignature {
	m.signature.refresh()
	return m.signature.view.Rows
}

// Detail reports whether the timeline drill-down is open.
func (m *Model) Detail() bool {
	return m.tab == tabSignature && m.signature.detail
}

// Rows returns the queries currently shown.
func (m *Model) Rows() []dataset.Query {
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
	m.view = m.sess.Queries(m.sess.Filters.State(), m.filter, m.sort)

	rows := make([][]string, len(m.view.Rows))
	for i, q := range m.view.Rows {
		rows[i] = []string{
			q.StudentName,
			q.Topic,
			q.Text,
			string(q.Difficulty),
			fmt.Sprintf("%d×", q.Repetitions),
			fmt.Sprintf("%d%%", q.Relevance),
			fmt.Sprintf("%dm%02ds", q.TimeSpent/60, q.TimeSpent%60),
			status(q),
		}
	}
	m.table.SetRows(rows)
	m.table.SortKey = string(m.sort.Key)
	m.table.SortArrow = m.sort.Dir.Arrow()
}

func status(q dataset.Query) string {
	switch {
	case q.Resolved:
		return "resolved"
	case q.Confused:
		return "confused"
	}
	return "open"
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch kmsg.String() {
	case "t":
		m.tab = (m.tab + 1) % tab(len(tabNames))
		return nil
	case "i":
		m.insights = !m.insights
		return nil
	}
	if m.tab == tabSignature {
		m.signature.update(kmsg)
		return nil
	}
	m.refresh()
	switch kmsg.String() {
	case "s":
		m.sort = m.sort.Toggle(derive.Cycle(derive.QueryKeys, m.sort.Key))
		m.rederive()
	case "o":
		m.sort = m.sort.Toggle(m.sort.Key)
		m.rederive()
	case "b":
		m.filter = derive.Cycle(derive.QueryFilters, m.filter)
		m.rederive()
	case "r":
		m.filter, m.sort = derive.QueriesAll, derive.DefaultQuerySort
		m.rederive()
	default:
		m.table = m.table.Update(msg)
	}
	return nil
}

func (m *Model) View(width, height int) string {
	tabs := m.tabs()
	if m.tab == tabSignature {
		m.signature.refresh()
		cards := m.signature.cards(width)
		bodyH := max(height-lipgloss.Height(cards)-2, 3)
		body := components.Panes(m.signature.main, m.signature.side, width, bodyH, m.insights)
		return lipgloss.JoinVertical(lipgloss.Left, tabs, cards, m.signature.controls(), body)
	}

	m.refresh()
	sum := m.view.Summary
	cards := components.StatCards([]components.Stat{
		{Label: "Total Queries", Value: strconv.Itoa(sum.Total)},
		{Label: "Avg Relevance", Value: components.Percent(sum.AvgRelevance)},
		{Label: "Confusion Rate", Value: components.Percent(sum.ConfusionRate)},
		{Label: "Resolution Rate", Value: components.Percent(sum.ResolutionRate)},
	}, width)

	controls := theme.Hint.Render(fmt.Sprintf("Showing %s · sorted by %s %s · %d queries",
		m.filter, m.sort.Key, m.sort.Dir, len(m.view.Rows)))

	bodyH := max(height-lipgloss.Height(cards)-2, 3)
	body := components.Panes(
		func(w, h int) string { return m.table.View(w, h) },
		m.side,
		width, bodyH, m.insights)

	return lipgloss.JoinVertical(lipgloss.Left, tabs, cards, controls, body)
}

func (m *Model) tabs() string {
	out := make([]string, len(tabNames))
	for i, name := range tabNames {
		style := theme.ButtonInactive
		if tab(i) == m.tab {
			style = theme.ButtonActive
		}
		out[i] = style.Render(name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

// side shows the Bloom's breakdown above the insight panel.
func (m *Model) side(width, _ int) string {
	bars := make([]components.Bar, len(m.view.Blooms))
	for i, b := range m.view.Blooms {
		bars[i] = components.Bar{Label: b.Level, Value: float64(b.Score), Color: theme.LevelColor(float64(b.Score))}
	}
	chart := components.BarChart{Bars: bars, Max: 100}.View(width - 4)
	chart += "\n" + theme.Hint.Render(fmt.Sprintf("Lower order %s · Higher order %s",
		components.Percent(m.view.Bloom.LowerOrder), components.Percent(m.view.Bloom.HigherOrder)))

	return components.Card("Bloom's Taxonomy", chart, width) + "\n" +
		components.Insights(m.view.Insights, width)
}

func (m *Model) KeyHints() []layout.KeyHint {
	if m.tab == tabSignature {
		return []layout.KeyHint{
			{Key: "t", Description: "Query Log"},
			{Key: "s", Description: "Sort"},
			{Key: "o", Description: "Order"},
			{Key: "b", Description: "Confusion"},
			{Key: "d", Description: "Difficulty"},
			{Key: "enter", Description: "Timeline"},
			{Key: "i", Description: "Insights"},
		}
	}
	return []layout.KeyHint{
		{Key: "t", Description: "Signature"},
		{Key: "s", Description: "Sort"},
		{Key: "o", Description: "Order"},
		{Key: "b", Description: "Confused/Unresolved"},
		{Key: "i", Description: "Insights"},
	}
}
