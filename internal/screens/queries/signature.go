package queries

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/session"
	"github.com/classlens/classlens/internal/ui/components"
	"github.com/classlens/classlens/internal/ui/theme"
)

// heavyRepetition marks students who re-ask a lot.
const heavyRepetition = 15

var signatureColumns = []components.Column{
	{Title: "Student", Width: 18, Key: string(derive.SignatureName)},
	{Title: "Queries", Width: 8, Key: string(derive.SignatureVolume), Right: true},
	{Title: "Basic", Width: 6, Right: true},
	{Title: "Inter", Width: 6, Right: true},
	{Title: "Adv", Width: 5, Right: true},
	{Title: "Reps", Width: 6, Right: true},
	{Title: "Rel", Width: 5, Key: string(derive.SignatureRelevance), Right: true},
	{Title: "Confusion", Width: 10, Key: string(derive.SignatureConfusion)},
	{Title: "Trend", Width: 7},
}

// signatureTab shows each student's questioning pattern and, on enter,
// the session timeline of the student under the cursor.
type signatureTab struct {
	sess   *session.Session
	filter derive.SignatureFilter
	sort   derive.SortState[derive.SignatureKey]
	table  components.Table
	detail bool

	derived bool
	version uint64
	view    session.SignatureView
}

func newSignatureTab(sess *session.Session) *signatureTab {
	return &signatureTab{
		sess:   sess,
		filter: derive.SignatureFilter{Confusion: derive.ConfusionAll, Difficulty: derive.DifficultyAll},
		sort:   derive.DefaultSignatureSort,
		table:  components.Table{Columns: signatureColumns},
	}
}

func (m *signatureTab) refresh() {
	if m.derived && m.version == m.sess.Filters.Version() {
		return
	}
	m.rederive()
}

func (m *signatureTab) rederive() {
	m.derived = true
	m.version = m.sess.Filters.Version()
	m.view = m.sess.Signatures(m.sess.Filters.State(), m.filter, m.sort)

	rows := make([][]string, len(m.view.Rows))
	for i, s := range m.view.Rows {
		mix := derive.MixOf(s)
		reps := strconv.Itoa(s.Repetition)
		if s.Repetition > heavyRepetition {
			reps += " !"
		}
		rows[i] = []string{
			s.Name,
			strconv.Itoa(s.Volume),
			fmt.Sprintf("%d%%", mix.Basic),
			fmt.Sprintf("%d%%", mix.Intermediate),
			fmt.Sprintf("%d%%", mix.Advanced),
			reps,
			fmt.Sprintf("%d%%", s.Relevance),
			fmt.Sprintf("%d %s", s.ConfusionClusters, derive.BandOf(s.ConfusionClusters)),
			trendMark(s.Trend),
		}
	}
	m.table.SetRows(rows)
	m.table.SortKey = string(m.sort.Key)
	m.table.SortArrow = m.sort.Dir.Arrow()
	if len(rows) == 0 {
		m.detail = false
	}
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

// selected is the signature under the cursor.
func (m *signatureTab) selected() (catalog.QuerySignature, bool) {
	if len(m.view.Rows) == 0 {
		return catalog.QuerySignature{}, false
	}
	return m.view.Rows[m.table.Cursor], true
}

func (m *signatureTab) update(msg tea.KeyPressMsg) {
	m.refresh()
	switch msg.String() {
	case "s":
		m.sort = m.sort.Toggle(derive.Cycle(derive.SignatureKeys, m.sort.Key))
		m.rederive()
	case "o":
		m.sort = m.sort.Toggle(m.sort.Key)
		m.rederive()
	case "b":
		m.filter.Confusion = derive.Cycle(derive.ConfusionBands, m.filter.Confusion)
		m.rederive()
	case "d":
		m.filter.Difficulty = derive.Cycle(derive.DifficultyBands, m.filter.Difficulty)
		m.rederive()
	case "r":
		m.filter = derive.SignatureFilter{Confusion: derive.ConfusionAll, Difficulty: derive.DifficultyAll}
		m.sort = derive.DefaultSignatureSort
		m.detail = false
		m.rederive()
	case "enter":
		_, ok := m.selected()
		m.detail = ok && !m.detail
	case "esc":
		m.detail = false
	default:
		m.table = m.table.Update(msg)
	}
}

func (m *signatureTab) cards(width int) string {
	sum := m.view.Summary
	return components.StatCards([]components.Stat{
		{Label: "Total Queries", Value: strconv.Itoa(sum.TotalQueries)},
		{Label: "Avg Relevance", Value: components.Percent(sum.AvgRelevance)},
		{Label: "Avg Repetition", Value: components.Decimal(sum.AvgRepetition, 1)},
		{Label: "High Confusion", Value: fmt.Sprintf("%d students", sum.HighConfusion)},
	}, width)
}

func (m *signatureTab) controls() string {
	return theme.Hint.Render(fmt.Sprintf("Confusion %s · Difficulty %s · sorted by %s %s · %d students · enter timeline",
		m.filter.Confusion, m.filter.Difficulty, m.sort.Key, m.sort.Dir, len(m.view.Rows)))
}

func (m *signatureTab) main(width, height int) string {
	if !m.detail {
		return m.table.View(width, height)
	}
	s, _ := m.selected()
	tl, ok := m.sess.Timeline(s.Name)
	if !ok {
		return components.Card(s.Name+" · Timeline",
			theme.Hint.Render("No study session recorded for this student.\nenter or esc to return."), width)
	}
	return timelineCard(tl, width)
}

// side shows the class difficulty breakdown, and the session insights while
// a timeline is open.
func (m *signatureTab) side(width, _ int) string {
	lv := m.view.Summary.Levels
	bars := components.CountBars([]derive.GroupCount{
		{Label: "Basic", Count: lv.Basic},
		{Label: "Intermediate", Count: lv.Intermediate},
		{Label: "Advanced", Count: lv.Advanced},
	})
	colors := []color.Color{theme.Success, theme.Accent, theme.Error}
	for i := range bars {
		bars[i].Color = colors[i]
	}
	out := components.Card("Difficulty Breakdown", components.BarChart{Bars: bars}.View(width-4), width)

	if s, ok := m.selected(); ok && m.detail {
		if tl, ok := m.sess.Timeline(s.Name); ok {
			out += "\n" + components.TitledInsights("Session Insights", tl.Insights, width)
		}
	}
	return out
}

var segmentColor = map[catalog.SegmentKind]color.Color{
	catalog.SegmentReading: theme.Primary,
	catalog.SegmentWriting: theme.Success,
	catalog.SegmentApp:     theme.Secondary,
	catalog.SegmentQueries: theme.Accent,
	catalog.SegmentIdle:    theme.TextDim,
}

var segmentLabel = map[catalog.SegmentKind]string{
	catalog.SegmentReading: "Reading",
	catalog.SegmentWriting: "Writing",
	catalog.SegmentApp:     "App Usage",
	catalog.SegmentQueries: "Queries",
	catalog.SegmentIdle:    "Idle",
}

var eventMark = map[catalog.EventKind]string{
	catalog.EventConfusionSpike: "!",
	catalog.EventRepeatedQuery:  "↻",
	catalog.EventInactivity:     "z",
	catalog.EventAchievement:    "★",
}

var severityColor = map[catalog.Severity]color.Color{
	catalog.SeverityHigh:   theme.Error,
	catalog.SeverityMedium: theme.Accent,
	catalog.SeverityLow:    theme.Success,
}

// timelineCard draws the session as a proportional strip with a legend,
// the segment list and the event markers.
func timelineCard(v session.TimelineView, width int) string {
	inner := max(width-4, 10)
	segs := v.Timeline.Segments
	sum := v.Summary

	var strip strings.Builder
	used := 0
	for i, s := range segs {
		n := max(s.Minutes*inner/max(sum.TotalMinutes, 1), 1)
		if i == len(segs)-1 {
			n = max(inner-used, 1)
		}
		used += n
		strip.WriteString(lipgloss.NewStyle().Foreground(segmentColor[s.Kind]).Render(strings.Repeat("█", n)))
	}
	first, last := segs[0].Start, segs[len(segs)-1].End
	axis := first + strings.Repeat(" ", max(inner-len(first)-len(last), 1)) + last

	var legend []string
	for _, k := range sum.ByKind {
		legend = append(legend, lipgloss.NewStyle().Foreground(segmentColor[k.Kind]).Render("█")+
			fmt.Sprintf(" %s %dm", segmentLabel[k.Kind], k.Minutes))
	}

	var rows []string
	for _, s := range segs {
		line := fmt.Sprintf("%s-%s %-9s %s", s.Start, s.End, segmentLabel[s.Kind], s.Details)
		rows = append(rows, lipgloss.NewStyle().MaxWidth(inner).Render(line))
	}

	events := []string{theme.Subtitle.Render("Events")}
	if len(v.Timeline.Events) == 0 {
		events = append(events, theme.Hint.Render("No notable events."))
	}
	for _, e := range v.Timeline.Events {
		mark := lipgloss.NewStyle().Foreground(severityColor[e.Severity]).Bold(true).Render(eventMark[e.Kind])
		line := fmt.Sprintf("%s %s %s (%s)", e.Time, mark, e.Description, e.Severity)
		events = append(events, lipgloss.NewStyle().MaxWidth(inner).Render(line))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		strip.String(),
		theme.Hint.Render(axis),
		lipgloss.NewStyle().Width(inner).Render(strings.Join(legend, "  ")),
		"",
		strings.Join(rows, "\n"),
		"",
		strings.Join(events, "\n"),
	)
	title := fmt.Sprintf("%s · Timeline · %d minutes", v.Timeline.Student, sum.TotalMinutes)
	return components.Card(title, body, width)
}
