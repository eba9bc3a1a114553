package dashboard

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/filter"
	"github.com/classlens/classlens/internal/session"
	"github.com/classlens/classlens/internal/ui/components"
	"github.com/classlens/classlens/internal/ui/layout"
	"github.com/classlens/classlens/internal/ui/theme"
)

// Model is the overview page. Its content is taller than most terminals,
// so it scrolls inside a viewport.
type Model struct {
	sess *session.Session
	vp   viewport.Model

	derived bool
	version uint64
	width   int
	view    session.DashboardView
}

func New(sess *session.Session) *Model {
	return &Model{sess: sess, vp: viewport.New()}
}

// Data returns the derived overview for the current filters.
func (m *Model) Data() session.DashboardView {
	m.refresh()
	return m.view
}

func (m *Model) refresh() {
	if m.derived && m.version == m.sess.Filters.Version() {
		return
	}
	m.derived = true
	m.version = m.sess.Filters.Version()
	m.view = m.sess.Dashboard(m.sess.Filters.State())
	m.width = 0
}

// nextLevel steps the engagement filter through none, low, medium, high.
func nextLevel(cur filter.Optional[filter.EngagementLevel]) filter.Action {
	l, ok := cur.Get()
	if !ok {
		return filter.SetEngagement{Level: filter.EngagementLevels[0]}
	}
	for i, lv := range filter.EngagementLevels {
		if lv == l && i+1 < len(filter.EngagementLevels) {
			return filter.SetEngagement{Level: filter.EngagementLevels[i+1]}
		}
	}
	return filter.ClearEngagement{}
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "e":
			m.sess.Dispatch(nextLevel(m.sess.Filters.State().Engagement))
			return nil
		case "g", "home":
			m.vp.GotoTop()
			return nil
		case "G", "end":
			m.vp.GotoBottom()
			return nil
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return cmd
}

func (m *Model) View(width, height int) string {
	m.refresh()
	m.vp.SetWidth(width)
	m.vp.SetHeight(height)
	if m.width != width {
		m.width = width
		m.vp.SetContent(m.render(width))
	}
	return m.vp.View()
}

func (m *Model) render(width int) string {
	v := m.view
	sum := v.Summary
	sections := []string{
		components.StatCards([]components.Stat{
			{Label: "Students", Value: strconv.Itoa(sum.Students)},
			{Label: "Avg Score", Value: components.Percent(sum.AvgScore)},
			{Label: "Avg Engagement", Value: components.Percent(sum.AvgEngagement)},
			{Label: "Queries", Value: strconv.Itoa(sum.Queries)},
			{Label: "Notes", Value: strconv.Itoa(sum.Notes)},
			{Label: "Scans", Value: strconv.Itoa(sum.Scans)},
		}, width),
	}

	half := width / 2
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		components.Card("Weekly Attendance", m.attendance(half-4), half),
		components.Card("Performance Trend", m.weekly(width-half-4), width-half),
	))

	sections = append(sections, components.Card("Topic Engagement", m.heatmap(width-4), width))

	averages := make([]components.Bar, len(v.TopicAverages))
	for i, a := range v.TopicAverages {
		averages[i] = components.Bar{Label: a.Label, Value: a.Mean, Color: theme.LevelColor(a.Mean)}
	}
	levels := theme.Hint.Render(fmt.Sprintf("High %d · Medium %d · Low %d",
		v.Levels.High, v.Levels.Medium, v.Levels.Low))
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		components.Card("Topic Averages", components.BarChart{Bars: averages, Max: 100}.View(half-4)+"\n"+levels, half),
		components.Card("Recent Activity", m.activities(width-half-4), width-half),
	))

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		components.Card("Engagement vs Performance", m.link(half-4), half),
		components.Card("Least Engaged", m.leastEngaged(width-half-4), width-half),
	))

	study := v.StudySummary
	sections = append(sections,
		theme.Title.Render("Class Insights"),
		components.StatCards([]components.Stat{
			{Label: "Total Doubts", Value: strconv.Itoa(study.Doubts)},
			{Label: "Videos Watched", Value: strconv.Itoa(study.Videos)},
			{Label: "Struggling", Value: fmt.Sprintf("%d students", study.Struggling)},
			{Label: "Improving", Value: fmt.Sprintf("%d students", study.Improving)},
		}, width),
		lipgloss.JoinHorizontal(lipgloss.Top,
			components.Card("Student Behavior", m.behavior(half-4), half),
			components.Card("Topic Struggles", m.struggles(width-half-4), width-half),
		),
		components.TitledInsights("Learning Behavior Insights", v.Behavior, width),
	)

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		components.TitledInsights("Engagement Insights", v.Engagement, half),
		components.TitledInsights("Learning Insights", v.Learning, width-half),
	))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) attendance(width int) string {
	bars := make([]components.Bar, len(m.view.Attendance))
	for i, d := range m.view.Attendance {
		total := d.Present + d.Absent
		pct := 0.0
		if total > 0 {
			pct = float64(d.Present) / float64(total) * 100
		}
		bars[i] = components.Bar{
			Label:  d.Day,
			Value:  pct,
			Suffix: fmt.Sprintf("%d/%d", d.Present, total),
			Color:  theme.LevelColor(pct),
		}
	}
	return components.BarChart{Bars: bars, Max: 100}.View(width)
}

func (m *Model) weekly(width int) string {
	bars := make([]components.Bar, len(m.view.Weekly))
	for i, w := range m.view.Weekly {
		bars[i] = components.Bar{Label: w.Week, Value: float64(w.Score), Color: theme.Primary}
	}
	return components.BarChart{Bars: bars, Max: 100}.View(width)
}

func (m *Model) activities(width int) string {
	if len(m.view.Activities) == 0 {
		return theme.Hint.Render("No recent activity.")
	}
	var rows []string
	for _, a := range m.view.Activities {
		score := lipgloss.NewStyle().Foreground(theme.LevelColor(float64(a.Score))).Render(fmt.Sprintf("%3d%%", a.Score))
		line := fmt.Sprintf("%s %s", score, a.Student+": "+a.Activity)
		rows = append(rows, lipgloss.NewStyle().MaxWidth(width).Render(line)+"\n     "+theme.Hint.Render(a.When))
	}
	return strings.Join(rows, "\n")
}

// link summarizes the dated engagement and performance samples.
func (m *Model) link(width int) string {
	l := m.view.Link
	if l.Points == 0 {
		return theme.Hint.Render("No samples for the current filters.")
	}
	head := fmt.Sprintf("%d samples · r = %s (%s)\nAvg engagement %s · Avg performance %s",
		l.Points, components.Decimal(l.Coefficient, 2), derive.Strength(l.Coefficient),
		components.Percent(l.AvgEngagement), components.Percent(l.AvgPerformance))
	q := l.Quadrants
	bars := []components.Bar{
		{Label: "Thriving", Value: float64(q.Thriving), Suffix: strconv.Itoa(q.Thriving), Color: theme.Success},
		{Label: "Coasting", Value: float64(q.Coasting), Suffix: strconv.Itoa(q.Coasting), Color: theme.Primary},
		{Label: "Striving", Value: float64(q.Striving), Suffix: strconv.Itoa(q.Striving), Color: theme.Accent},
		{Label: "At risk", Value: float64(q.AtRisk), Suffix: strconv.Itoa(q.AtRisk), Color: theme.Error},
	}
	note := theme.Hint.Render(fmt.Sprintf("high means %d or more", derive.HighMark))
	return lipgloss.NewStyle().Width(width).Render(head) + "\n" +
		components.BarChart{Bars: bars, Max: float64(l.Points)}.View(width) + "\n" + note
}

func (m *Model) leastEngaged(width int) string {
	if len(m.view.LeastEngaged) == 0 {
		return theme.Hint.Render("No engagement data for the current filters.")
	}
	bars := make([]components.Bar, len(m.view.LeastEngaged))
	for i, a := range m.view.LeastEngaged {
		bars[i] = components.Bar{
			Label:  a.Label,
			Value:  a.Mean,
			Suffix: fmt.Sprintf("%d topics", a.Count),
			Color:  theme.LevelColor(a.Mean),
		}
	}
	return components.BarChart{Bars: bars, Max: 100}.View(width)
}

var statusColor = map[catalog.StudyStatus]color.Color{
	catalog.StatusStruggling: theme.Error,
	catalog.StatusImproving:  theme.Primary,
	catalog.StatusConfident:  theme.Success,
}

func (m *Model) behavior(width int) string {
	if len(m.view.Study) == 0 {
		return theme.Hint.Render("No study records for the selected students.")
	}
	var rows []string
	for _, a := range m.view.Study {
		status := lipgloss.NewStyle().Foreground(statusColor[a.Status]).Render(string(a.Status))
		line := fmt.Sprintf("%-16s %2d doubts %2d videos %3.1fh %s",
			clip(a.Name, 16), a.Doubts, a.Videos, a.Hours, status)
		topics := "None"
		if len(a.StrugglingWith) > 0 {
			topics = strings.Join(a.StrugglingWith, ", ")
		}
		detail := theme.Hint.Render(clip(topics+" · "+a.LastActive, max(width-2, 4)))
		rows = append(rows, lipgloss.NewStyle().MaxWidth(width).Render(line)+"\n  "+detail)
	}
	return strings.Join(rows, "\n")
}

var severityColor = map[catalog.Severity]color.Color{
	catalog.SeverityHigh:   theme.Error,
	catalog.SeverityMedium: theme.Accent,
	catalog.SeverityLow:    theme.Success,
}

func (m *Model) struggles(width int) string {
	if len(m.view.Struggles) == 0 {
		return theme.Hint.Render("No struggle hotspots for the current filters.")
	}
	var maxDoubts float64
	for _, s := range m.view.Struggles {
		maxDoubts = max(maxDoubts, s.AvgDoubts)
	}
	bars := make([]components.Bar, len(m.view.Struggles))
	for i, s := range m.view.Struggles {
		bars[i] = components.Bar{
			Label:  s.Topic,
			Value:  s.AvgDoubts,
			Suffix: fmt.Sprintf("%.1f doubts · %d students · %s", s.AvgDoubts, s.StudentsAffected, s.Severity),
			Color:  severityColor[s.Severity],
		}
	}
	return components.BarChart{Bars: bars, Max: maxDoubts}.View(width)
}

// heatmap draws one row per student and one cell per topic, numbered so the
// legend fits narrow terminals.
func (m *Model) heatmap(width int) string {
	pts := m.view.Scatter
	if len(pts) == 0 {
		return theme.Hint.Render("No engagement data for the current filters.")
	}

	topics := m.sess.Catalog.TopicNames()
	cells := make(map[string]map[int]int)
	var students []string
	for _, p := range pts {
		row, ok := cells[p.StudentName]
		if !ok {
			row = make(map[int]int)
			cells[p.StudentName] = row
			students = append(students, p.StudentName)
		}
		row[p.TopicIndex] = p.Engagement
	}

	nameW := min(18, max(width-len(topics)*3, 8))
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", nameW+1))
	for i := range topics {
		fmt.Fprintf(&b, "%3d", i+1)
	}
	for _, s := range students {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%-*s ", nameW, clip(s, nameW))
		for i := range topics {
			v, ok := cells[s][i]
			if !ok {
				b.WriteString(theme.Hint.Render("  ·"))
				continue
			}
			b.WriteString(" " + lipgloss.NewStyle().Foreground(theme.LevelColor(float64(v))).Render("██"))
		}
	}

	b.WriteString("\n\n")
	var legend []string
	for i, t := range topics {
		legend = append(legend, fmt.Sprintf("%d %s", i+1, t))
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.TextDim).Render(strings.Join(legend, " · ")))
	b.WriteString("\n" + key(theme.Success, "high ≥70") + "  " + key(theme.Accent, "medium 50-69") + "  " + key(theme.Error, "low <50"))
	return b.String()
}

func key(c color.Color, label string) string {
	return lipgloss.NewStyle().Foreground(c).Render("██") + " " + label
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m *Model) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Scroll"},
		{Key: "e", Description: "Engagement"},
	}
}
