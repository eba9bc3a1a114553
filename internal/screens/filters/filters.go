package filters

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/filter"
	"github.com/classlens/classlens/internal/screen"
	"github.com/classlens/classlens/internal/session"
	"github.com/classlens/classlens/internal/ui/components"
	"github.com/classlens/classlens/internal/ui/layout"
	"github.com/classlens/classlens/internal/ui/theme"
)

// Section is one group of options in the editor.
type Section int

const (
	Class Section = iota
	Subject
	Topic
	Students
	Engagement
	Mode
)

var sectionNames = []string{"Class", "Subject", "Topic", "Students", "Engagement", "Learning Mode"}

func (s Section) String() string { return sectionNames[s] }

const (
	allTopics     = "All Topics"
	anyEngagement = "Any"
)

// FiltersScreen edits the global selection. Every change is dispatched
// immediately so the pages behind it re-derive on the next render.
type FiltersScreen struct {
	sess    *session.Session
	focus   Section
	lists   []components.List
	version uint64
}

var _ screen.Screen = (*FiltersScreen)(nil)

// New builds the editor from the catalog's options.
func New(sess *session.Session) *FiltersScreen {
	c := sess.Catalog
	levels := []string{anyEngagement}
	for _, l := range filter.EngagementLevels {
		levels = append(levels, string(l))
	}
	modes := make([]string, len(filter.LearningModes))
	for i, m := range filter.LearningModes {
		modes[i] = string(m)
	}

	f := &FiltersScreen{
		sess: sess,
		lists: []components.List{
			Class:      components.NewList(components.Radio, c.Classes...),
			Subject:    components.NewList(components.Radio, c.Subjects...),
			Topic:      components.NewList(components.Radio, append([]string{allTopics}, c.TopicNames()...)...),
			Students:   components.NewList(components.Check, c.StudentNames()...),
			Engagement: components.NewList(components.Radio, levels...),
			Mode:       components.NewList(components.Radio, modes...),
		},
	}
	f.lists[f.focus].Focus = true
	f.sync()
	return f
}

// Focused returns the section that receives keys.
func (f *FiltersScreen) Focused() Section { return f.focus }

// sync copies the store's state into the check marks.
func (f *FiltersScreen) sync() {
	st := f.sess.Filters.State()
	f.version = f.sess.Filters.Version()

	f.lists[Class].SetChecked(st.Class)
	f.lists[Subject].SetChecked(st.Subject)
	if t, ok := st.Topic.Get(); ok {
		f.lists[Topic].SetChecked(t)
	} else {
		f.lists[Topic].SetChecked(allTopics)
	}
	f.lists[Students].SetChecked(st.Students...)
	if l, ok := st.Engagement.Get(); ok {
		f.lists[Engagement].SetChecked(string(l))
	} else {
		f.lists[Engagement].SetChecked(anyEngagement)
	}
	f.lists[Mode].SetChecked(string(st.LearningMode))
}

func (f *FiltersScreen) Init() tea.Cmd {
	return nil
}

func (f *FiltersScreen) setFocus(s Section) {
	f.lists[f.focus].Focus = false
	f.focus = s
	f.lists[f.focus].Focus = true
}

func (f *FiltersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if f.version != f.sess.Filters.Version() {
		f.sync()
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return f, nil
	}

	n := Section(len(f.lists))
	switch kmsg.String() {
	case "tab", "right", "l":
		f.setFocus((f.focus + 1) % n)
		return f, nil
	case "shift+tab", "left", "h":
		f.setFocus((f.focus + n - 1) % n)
		return f, nil
	case "a":
		if f.focus == Students {
			f.dispatch(filter.ToggleAllStudents{Names: f.sess.Catalog.StudentNames()})
		}
		return f, nil
	case "x":
		f.dispatch(filter.Reset{})
		return f, nil
	}

	var toggled bool
	f.lists[f.focus], toggled = f.lists[f.focus].Update(msg)
	if toggled {
		f.dispatch(f.action(f.lists[f.focus].Current()))
	}
	return f, nil
}

// action maps the picked label in the focused section to a store action.
func (f *FiltersScreen) action(label string) filter.Action {
	switch f.focus {
	case Class:
		return filter.SetClass{Class: label}
	case Subject:
		return filter.SetSubject{Subject: label}
	case Topic:
		if label == allTopics {
			return filter.ClearTopic{}
		}
		return filter.SetTopic{Topic: label}
	case Students:
		return filter.ToggleStudent{Name: label}
	case Engagement:
		if label == anyEngagement {
			return filter.ClearEngagement{}
		}
		return filter.SetEngagement{Level: filter.EngagementLevel(label)}
	default:
		return filter.SetLearningMode{Mode: filter.LearningMode(label)}
	}
}

func (f *FiltersScreen) dispatch(a filter.Action) {
	f.sess.Dispatch(a)
	f.sync()
}

func (f *FiltersScreen) View(width, height int) string {
	if f.version != f.sess.Filters.Version() {
		f.sync()
	}

	tabs := make([]string, len(sectionNames))
	for i, name := range sectionNames {
		style := theme.ButtonInactive
		if Section(i) == f.focus {
			style = theme.ButtonActive
		}
		tabs[i] = style.Render(name)
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	listH := max(height-lipgloss.Height(tabRow)-3, 3)
	sideW := min(44, width/2)
	listW := width - sideW - 1

	list := components.Card(f.focus.String(), f.lists[f.focus].View(listW-4, listH-1, -1), listW)
	side := lipgloss.JoinVertical(lipgloss.Left,
		components.Card("Current Selection", f.selection(sideW-4), sideW),
		components.Card("Topic Details", f.topicDetails(sideW-4), sideW),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", side)
	return lipgloss.JoinVertical(lipgloss.Left, tabRow, "", body)
}

func (f *FiltersScreen) selection(width int) string {
	st := f.sess.Filters.State()
	rows := []string{
		row("Class", st.Class),
		row("Subject", st.Subject),
		row("Students", st.StudentLabel()),
	}
	if t, ok := st.Topic.Get(); ok {
		rows = append(rows, row("Topic", t))
	}
	if l, ok := st.Engagement.Get(); ok {
		rows = append(rows, row("Engagement", string(l)))
	}
	rows = append(rows, row("Mode", string(st.LearningMode)))
	if len(st.Students) > 1 {
		rows = append(rows, "", lipgloss.NewStyle().Width(width).Foreground(theme.TextDim).Render(strings.Join(st.Students, ", ")))
	}
	return strings.Join(rows, "\n")
}

func row(label, value string) string {
	return theme.Subtitle.Render(fmt.Sprintf("%-11s", label)) + value
}

// topicDetails describes the topic under the cursor, or the selected one
// when another section has focus.
func (f *FiltersScreen) topicDetails(width int) string {
	name := ""
	if f.focus == Topic {
		name = f.lists[Topic].Current()
	} else if t, ok := f.sess.Filters.State().Topic.Get(); ok {
		name = t
	}
	meta, ok := f.sess.Catalog.Meta(name)
	if !ok {
		return theme.Hint.Render("Pick a topic to see its unit and prerequisites.")
	}
	prereq := "none"
	if len(meta.Prerequisites) > 0 {
		prereq = strings.Join(meta.Prerequisites, ", ")
	}
	return strings.Join([]string{
		theme.Title.Render(meta.Topic),
		row("Unit", meta.Unit),
		row("Difficulty", meta.Difficulty),
		lipgloss.NewStyle().Width(width).Render(row("Requires", prereq)),
	}, "\n")
}

func (f *FiltersScreen) Title() string {
	return "Filters"
}

func (f *FiltersScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "tab", Description: "Section"},
		{Key: "space", Description: "Select"},
	}
	if f.focus == Students {
		hints = append(hints, layout.KeyHint{Key: "a", Description: "All"})
	}
	return append(hints,
		layout.KeyHint{Key: "x", Description: "Reset"},
		layout.KeyHint{Key: "esc", Description: "Done"},
	)
}

func (f *FiltersScreen) HeaderChips() []string {
	return f.sess.Filters.State().Chips()
}
