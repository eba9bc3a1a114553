package shell

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/chat"
	"github.com/classlens/classlens/internal/nav"
	"github.com/classlens/classlens/internal/router"
	"github.com/classlens/classlens/internal/screen"
	"github.com/classlens/classlens/internal/screens/content"
	"github.com/classlens/classlens/internal/screens/dashboard"
	"github.com/classlens/classlens/internal/screens/filters"
	"github.com/classlens/classlens/internal/screens/notes"
	"github.com/classlens/classlens/internal/screens/performance"
	"github.com/classlens/classlens/internal/screens/queries"
	"github.com/classlens/classlens/internal/session"
	"github.com/classlens/classlens/internal/ui/components"
	"github.com/classlens/classlens/internal/ui/layout"
	"github.com/classlens/classlens/internal/ui/theme"
)

// Page is one of the views hosted by the shell.
type Page interface {
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	KeyHints() []layout.KeyHint
}

// ShellScreen is the signed-in root: a sidebar of pages, the active page,
// and the assistant panel.
type ShellScreen struct {
	sess      *session.Session
	sidebar   components.List
	sideFocus bool
	pages     map[nav.Page]Page
	chat      *chatPanel
	questions *questionsPanel
	signedOut func() screen.Screen
}

var _ screen.Screen = (*ShellScreen)(nil)

// New creates the shell. signedOut builds the screen shown after logout.
func New(sess *session.Session, signedOut func() screen.Screen) *ShellScreen {
	labels := make([]string, len(nav.Pages))
	for i, p := range nav.Pages {
		labels[i] = p.String()
	}
	s := &ShellScreen{
		sess:    sess,
		sidebar: components.NewList(components.Plain, labels...),
		pages: map[nav.Page]Page{
			nav.Dashboard:   dashboard.New(sess),
			nav.Queries:     queries.New(sess),
			nav.Performance: performance.New(sess),
			nav.Content:     content.New(sess),
			nav.Notes:       notes.New(sess),
		},
		chat:      newChatPanel(sess),
		questions: newQuestionsPanel(sess),
		signedOut: signedOut,
	}
	s.sidebar.Cursor = int(sess.Page)
	return s
}

// Active returns the page currently shown.
func (s *ShellScreen) Active() nav.Page { return s.sess.Page }

// ChatOpen reports whether the assistant panel is showing.
func (s *ShellScreen) ChatOpen() bool { return s.sess.Chat.IsOpen() }

// QuestionsOpen reports whether the student questions panel is showing.
func (s *ShellScreen) QuestionsOpen() bool { return s.questions.isOpen }

func (s *ShellScreen) Init() tea.Cmd {
	return nil
}

func (s *ShellScreen) navigate(p nav.Page) {
	s.sess.Navigate(p)
	s.sidebar.Cursor = int(p)
}

func (s *ShellScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(chat.ReplyMsg); ok {
		s.chat.sync()
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, s.pages[s.sess.Page].Update(msg)
	}

	if s.sess.Chat.IsOpen() {
		cmd, _ := s.chat.update(kmsg)
		return s, cmd
	}
	if s.questions.isOpen {
		return s, s.questions.update(kmsg)
	}

	switch k := kmsg.String(); k {
	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(k)
		s.navigate(nav.Pages[n-1])
		return s, nil
	case "tab":
		s.sideFocus = !s.sideFocus
		s.sidebar.Focus = s.sideFocus
		return s, nil
	case "f":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: filters.New(s.sess)}
		}
	case "c":
		return s, s.chat.open()
	case "Q":
		s.questions.open()
		return s, nil
	case "x":
		s.sess.Filters.Reset()
		return s, nil
	case "L":
		s.chat.close()
		s.questions.close()
		s.sess.Logout()
		return s, func() tea.Msg {
			return router.ResetMsg{Screen: s.signedOut()}
		}
	case "q":
		return s, tea.Quit
	}

	if s.sideFocus {
		var picked bool
		s.sidebar, picked = s.sidebar.Update(msg)
		if picked {
			s.navigate(nav.Pages[s.sidebar.Cursor])
			s.sideFocus = false
			s.sidebar.Focus = false
		}
		return s, nil
	}
	return s, s.pages[s.sess.Page].Update(msg)
}

func (s *ShellScreen) View(width, height int) string {
	page := s.pages[s.sess.Page]
	panel := s.panel()

	if layout.IsCompactWidth(width) {
		strip := s.navStrip(width)
		bodyH := max(height-lipgloss.Height(strip), 3)
		if panel != nil {
			return lipgloss.JoinVertical(lipgloss.Left, strip, panel(width, bodyH))
		}
		return lipgloss.JoinVertical(lipgloss.Left, strip, page.View(width, bodyH))
	}

	side := s.sidebarView(height)
	mainW := width - lipgloss.Width(side) - 1
	if panel != nil {
		mainW -= ChatWidth
	}
	parts := []string{side, " ", lipgloss.NewStyle().Width(mainW).MaxHeight(height).Render(page.View(mainW, height))}
	if panel != nil {
		parts = append(parts, panel(ChatWidth, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// panel returns the open side panel's renderer, or nil.
func (s *ShellScreen) panel() func(width, height int) string {
	switch {
	case s.sess.Chat.IsOpen():
		return s.chat.view
	case s.questions.isOpen:
		return s.questions.view
	}
	return nil
}

func (s *ShellScreen) sidebarView(height int) string {
	list := s.sidebar.View(layout.SidebarWidth-3, len(nav.Pages), int(s.sess.Page))
	extra := theme.Hint.Render(strings.Join([]string{
		"f Filters",
		s.chat.badge(),
		s.questions.badge(),
		"x Reset filters",
		"L Log out",
	}, "\n"))
	user := theme.Subtitle.Render(s.sess.Auth.User())
	body := lipgloss.JoinVertical(lipgloss.Left, user, "", list, "", extra)
	return theme.Sidebar.Width(layout.SidebarWidth).Height(height).MaxHeight(height).Render(body)
}

// navStrip replaces the sidebar on narrow terminals.
func (s *ShellScreen) navStrip(width int) string {
	var tabs []string
	for i, p := range nav.Pages {
		label := strconv.Itoa(i+1) + " " + p.Slug()
		if p == s.sess.Page {
			tabs = append(tabs, theme.Active.Render(label))
			continue
		}
		tabs = append(tabs, theme.Unselected.Render(label))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(tabs, theme.Hint.Render(" │ ")))
}

func (s *ShellScreen) Title() string {
	return s.sess.Page.String()
}

func (s *ShellScreen) KeyHints() []layout.KeyHint {
	if s.sess.Chat.IsOpen() {
		return []layout.KeyHint{
			{Key: "enter", Description: "Send"},
			{Key: "tab", Description: "Quick question"},
			{Key: "esc", Description: "Close"},
		}
	}
	if s.questions.isOpen {
		if s.questions.replying {
			return []layout.KeyHint{
				{Key: "enter", Description: "Send reply"},
				{Key: "esc", Description: "Cancel"},
			}
		}
		return []layout.KeyHint{
			{Key: "↑/↓", Description: "Select"},
			{Key: "enter", Description: "Reply"},
			{Key: "esc", Description: "Close"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "1-5", Description: "Pages"},
		{Key: "tab", Description: "Sidebar"},
		{Key: "f", Description: "Filters"},
		{Key: "c", Description: "Assistant"},
		{Key: "Q", Description: "Questions"},
	}
	return append(hints, s.pages[s.sess.Page].KeyHints()...)
}

func (s *ShellScreen) HeaderChips() []string {
	return s.sess.Filters.State().Chips()
}
