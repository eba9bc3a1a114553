package shell

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/chat"
	"github.com/classlens/classlens/internal/filter"
	"github.com/classlens/classlens/internal/nav"
	"github.com/classlens/classlens/internal/router"
	"github.com/classlens/classlens/internal/screen"
	"github.com/classlens/classlens/internal/screens/filters"
	"github.com/classlens/classlens/internal/session"
)

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd { return nil }

func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }

func (stubScreen) View(int, int) string { return "signed out" }

func (stubScreen) Title() string { return "Login" }

func newShell(t *testing.T) (*ShellScreen, *session.Session) {
	t.Helper()
	c, err := catalog.Embedded()
	if err != nil {
		t.Fatal(err)
	}
	s := session.New(c, session.Options{
		Seed: 4,
		Now:  time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Chat: chat.Options{MinDelay: time.Second, Jitter: time.Second},
	})
	if err := s.Login("teacher", "secret"); err != nil {
		t.Fatal(err)
	}
	return New(s, func() screen.Screen { return stubScreen{} }), s
}

func press(s *ShellScreen, k string) tea.Cmd {
	var msg tea.KeyPressMsg
	switch k {
	case "tab":
		msg = tea.KeyPressMsg{Code: tea.KeyTab}
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		msg = tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		msg = tea.KeyPressMsg{Code: []rune(k)[0], Text: k}
	}
	_, cmd := s.Update(msg)
	return cmd
}

func TestNumberKeysNavigate(t *testing.T) {
	s, sess := newShell(t)
	press(s, "3")
	if sess.Page != nav.Performance {
		t.Fatalf("page = %v", sess.Page)
	}
	if s.Title() != "Student Performance" {
		t.Errorf("title = %q", s.Title())
	}
}

func TestSidebarNavigation(t *testing.T) {
	s, sess := newShell(t)
	press(s, "tab")
	press(s, "down")
	press(s, "enter")
	if sess.Page != nav.Queries {
		t.Fatalf("page = %v, want queries", sess.Page)
	}
	if s.sideFocus {
		t.Error("picking a page should return focus to the content")
	}
}

func TestFiltersKeyPushesEditor(t *testing.T) {
	s, _ := newShell(t)
	cmd := press(s, "f")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("msg = %T", cmd())
	}
	if _, ok := push.Screen.(*filters.FiltersScreen); !ok {
		t.Errorf("pushed %T", push.Screen)
	}
}

func TestChatSendSchedulesReply(t *testing.T) {
	s, sess := newShell(t)
	press(s, "c")
	if !s.ChatOpen() {
		t.Fatal("chat should be open")
	}
	press(s, "tab")
	if got := s.chat.input.Value(); got != chat.QuickQuestions[0] {
		t.Fatalf("input = %q", got)
	}
	if cmd := press(s, "enter"); cmd == nil {
		t.Fatal("send should schedule a reply")
	}
	if !sess.Chat.Typing() {
		t.Error("assistant should be typing")
	}
	if s.chat.input.Value() != "" {
		t.Error("input should clear after send")
	}
	if !strings.Contains(s.View(140, 40), "Assistant is typing") {
		t.Error("typing indicator missing")
	}

	press(s, "esc")
	if s.ChatOpen() || sess.Chat.Typing() {
		t.Error("esc should close the chat and cancel the reply")
	}
}

func TestChatViewLeavesStateAlone(t *testing.T) {
	s, sess := newShell(t)
	press(s, "c")
	for _, r := range "help" {
		press(s, string(r))
	}
	press(s, "enter")
	seen := s.chat.seen

	if !sess.Chat.Deliver(1) {
		t.Fatal("reply should be pending")
	}
	s.View(140, 40)
	if s.chat.seen != seen {
		t.Errorf("rendering changed seen from %d to %d", seen, s.chat.seen)
	}

	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if s.chat.back == 0 {
		t.Fatal("pgup should scroll the transcript")
	}
	s.View(140, 40)
	if s.chat.back == 0 {
		t.Error("rendering reset the scroll position")
	}

	sess.Chat.SetInput("how is Emma Johnson doing?")
	if _, ok := sess.Chat.Submit(sess.Filters.State()); !ok {
		t.Fatal("submit failed")
	}
	sess.Chat.Deliver(2)
	_, _ = s.Update(chat.ReplyMsg{Conversation: sess.Chat.ID(), Token: 2})
	if s.chat.seen != len(sess.Chat.Messages()) || s.chat.back != 0 {
		t.Errorf("reply should jump to the newest message: seen %d back %d", s.chat.seen, s.chat.back)
	}
}

func TestKeysGoToChatWhileOpen(t *testing.T) {
	s, sess := newShell(t)
	press(s, "c")
	press(s, "3")
	if sess.Page != nav.Dashboard {
		t.Error("digits should be typed into the chat, not navigate")
	}
	if s.chat.input.Value() != "3" {
		t.Errorf("input = %q", s.chat.input.Value())
	}
}

func TestLogoutResets(t *testing.T) {
	s, sess := newShell(t)
	sess.Dispatch(filter.SetClass{Class: "Grade 7A"})
	press(s, "2")

	cmd := press(s, "L")
	if sess.Auth.Authenticated() {
		t.Error("should be signed out")
	}
	if sess.Page != nav.Dashboard || sess.Filters.State().Class != filter.AllClasses {
		t.Error("logout should restore the defaults")
	}
	reset, ok := cmd().(router.ResetMsg)
	if !ok || reset.Screen.Title() != "Login" {
		t.Errorf("msg = %#v", cmd())
	}
}

func TestCompactViewUsesStrip(t *testing.T) {
	s, _ := newShell(t)
	view := s.View(90, 30)
	if !strings.Contains(view, "1 dashboard") || !strings.Contains(view, "5 notes") {
		t.Error("narrow view should show the numbered page strip")
	}
}

func TestQuestionsFollowTopic(t *testing.T) {
	s, sess := newShell(t)
	press(s, "Q")
	if !s.QuestionsOpen() {
		t.Fatal("questions panel should be open")
	}
	if got := s.questions.list.Current(); got != sess.Catalog.RecentQuestions.Default[0] {
		t.Errorf("without a topic the panel lists the general questions, got %q", got)
	}
	if !strings.Contains(s.View(140, 40), "Recent Student Questions") {
		t.Error("panel missing from the view")
	}
	press(s, "esc")
	if s.QuestionsOpen() {
		t.Fatal("esc should close the panel")
	}

	sess.Dispatch(filter.SetTopic{Topic: "Photosynthesis"})
	press(s, "Q")
	if got := len(s.questions.list.Items); got != 5 {
		t.Fatalf("items = %d", got)
	}
	if !strings.Contains(s.questions.list.Current(), "light energy") {
		t.Errorf("first question = %q", s.questions.list.Current())
	}
}

func TestQuestionsReply(t *testing.T) {
	s, sess := newShell(t)
	press(s, "Q")
	press(s, "down")
	question := s.questions.list.Current()

	press(s, "enter")
	if !s.questions.replying {
		t.Fatal("enter should start a reply")
	}
	press(s, "enter")
	if !s.questions.replying {
		t.Error("a blank reply should keep the input open")
	}
	for _, r := range "See p. 42" {
		press(s, string(r))
	}
	press(s, "enter")
	if s.questions.replying {
		t.Fatal("send should close the input")
	}
	if got := s.questions.replies[question]; got != "See p. 42" {
		t.Errorf("reply = %q", got)
	}
	if !strings.Contains(s.View(140, 40), "1 answered") {
		t.Error("answered count missing")
	}

	// keys stay in the panel while it is open
	press(s, "3")
	if sess.Page != nav.Dashboard {
		t.Error("digits should not navigate while the panel is open")
	}
}

func TestQuestionsAndChatShareSlot(t *testing.T) {
	s, _ := newShell(t)
	press(s, "Q")
	press(s, "c")
	if s.ChatOpen() {
		t.Error("c should not open the assistant over the questions panel")
	}
	press(s, "esc")
	press(s, "c")
	press(s, "Q")
	if s.QuestionsOpen() {
		t.Error("Q should be typed into the assistant")
	}
}
