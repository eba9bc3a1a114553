package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/chat"
	"github.com/classlens/classlens/internal/screens/filters"
	"github.com/classlens/classlens/internal/screens/shell"
	"github.com/classlens/classlens/internal/session"
)

func newModel(t *testing.T) (AppModel, *session.Session) {
	t.Helper()
	c, err := catalog.Embedded()
	if err != nil {
		t.Fatal(err)
	}
	sess := session.New(c, session.Options{
		Seed: 9,
		Now:  time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Chat: chat.Options{MinDelay: time.Second},
	})
	m := newAppModel(sess)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return next.(AppModel), sess
}

// send runs msg through the model and drops the returned command.
func send(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(AppModel)
}

// route runs msg and feeds the routing message its command produces back
// into the model.
func route(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		t.Fatalf("%v produced no command", msg)
	}
	next, _ = m.Update(cmd())
	return next.(AppModel)
}

func typeText(t *testing.T, m AppModel, s string) AppModel {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return m
}

func signIn(t *testing.T, m AppModel) AppModel {
	t.Helper()
	m = typeText(t, m, "teacher")
	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = typeText(t, m, "pw")
	return route(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
}

func TestStartsOnLogin(t *testing.T) {
	m, _ := newModel(t)
	if m.router.Active().Title() != "Sign In" {
		t.Fatalf("title = %q", m.router.Active().Title())
	}
	if !strings.Contains(m.render(), "Teacher Sign In") {
		t.Error("login form should render")
	}
}

func TestSignInShowsShell(t *testing.T) {
	m, sess := newModel(t)
	m = signIn(t, m)
	if _, ok := m.router.Active().(*shell.ShellScreen); !ok {
		t.Fatalf("active = %T", m.router.Active())
	}
	if !sess.Auth.Authenticated() {
		t.Error("should be signed in")
	}
	view := m.render()
	for _, want := range []string{"ClassLens", "All Classes", "Biology", "All Students"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEscPopsFilters(t *testing.T) {
	m, _ := newModel(t)
	m = signIn(t, m)
	m = route(t, m, tea.KeyPressMsg{Code: 'f', Text: "f"})
	if _, ok := m.router.Active().(*filters.FiltersScreen); !ok {
		t.Fatalf("active = %T", m.router.Active())
	}
	m = route(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d", m.router.Depth())
	}
}

func TestReplyDelivery(t *testing.T) {
	m, sess := newModel(t)
	m = signIn(t, m)
	m = send(t, m, tea.KeyPressMsg{Code: 'c', Text: "c"})
	m = typeText(t, m, "help")
	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if sess.Chat.Pending() != 1 {
		t.Fatalf("pending = %d", sess.Chat.Pending())
	}

	next, _ := m.Update(chat.ReplyMsg{Conversation: "stale", Token: 1})
	m = next.(AppModel)
	if sess.Chat.Pending() != 1 {
		t.Fatal("a reply for another conversation must be ignored")
	}

	next, _ = m.Update(chat.ReplyMsg{Conversation: sess.Chat.ID(), Token: 1})
	m = next.(AppModel)
	if sess.Chat.Typing() {
		t.Error("reply should be delivered")
	}
	msgs := sess.Chat.Messages()
	if last := msgs[len(msgs)-1]; last.Sender != chat.FromBot || !strings.Contains(last.Text, "I can help you with") {
		t.Errorf("last = %+v", last)
	}
}

func TestReplyReachesShellUnderFilters(t *testing.T) {
	m, sess := newModel(t)
	m = signIn(t, m)
	m = route(t, m, tea.KeyPressMsg{Code: 'f', Text: "f"})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d", m.router.Depth())
	}

	sess.Chat.Open(sess.Filters.State())
	sess.Chat.SetInput("help")
	reply, ok := sess.Chat.Submit(sess.Filters.State())
	if !ok {
		t.Fatal("submit failed")
	}
	m = send(t, m, chat.ReplyMsg{Conversation: sess.Chat.ID(), Token: reply.Token})
	if sess.Chat.Typing() {
		t.Error("reply should be delivered while the filter editor is open")
	}
	if _, ok := m.router.Active().(*filters.FiltersScreen); !ok {
		t.Errorf("active = %T, the overlay should stay", m.router.Active())
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	m, sess := newModel(t)
	m = signIn(t, m)
	m = route(t, m, tea.KeyPressMsg{Code: 'L', Text: "L"})
	if m.router.Active().Title() != "Sign In" || m.router.Depth() != 1 {
		t.Errorf("active = %q, depth %d", m.router.Active().Title(), m.router.Depth())
	}
	if sess.Auth.Authenticated() {
		t.Error("should be signed out")
	}
}

func TestTooSmall(t *testing.T) {
	m, _ := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(next.(AppModel).render(), "Terminal too small") {
		t.Error("expected the minimum size notice")
	}
}
