package login

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/classlens/classlens/internal/auth"
	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/router"
	"github.com/classlens/classlens/internal/screen"
	"github.com/classlens/classlens/internal/session"
)

// stubScreen stands in for the dashboard shell.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd { return nil }

func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }

func (s *stubScreen) View(int, int) string { return "shell" }

func (s *stubScreen) Title() string { return "Dashboard" }

func newLogin(t *testing.T) (*LoginScreen, *session.Session, *int) {
	t.Helper()
	c, err := catalog.Embedded()
	if err != nil {
		t.Fatal(err)
	}
	sess := session.New(c, session.Options{Seed: 1, Now: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)})
	calls := 0
	return New(sess, func() screen.Screen {
		calls++
		return &stubScreen{}
	}), sess, &calls
}

func typeText(l *LoginScreen, s string) {
	for _, r := range s {
		l.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(l *LoginScreen) tea.Cmd {
	_, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestEmptySubmitShowsError(t *testing.T) {
	l, sess, calls := newLogin(t)
	l.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	l.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if cmd := enter(l); cmd != nil {
		t.Fatal("empty form should not sign in")
	}
	if l.Err() != auth.ErrMissingCredentials.Error() {
		t.Errorf("err = %q", l.Err())
	}
	if !strings.Contains(l.View(100, 30), "Please enter both username and password") {
		t.Error("error text should be rendered")
	}
	if sess.Auth.Authenticated() || *calls != 0 {
		t.Error("should stay signed out")
	}
}

func TestSignIn(t *testing.T) {
	l, sess, calls := newLogin(t)
	typeText(l, "ms.rivera")
	enter(l) // moves to password
	typeText(l, "hunter2")
	cmd := enter(l)
	if cmd == nil {
		t.Fatal("expected a transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("msg = %T", cmd())
	}
	if msg.Screen.Title() != "Dashboard" || *calls != 1 {
		t.Errorf("screen = %q, calls = %d", msg.Screen.Title(), *calls)
	}
	if sess.Auth.User() != "ms.rivera" {
		t.Errorf("user = %q", sess.Auth.User())
	}
	if enter(l) != nil {
		t.Error("a second enter should not transition again")
	}
}

func TestPasswordIsMasked(t *testing.T) {
	l, _, _ := newLogin(t)
	typeText(l, "t")
	l.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(l, "secret")
	if strings.Contains(l.View(100, 30), "secret") {
		t.Error("password should not be shown in clear text")
	}
}

func TestTypingClearsError(t *testing.T) {
	l, _, _ := newLogin(t)
	l.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	enter(l)
	if l.Err() == "" {
		t.Fatal("expected an error")
	}
	typeText(l, "x")
	if l.Err() != "" {
		t.Error("typing should clear the error")
	}
}

func TestBannerFallback(t *testing.T) {
	if got := RenderBanner(40); !strings.Contains(got, bannerCompact) {
		t.Errorf("narrow banner = %q", got)
	}
}
