package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/classlens/classlens/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	seen    []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type pingMsg struct{}

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "shell"})

	filters := &stubScreen{title: "filters"}
	r.Push(filters)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "filters" {
		t.Errorf("expected active 'filters', got %q", r.Active().Title())
	}
	if !filters.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPopNoopAtRoot(t *testing.T) {
	r := New(&stubScreen{title: "shell"})
	r.Push(&stubScreen{title: "filters"})
	r.Pop()
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "shell" {
		t.Errorf("expected active 'shell', got %q", r.Active().Title())
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "login"})

	shell := &stubScreen{title: "shell"}
	r.Update(ReplaceScreenMsg{Screen: shell})

	if r.Depth() != 1 || r.Active().Title() != "shell" {
		t.Errorf("got depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if !shell.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestResetDropsOverlays(t *testing.T) {
	r := New(&stubScreen{title: "shell"})
	r.Push(&stubScreen{title: "filters"})
	r.Push(&stubScreen{title: "chat"})

	r.Update(ResetMsg{Screen: &stubScreen{title: "login"}})

	if r.Depth() != 1 || r.Active().Title() != "login" {
		t.Errorf("got depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	shell := &stubScreen{title: "shell"}
	filters := &stubScreen{title: "filters"}
	r := New(shell)
	r.Push(filters)

	r.Update(pingMsg{})
	if len(filters.seen) != 1 || len(shell.seen) != 0 {
		t.Errorf("filters saw %d, shell saw %d", len(filters.seen), len(shell.seen))
	}

	r.Forward(0, pingMsg{})
	if len(shell.seen) != 1 {
		t.Errorf("Forward should reach the root, saw %d", len(shell.seen))
	}
	if r.Forward(5, pingMsg{}) != nil {
		t.Error("out of range Forward should be a no-op")
	}
}
