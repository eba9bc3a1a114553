package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/classlens/classlens/internal/filter"
)

func TestRespond_BranchOrder(t *testing.T) {
	st := filter.Default()
	tests := []struct {
		input string
		want  string
	}{
		{"How is performance trending?", "Overall performance across all classes"},
		{"Summarize attendance patterns", "Attendance across all classes"},
		{"Which topics need attention?", "Topic engagement varies"},
		{"Give me improvement suggestions", "Here are my recommendations"},
		{"Tell me about a student", "You have 40 active students"},
		{"Any homework due?", "there are 12 assignments due"},
		{"Show progress", "the trend is positive"},
		{"Common questions?", "Student queries vary by topic"},
		{"Give me an overview", "Performance: 85% average"},
		{"help", "I can help you with"},
		{"xyzzy", "Could you be more specific"},
	}
	for _, tt := range tests {
		got := Respond(tt.input, st)
		if !strings.Contains(got, tt.want) {
			t.Errorf("Respond(%q) = %q, want it to contain %q", tt.input, got, tt.want)
		}
	}
}

func TestRespond_CaseInsensitiveAndFirstMatchWins(t *testing.T) {
	st := filter.Default()
	// "performance" beats "trend" because it is checked first.
	got := Respond("PERFORMANCE TREND", st)
	if !strings.HasPrefix(got, "Overall performance") {
		t.Errorf("got %q", got)
	}
}

func TestRespond_UsesSelection(t *testing.T) {
	st := filter.Default()
	st.Students = []string{"Emma Johnson"}
	st.Topic = filter.Some("Photosynthesis")

	got := Respond("how is she doing", st)
	wantCtx := "Based on your current selection (All Classes, Biology, Emma Johnson, Topic: Photosynthesis)"
	if !strings.HasPrefix(got, wantCtx) {
		t.Errorf("context prefix missing: %q", got)
	}
	if !strings.Contains(got, "Emma Johnson is showing strong performance") {
		t.Errorf("single-student branch not used: %q", got)
	}
}

func TestRespond_ImprovementListIsNumbered(t *testing.T) {
	st := filter.Default()
	st.Class = "Grade 7A"
	st.Topic = filter.Some("Evolution & Natural Selection")

	got := Respond("recommend something", st)
	for _, want := range []string{
		"1. For Evolution & Natural Selection",
		"2. Consider creating supplementary materials",
		"3. For Biology",
		"4. In Grade 7A",
		"5. Schedule review sessions",
		"6. Use the high-performing topics",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestWelcome(t *testing.T) {
	got := Welcome(filter.Default())
	want := "Currently viewing: All Classes, Biology, All Students."
	if !strings.Contains(got, want) {
		t.Errorf("Welcome = %q", got)
	}
}

func newWidget() *Widget {
	fixed := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return New(Options{Seed: 1, MinDelay: time.Second, Jitter: time.Second, Now: func() time.Time { return fixed }})
}

func TestWidget_OpenGreetsOnce(t *testing.T) {
	w := newWidget()
	w.Open(filter.Default())
	w.Close()
	w.Open(filter.Default())

	msgs := w.Messages()
	if len(msgs) != 1 || msgs[0].Sender != FromBot {
		t.Fatalf("messages = %+v", msgs)
	}
	if msgs[0].ID == "" {
		t.Error("message id should be set")
	}
}

func TestWidget_SubmitAndDeliver(t *testing.T) {
	w := newWidget()
	st := filter.Default()
	w.Open(st)

	w.SetInput("   ")
	if _, ok := w.Submit(st); ok {
		t.Fatal("blank input should not send")
	}

	w.SetInput("help")
	reply, ok := w.Submit(st)
	if !ok {
		t.Fatal("expected send")
	}
	if reply.Delay < time.Second || reply.Delay >= 2*time.Second {
		t.Errorf("delay = %v, want [1s, 2s)", reply.Delay)
	}
	if !w.Typing() {
		t.Error("typing indicator should be on")
	}
	if w.Input() != "" {
		t.Errorf("input should be cleared, got %q", w.Input())
	}

	if !w.Deliver(reply.Token) {
		t.Fatal("deliver failed")
	}
	if w.Typing() {
		t.Error("typing indicator should be off")
	}
	msgs := w.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len(messages) = %d, want 3", len(msgs))
	}
	if msgs[1].Sender != FromUser || msgs[2].Sender != FromBot {
		t.Errorf("senders = %s, %s", msgs[1].Sender, msgs[2].Sender)
	}
	if w.Deliver(reply.Token) {
		t.Error("second delivery should be ignored")
	}
}

func TestWidget_RepliesFireIndependently(t *testing.T) {
	w := newWidget()
	st := filter.Default()
	w.Open(st)

	w.SetInput("attendance")
	first, _ := w.Submit(st)
	w.SetInput("trend")
	second, _ := w.Submit(st)

	if w.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", w.Pending())
	}
	if !w.Deliver(second.Token) || !w.Deliver(first.Token) {
		t.Fatal("both replies should deliver")
	}
	if w.Typing() {
		t.Error("typing should be off after both replies")
	}
}

func TestWidget_CloseCancelsPending(t *testing.T) {
	w := newWidget()
	st := filter.Default()
	w.Open(st)
	w.SetInput("summary")
	reply, _ := w.Submit(st)

	w.Close()
	if w.Typing() {
		t.Error("close should clear the typing indicator")
	}
	if w.Deliver(reply.Token) {
		t.Error("cancelled reply should not be delivered")
	}
	if n := len(w.Messages()); n != 2 {
		t.Errorf("messages = %d, want welcome + user", n)
	}
}

func TestWidget_ReplyUsesSelectionAtSendTime(t *testing.T) {
	w := newWidget()
	st := filter.Default()
	w.Open(st)
	w.SetInput("what is the trend")
	reply, _ := w.Submit(st)

	w.Deliver(reply.Token)
	msgs := w.Messages()
	if !strings.Contains(msgs[len(msgs)-1].Text, "(All Classes, Biology, All Students)") {
		t.Errorf("reply = %q", msgs[len(msgs)-1].Text)
	}
}

func TestWidget_QuickQuestion(t *testing.T) {
	w := newWidget()
	if !w.UseQuickQuestion(0) || w.Input() != "How is performance trending?" {
		t.Errorf("input = %q", w.Input())
	}
	if w.UseQuickQuestion(9) {
		t.Error("out of range quick question should be rejected")
	}
}

func TestWidget_ConversationIDs(t *testing.T) {
	a, b := newWidget(), newWidget()
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("ids = %q, %q", a.ID(), b.ID())
	}
}
