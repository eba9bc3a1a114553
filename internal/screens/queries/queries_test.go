package queries

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/filter"
	"github.com/classlens/classlens/internal/session"
)

func newModel(t *testing.T) (*Model, *session.Session) {
	t.Helper()
	c, err := catalog.Embedded()
	if err != nil {
		t.Fatal(err)
	}
	s := session.New(c, session.Options{Seed: 8, Now: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)})
	return New(s), s
}

func press(m *Model, s string) {
	var msg tea.KeyPressMsg
	switch s {
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		msg = tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		msg = tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
	}
	m.Update(msg)
}

func signatureNames(m *Model) []string {
	var out []string
	for _, s := range m.Signatures() {
		out = append(out, s.Name)
	}
	return out
}

func TestConfusedFilter(t *testing.T) {
	m, _ := newModel(t)
	press(m, "b")
	if m.filter != derive.QueriesConfused {
		t.Fatalf("filter = %v", m.filter)
	}
	for _, q := range m.Rows() {
		if !q.Confused {
			t.Fatalf("query %s is not confused", q.ID)
		}
	}
	press(m, "b")
	for _, q := range m.Rows() {
		if q.Resolved {
			t.Fatalf("query %s is resolved", q.ID)
		}
	}
}

func TestTopicScope(t *testing.T) {
	m, s := newModel(t)
	s.Dispatch(filter.SetTopic{Topic: "DNA & Genetics"})
	rows := m.Rows()
	if len(rows) == 0 {
		t.Fatal("expected DNA & Genetics queries")
	}
	for _, q := range rows {
		if q.Topic != "DNA & Genetics" {
			t.Fatalf("query %s is on %s", q.ID, q.Topic)
		}
	}
}

func TestWideViewShowsBlooms(t *testing.T) {
	m, _ := newModel(t)
	view := m.View(140, 40)
	for _, want := range []string{"Total Queries", "Bloom's Taxonomy", "Recall", "AI Insights"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSignatureTab(t *testing.T) {
	m, _ := newModel(t)
	press(m, "t")
	if m.tab != tabSignature {
		t.Fatalf("tab = %v", m.tab)
	}
	names := signatureNames(m)
	if len(names) != 8 || names[0] != "Noah Davis" {
		t.Fatalf("rows = %v", names)
	}

	// the page filter keys now drive the signature table
	press(m, "b")
	got := strings.Join(signatureNames(m), ",")
	if got != "Noah Davis,Isabella Taylor" {
		t.Fatalf("high confusion = %s", got)
	}
	if m.filter != derive.QueriesAll {
		t.Fatalf("query log filter changed to %v", m.filter)
	}

	press(m, "r")
	press(m, "d")
	press(m, "d")
	press(m, "d")
	if m.signature.filter.Difficulty != derive.DifficultyAdvanced {
		t.Fatalf("difficulty = %v", m.signature.filter.Difficulty)
	}
	if len(signatureNames(m)) != 8 {
		t.Fatal("every student asked an advanced question")
	}

	press(m, "s")
	if m.signature.sort.Key != derive.SignatureConfusion {
		t.Fatalf("sort = %v", m.signature.sort.Key)
	}
	if first := m.Signatures()[0]; first.ConfusionClusters != 6 {
		t.Fatalf("first row has %d clusters", first.ConfusionClusters)
	}

	press(m, "t")
	if m.tab != tabLog {
		t.Fatal("t did not return to the query log")
	}
}

func TestSignatureScopedToStudents(t *testing.T) {
	m, s := newModel(t)
	s.Dispatch(filter.SetStudents{Names: []string{"Emma Johnson", "Ava Garcia"}})
	press(m, "t")
	if got := signatureNames(m); len(got) != 1 || got[0] != "Emma Johnson" {
		t.Fatalf("rows = %v", got)
	}
}

func TestTimelineDrillDown(t *testing.T) {
	m, _ := newModel(t)
	press(m, "t")
	press(m, "enter")
	if !m.Detail() {
		t.Fatal("enter did not open the timeline")
	}
	view := m.View(140, 60)
	for _, want := range []string{"Noah Davis · Timeline · 170 minutes", "Cluster of 5 related queries", "Confusion", "Session Insights"} {
		if !strings.Contains(view, want) {
			t.Errorf("timeline missing %q", want)
		}
	}
	press(m, "esc")
	if m.Detail() {
		t.Fatal("esc did not close the timeline")
	}

	// Isabella Taylor is third by volume and has no recorded session
	press(m, "down")
	press(m, "down")
	press(m, "enter")
	if view := m.View(140, 60); !strings.Contains(view, "No study session recorded") {
		t.Error("missing empty timeline message")
	}
}

func TestSignatureWideView(t *testing.T) {
	m, _ := newModel(t)
	press(m, "t")
	view := m.View(140, 40)
	for _, want := range []string{"Query Signature", "Difficulty Breakdown", "High Confusion", "Intermediate"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
