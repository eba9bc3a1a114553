package nav

import "testing"

func TestParseRoundTrip(t *testing.T) {
	for _, p := range Pages {
		got, ok := Parse(p.Slug())
		if !ok || got != p {
			t.Errorf("Parse(%q) = %v, %v", p.Slug(), got, ok)
		}
	}
	if _, ok := Parse("gradebook"); ok {
		t.Error("unknown slug should not parse")
	}
}

func TestLabels(t *testing.T) {
	if Dashboard.String() != "Dashboard" || Notes.String() != "Notes Analysis" {
		t.Errorf("labels = %q, %q", Dashboard, Notes)
	}
	if Page(42).Valid() {
		t.Error("Page(42) should be invalid")
	}
	if len(Slugs()) != 5 {
		t.Errorf("Slugs() = %v", Slugs())
	}
}
