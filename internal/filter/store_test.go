package filter

import "testing"

func TestDefault(t *testing.T) {
	s := Default()
	if s.Class != "All Classes" {
		t.Errorf("Class = %q, want All Classes", s.Class)
	}
	if s.Subject != "Biology" {
		t.Errorf("Subject = %q, want Biology", s.Subject)
	}
	if s.Topic.IsSet() {
		t.Error("Topic should be unset")
	}
	if len(s.Students) != 0 {
		t.Errorf("Students = %v, want empty", s.Students)
	}
	if s.Engagement.IsSet() {
		t.Error("Engagement should be unset")
	}
	if s.LearningMode != ModeAll {
		t.Errorf("LearningMode = %q, want All", s.LearningMode)
	}
}

func TestStore_DispatchPartialUpdates(t *testing.T) {
	st := NewStore()
	st.Dispatch(SetClass{Class: "Grade 7A"})
	st.Dispatch(SetTopic{Topic: "Photosynthesis"})
	st.Dispatch(SetLearningMode{Mode: ModeClassroom})

	s := st.State()
	if s.Class != "Grade 7A" {
		t.Errorf("Class = %q", s.Class)
	}
	if topic, ok := s.Topic.Get(); !ok || topic != "Photosynthesis" {
		t.Errorf("Topic = %q (set=%v)", topic, ok)
	}
	if s.Subject != Biology {
		t.Errorf("Subject changed to %q", s.Subject)
	}
	if st.Version() != 3 {
		t.Errorf("Version = %d, want 3", st.Version())
	}
}

func TestStore_SetTopicEmptyClears(t *testing.T) {
	st := NewStore()
	st.Dispatch(SetTopic{Topic: "Evolution"})
	st.Dispatch(SetTopic{Topic: ""})
	if st.State().Topic.IsSet() {
		t.Error("empty topic should clear the selection")
	}
}

func TestStore_NoOpDoesNotBumpVersion(t *testing.T) {
	st := NewStore()
	calls := 0
	st.Subscribe(func(State) { calls++ })

	st.Dispatch(SetSubject{Subject: Biology})
	if st.Version() != 0 || calls != 0 {
		t.Errorf("no-op dispatch changed version=%d calls=%d", st.Version(), calls)
	}

	st.Dispatch(SetSubject{Subject: "Botany"})
	if st.Version() != 1 || calls != 1 {
		t.Errorf("version=%d calls=%d, want 1/1", st.Version(), calls)
	}
}

func TestStore_ToggleStudent(t *testing.T) {
	st := NewStore()
	st.Dispatch(ToggleStudent{Name: "Emma Johnson"})
	st.Dispatch(ToggleStudent{Name: "Noah Davis"})
	if got := st.State().StudentLabel(); got != "2 Students" {
		t.Errorf("label = %q, want 2 Students", got)
	}

	st.Dispatch(ToggleStudent{Name: "Emma Johnson"})
	s := st.State()
	if s.HasStudent("Emma Johnson") {
		t.Error("Emma should have been toggled off")
	}
	if got := s.StudentLabel(); got != "Noah Davis" {
		t.Errorf("label = %q, want Noah Davis", got)
	}

	st.Dispatch(RemoveStudent{Name: "Noah Davis"})
	if got := st.State().StudentLabel(); got != "All Students" {
		t.Errorf("label = %q, want All Students", got)
	}
}

func TestStore_ToggleAllStudents(t *testing.T) {
	names := []string{"A", "B", "C"}
	st := NewStore()

	st.Dispatch(ToggleAllStudents{Names: names})
	if len(st.State().Students) != 3 {
		t.Fatalf("select all: got %v", st.State().Students)
	}

	st.Dispatch(ToggleAllStudents{Names: names})
	if !st.State().AllStudents() {
		t.Errorf("deselect all: got %v", st.State().Students)
	}
}

func TestStore_SetStudentsDropsRepeats(t *testing.T) {
	st := NewStore()
	st.Dispatch(SetStudents{Names: []string{"Emma Johnson", "Emma Johnson"}})
	if got := st.State().StudentLabel(); got != "Emma Johnson" {
		t.Errorf("StudentLabel = %q, want Emma Johnson", got)
	}

	st.Dispatch(ToggleStudent{Name: "Emma Johnson"})
	if st.State().HasStudent("Emma Johnson") {
		t.Error("toggling a repeated selection should remove the student")
	}
	if !st.State().AllStudents() {
		t.Errorf("Students = %v, want empty", st.State().Students)
	}

	st.Dispatch(ToggleAllStudents{Names: []string{"Noah Davis", "Noah Davis", "Liam Smith"}})
	if got := st.State().Students; len(got) != 2 {
		t.Errorf("Students = %v, want two names", got)
	}
}

func TestEqualComparesStudentSets(t *testing.T) {
	a := Default()
	a.Students = []string{"Emma Johnson", "Emma Johnson"}
	b := Default()
	b.Students = []string{"Emma Johnson", "Noah Davis"}
	if a.Equal(b) {
		t.Error("different selections compared equal")
	}
	if b.Equal(a) {
		t.Error("different selections compared equal")
	}

	c := Default()
	c.Students = []string{"Noah Davis", "Emma Johnson"}
	if !b.Equal(c) {
		t.Error("order should not matter")
	}
}

func TestStore_SetEngagementTogglesOff(t *testing.T) {
	st := NewStore()
	st.Dispatch(SetEngagement{Level: EngagementLow})
	if !st.State().Engagement.Is(EngagementLow) {
		t.Fatal("engagement should be low")
	}
	st.Dispatch(SetEngagement{Level: EngagementLow})
	if st.State().Engagement.IsSet() {
		t.Error("selecting the active level again should clear it")
	}
}

func TestStore_ResetRestoresDefault(t *testing.T) {
	st := NewStore()
	st.Dispatch(SetClass{Class: "Grade 6B"})
	st.Dispatch(ToggleStudent{Name: "Emma Johnson"})
	st.Dispatch(SetEngagement{Level: EngagementHigh})
	st.Reset()

	if !st.State().Equal(Default()) {
		t.Errorf("state after reset = %+v", st.State())
	}
}

func TestStore_StateIsACopy(t *testing.T) {
	st := NewStore()
	st.Dispatch(ToggleStudent{Name: "Emma Johnson"})
	s := st.State()
	s.Students[0] = "Mallory"
	if !st.State().HasStudent("Emma Johnson") {
		t.Error("mutating a returned state leaked into the store")
	}
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		in   float64
		want EngagementLevel
	}{
		{0, EngagementLow},
		{49.9, EngagementLow},
		{50, EngagementMedium},
		{69, EngagementMedium},
		{70, EngagementHigh},
		{95, EngagementHigh},
	}
	for _, tt := range tests {
		if got := LevelOf(tt.in); got != tt.want {
			t.Errorf("LevelOf(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestChips(t *testing.T) {
	st := Default()
	if got := st.Chips(); len(got) != 3 || got[2] != "All Students" {
		t.Errorf("default chips = %v", got)
	}

	st.Topic = Some("Genetics")
	st.Engagement = Some(EngagementHigh)
	st.LearningMode = ModeSelfLearning
	st.Students = []string{"Emma Johnson", "Noah Davis"}
	want := []string{"All Classes", "Biology", "2 Students", "Genetics", "Engagement: high", "Self-Learning"}
	got := st.Chips()
	if len(got) != len(want) {
		t.Fatalf("chips = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chip %d = %q, want %q", i, got[i], want[i])
		}
	}
}
