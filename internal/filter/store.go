package filter

import "slices"

// Action is a single requested change to the filter state.
type Action interface {
	apply(State) State
}

// SetClass selects a class.
type SetClass struct{ Class string }

// SetSubject selects a subject.
type SetSubject struct{ Subject string }

// SetTopic selects a topic. An empty Topic clears the selection.
type SetTopic struct{ Topic string }

// ClearTopic removes the topic selection.
type ClearTopic struct{}

// ToggleStudent adds the student when absent and removes it otherwise.
type ToggleStudent struct{ Name string }

// RemoveStudent drops a student chip.
type RemoveStudent struct{ Name string }

// SetStudents replaces the student selection. Nil or empty selects everyone.
type SetStudents struct{ Names []string }

// ToggleAllStudents selects every name in Names, or clears the selection
// when all of them are already selected.
type ToggleAllStudents struct{ Names []string }

// SetEngagement selects an engagement level. Selecting the active level
// again clears it.
type SetEngagement struct{ Level EngagementLevel }

// ClearEngagement removes the engagement level filter.
type ClearEngagement struct{}

// SetLearningMode selects a learning mode.
type SetLearningMode struct{ Mode LearningMode }

// Replace swaps the whole state.
type Replace struct{ State State }

// Reset restores Default().
type Reset struct{}

func (a SetClass) apply(s State) State   { s.Class = a.Class; return s }
func (a SetSubject) apply(s State) State { s.Subject = a.Subject; return s }

func (a SetTopic) apply(s State) State {
	if a.Topic == "" {
		s.Topic = None[string]()
		return s
	}
	s.Topic = Some(a.Topic)
	return s
}

func (ClearTopic) apply(s State) State { s.Topic = None[string](); return s }

func (a ToggleStudent) apply(s State) State {
	if i := slices.Index(s.Students, a.Name); i >= 0 {
		s.Students = slices.Delete(s.Students, i, i+1)
		return s
	}
	s.Students = append(s.Students, a.Name)
	return s
}

func (a RemoveStudent) apply(s State) State {
	s.Students = slices.DeleteFunc(s.Students, func(n string) bool { return n == a.Name })
	return s
}

func (a SetStudents) apply(s State) State {
	s.Students = Unique(a.Names)
	return s
}

func (a ToggleAllStudents) apply(s State) State {
	all := len(a.Names) > 0
	for _, n := range a.Names {
		if !s.HasStudent(n) {
			all = false
			break
		}
	}
	if all {
		s.Students = nil
		return s
	}
	s.Students = Unique(a.Names)
	return s
}

func (a SetEngagement) apply(s State) State {
	if s.Engagement.Is(a.Level) {
		s.Engagement = None[EngagementLevel]()
		return s
	}
	s.Engagement = Some(a.Level)
	return s
}

func (ClearEngagement) apply(s State) State {
	s.Engagement = None[EngagementLevel]()
	return s
}

func (a SetLearningMode) apply(s State) State { s.LearningMode = a.Mode; return s }

func (a Replace) apply(State) State { return a.State.Clone() }

func (Reset) apply(State) State { return Default() }

// Store owns the filter state. It is not safe for concurrent use; the
// Bubble Tea update loop is its only writer.
type Store struct {
	state       State
	version     uint64
	subscribers []func(State)
}

// NewStore creates a store holding Default().
func NewStore() *Store {
	return &Store{state: Default()}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	return s.state.Clone()
}

// Version increments on every dispatch that changes the state.
func (s *Store) Version() uint64 {
	return s.version
}

// Dispatch applies an action. No validation is performed: combinations that
// match nothing simply produce empty views.
func (s *Store) Dispatch(a Action) {
	next := a.apply(s.state.Clone())
	if next.Equal(s.state) {
		return
	}
	s.state = next
	s.version++
	for _, fn := range s.subscribers {
		fn(s.state.Clone())
	}
}

// Reset restores the default state.
func (s *Store) Reset() {
	s.Dispatch(Reset{})
}

// Subscribe registers fn to receive every new state.
func (s *Store) Subscribe(fn func(State)) {
	s.subscribers = append(s.subscribers, fn)
}
