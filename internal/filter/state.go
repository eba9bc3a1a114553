package filter

import (
	"fmt"
	"slices"
)

// Default labels for the class and subject selectors.
const (
	AllClasses = "All Classes"
	Biology    = "Biology"
)

// EngagementLevel buckets a 0-100 engagement score.
type EngagementLevel string

const (
	EngagementLow    EngagementLevel = "low"
	EngagementMedium EngagementLevel = "medium"
	EngagementHigh   EngagementLevel = "high"
)

// EngagementLevels lists the levels in display order.
var EngagementLevels = []EngagementLevel{EngagementLow, EngagementMedium, EngagementHigh}

// LevelOf classifies an engagement score: low <50, medium 50-69, high >=70.
func LevelOf(engagement float64) EngagementLevel {
	switch {
	case engagement < 50:
		return EngagementLow
	case engagement < 70:
		return EngagementMedium
	default:
		return EngagementHigh
	}
}

// LearningMode selects how a record was produced.
type LearningMode string

const (
	ModeAll          LearningMode = "All"
	ModeClassroom    LearningMode = "Classroom"
	ModeSelfLearning LearningMode = "Self-Learning"
)

// LearningModes lists the selectable modes in display order.
var LearningModes = []LearningMode{ModeAll, ModeClassroom, ModeSelfLearning}

// Optional holds a value that may be absent.
type Optional[T comparable] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T comparable](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an empty Optional.
func None[T comparable]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Is reports whether the optional holds v.
func (o Optional[T]) Is(v T) bool {
	return o.set && o.value == v
}

// State is the shared data-scope selection read by every view.
// An empty Students slice means all students.
type State struct {
	Class        string
	Subject      string
	Topic        Optional[string]
	Students     []string
	Engagement   Optional[EngagementLevel]
	LearningMode LearningMode
}

// Default returns the state the dashboard starts with and resets to on logout.
func Default() State {
	return State{
		Class:        AllClasses,
		Subject:      Biology,
		Topic:        None[string](),
		Students:     nil,
		Engagement:   None[EngagementLevel](),
		LearningMode: ModeAll,
	}
}

// HasStudent reports whether name is in the selection.
func (s State) HasStudent(name string) bool {
	return slices.Contains(s.Students, name)
}

// AllStudents reports whether the selection is empty.
func (s State) AllStudents() bool {
	return len(s.Students) == 0
}

// StudentLabel renders the student selection for chips and chat text.
func (s State) StudentLabel() string {
	switch len(s.Students) {
	case 0:
		return "All Students"
	case 1:
		return s.Students[0]
	default:
		return fmt.Sprintf("%d Students", len(s.Students))
	}
}

// Chips renders the selection as the short labels shown in the header.
// Unset optional fields are left out.
func (s State) Chips() []string {
	chips := []string{s.Class, s.Subject, s.StudentLabel()}
	if t, ok := s.Topic.Get(); ok {
		chips = append(chips, t)
	}
	if l, ok := s.Engagement.Get(); ok {
		chips = append(chips, "Engagement: "+string(l))
	}
	if s.LearningMode != ModeAll {
		chips = append(chips, string(s.LearningMode))
	}
	return chips
}

// Clone returns a copy that shares no slice storage with s.
func (s State) Clone() State {
	c := s
	c.Students = slices.Clone(s.Students)
	return c
}

// Equal reports whether two states describe the same selection.
// Students compare as sets: order and repeats are ignored.
func (s State) Equal(o State) bool {
	if s.Class != o.Class || s.Subject != o.Subject || s.LearningMode != o.LearningMode {
		return false
	}
	if s.Topic != o.Topic || s.Engagement != o.Engagement {
		return false
	}
	a, b := Unique(s.Students), Unique(o.Students)
	if len(a) != len(b) {
		return false
	}
	for _, name := range a {
		if !slices.Contains(b, name) {
			return false
		}
	}
	return true
}

// Unique returns names without repeats, keeping first-seen order.
// It returns nil for an empty input.
func Unique(names []string) []string {
	var out []string
	for _, n := range names {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}
