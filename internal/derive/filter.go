// Package derive computes the filtered and sorted subsets each view shows.
// Every function returns a fresh slice and never mutates its input.
package derive

import (
	"slices"

	"github.com/classlens/classlens/internal/filter"
)

// StudentRecord is anything attributed to a named student.
type StudentRecord interface {
	Student() string
}

// TopicRecord is anything attributed to a topic.
type TopicRecord interface {
	TopicName() string
}

// ModeRecord is anything produced in a specific learning mode.
type ModeRecord interface {
	Mode() filter.LearningMode
}

// Where keeps the items for which keep returns true.
func Where[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// ByStudents keeps records of the selected students. An empty selection
// keeps everything.
func ByStudents[T StudentRecord](items []T, students []string) []T {
	if len(students) == 0 {
		return slices.Clone(items)
	}
	set := make(map[string]struct{}, len(students))
	for _, s := range students {
		set[s] = struct{}{}
	}
	return Where(items, func(it T) bool {
		_, ok := set[it.Student()]
		return ok
	})
}

// ByTopic keeps records of the selected topic, or everything when no topic
// is selected.
func ByTopic[T TopicRecord](items []T, topic filter.Optional[string]) []T {
	name, ok := topic.Get()
	if !ok {
		return slices.Clone(items)
	}
	return Where(items, func(it T) bool { return it.TopicName() == name })
}

// ByLearningMode keeps records produced in mode. ModeAll keeps everything.
func ByLearningMode[T ModeRecord](items []T, mode filter.LearningMode) []T {
	if mode == "" || mode == filter.ModeAll {
		return slices.Clone(items)
	}
	return Where(items, func(it T) bool { return it.Mode() == mode })
}

// Scoped is a record that can be narrowed by student, topic and mode.
type Scoped interface {
	StudentRecord
	TopicRecord
	ModeRecord
}

// Scope applies the shared student, topic and learning mode filters.
func Scope[T Scoped](items []T, st filter.State) []T {
	out := ByStudents(items, st.Students)
	out = ByTopic(out, st.Topic)
	return ByLearningMode(out, st.LearningMode)
}
