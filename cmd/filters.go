package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/filter"
)

// filterFlags are the selection flags shared by export and report.
type filterFlags struct {
	class      string
	subject    string
	topic      string
	students   []string
	engagement string
	mode       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.class, "class", filter.AllClasses, "Class to report on")
	flags.StringVar(&f.subject, "subject", filter.Biology, "Subject to report on")
	flags.StringVar(&f.topic, "topic", "", "Limit to one topic")
	flags.StringSliceVar(&f.students, "student", nil, "Limit to these students (repeatable)")
	flags.StringVar(&f.engagement, "engagement", "", "Engagement level: low, medium or high")
	flags.StringVar(&f.mode, "mode", string(filter.ModeAll), "Learning mode: All, Classroom or Self-Learning")
}

// state checks every value against the catalog and builds the selection
// through the filter store, so it follows the same rules as the editor.
func (f *filterFlags) state(c *catalog.Catalog) (filter.State, error) {
	if !slices.Contains(c.Classes, f.class) {
		return filter.State{}, fmt.Errorf("unknown class %q", f.class)
	}
	if !slices.Contains(c.Subjects, f.subject) {
		return filter.State{}, fmt.Errorf("unknown subject %q", f.subject)
	}

	store := filter.NewStore()
	store.Dispatch(filter.SetClass{Class: f.class})
	store.Dispatch(filter.SetSubject{Subject: f.subject})

	if f.topic != "" {
		if _, ok := c.Topic(f.topic); !ok {
			return filter.State{}, fmt.Errorf("unknown topic %q", f.topic)
		}
		store.Dispatch(filter.SetTopic{Topic: f.topic})
	}

	names := make([]string, 0, len(f.students))
	for _, name := range f.students {
		name = strings.TrimSpace(name)
		if _, ok := c.Student(name); !ok {
			return filter.State{}, fmt.Errorf("unknown student %q", name)
		}
		names = append(names, name)
	}
	if names = filter.Unique(names); len(names) > 0 {
		store.Dispatch(filter.SetStudents{Names: names})
	}

	if f.engagement != "" {
		level := filter.EngagementLevel(strings.ToLower(f.engagement))
		if !slices.Contains(filter.EngagementLevels, level) {
			return filter.State{}, fmt.Errorf("unknown engagement level %q", f.engagement)
		}
		store.Dispatch(filter.SetEngagement{Level: level})
	}

	mode := filter.LearningMode(f.mode)
	if !slices.Contains(filter.LearningModes, mode) {
		return filter.State{}, fmt.Errorf("unknown learning mode %q", f.mode)
	}
	store.Dispatch(filter.SetLearningMode{Mode: mode})

	return store.State(), nil
}
