// Package report prints the insight panels as plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/filter"
	"github.com/classlens/classlens/internal/insight"
	"github.com/classlens/classlens/internal/nav"
	"github.com/classlens/classlens/internal/session"
)

// Insights returns the insight panel for a page under st.
func Insights(s *session.Session, st filter.State, p nav.Page) []insight.Insight {
	switch p {
	case nav.Dashboard:
		v := s.Dashboard(st)
		return append(v.Engagement, v.Learning...)
	case nav.Queries:
		return s.Queries(st, derive.QueriesAll, derive.DefaultQuerySort).Insights
	case nav.Performance:
		return s.Performance(st, derive.BucketAll, derive.DefaultPerformanceSort).Insights
	case nav.Content:
		return s.Content(st, derive.ComprehensionAll, derive.DefaultScanSort).Insights
	case nav.Notes:
		return s.Notes(st, derive.QualityFilter{}, derive.DefaultNoteSort).Insights
	}
	return nil
}

// Write prints a section per page.
func Write(w io.Writer, s *session.Session, st filter.State, pages []nav.Page) error {
	if _, err := fmt.Fprintf(w, "Filters: %s\n", Describe(st)); err != nil {
		return err
	}
	for _, p := range pages {
		title := p.String()
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", len(title))); err != nil {
			return err
		}
		for _, in := range Insights(s, st, p) {
			if _, err := fmt.Fprintf(w, "%s\n", in); err != nil {
				return err
			}
		}
	}
	return nil
}

// Describe summarises a filter state on one line.
func Describe(st filter.State) string {
	parts := []string{st.Class, st.Subject, st.StudentLabel()}
	if t, ok := st.Topic.Get(); ok {
		parts = append(parts, "Topic: "+t)
	}
	if l, ok := st.Engagement.Get(); ok {
		parts = append(parts, "Engagement: "+string(l))
	}
	if st.LearningMode != filter.ModeAll {
		parts = append(parts, "Mode: "+string(st.LearningMode))
	}
	return strings.Join(parts, ", ")
}
