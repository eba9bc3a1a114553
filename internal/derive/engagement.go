package derive

import (
	"slices"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/filter"
)

// Scatter derives the engagement grid points shown on the dashboard.
// The engagement level filter only applies here.
func Scatter(points []dataset.EngagementPoint, st filter.State) []dataset.EngagementPoint {
	out := ByStudents(points, st.Students)
	out = ByTopic(out, st.Topic)
	if level, ok := st.Engagement.Get(); ok {
		out = Where(out, func(p dataset.EngagementPoint) bool {
			return filter.LevelOf(float64(p.Engagement)) == level
		})
	}
	return out
}

// LevelCounts is how many points fall in each engagement level.
type LevelCounts struct {
	Low, Medium, High int
}

// Total is the number of points counted.
func (c LevelCounts) Total() int {
	return c.Low + c.Medium + c.High
}

// CountLevels buckets points by engagement level.
func CountLevels(points []dataset.EngagementPoint) LevelCounts {
	var c LevelCounts
	for _, p := range points {
		switch filter.LevelOf(float64(p.Engagement)) {
		case filter.EngagementLow:
			c.Low++
		case filter.EngagementMedium:
			c.Medium++
		default:
			c.High++
		}
	}
	return c
}

// Average is a labelled mean.
type Average struct {
	Label string
	Mean  float64
	Count int
}

// AverageBy averages engagement per label, keeping labels in the order given
// and dropping labels with no points.
func AverageBy(points []dataset.EngagementPoint, order []string, key func(dataset.EngagementPoint) string) []Average {
	sums := make(map[string]int, len(order))
	counts := make(map[string]int, len(order))
	for _, p := range points {
		k := key(p)
		sums[k] += p.Engagement
		counts[k]++
	}
	out := make([]Average, 0, len(order))
	for _, label := range order {
		if n := counts[label]; n > 0 {
			out = append(out, Average{Label: label, Mean: float64(sums[label]) / float64(n), Count: n})
		}
	}
	return out
}

// TopicAverages averages grid engagement per topic in catalog order.
func TopicAverages(c *catalog.Catalog, points []dataset.EngagementPoint) []Average {
	return AverageBy(points, c.TopicNames(), func(p dataset.EngagementPoint) string { return p.Topic })
}

// StudentAverages averages grid engagement per student in catalog order.
func StudentAverages(c *catalog.Catalog, points []dataset.EngagementPoint) []Average {
	return AverageBy(points, c.StudentNames(), func(p dataset.EngagementPoint) string { return p.StudentName })
}

// DashboardSummary is the set of tiles at the top of the dashboard.
type DashboardSummary struct {
	Students      int
	AvgScore      Stat
	AvgEngagement Stat
	Queries       int
	Notes         int
	Scans         int
}

type studentRef struct{ rec catalog.Student }

func (s studentRef) Student() string { return s.rec.Name }

// SelectedStudents returns the catalog records in the selection, in catalog
// order. An empty selection returns every student.
func SelectedStudents(c *catalog.Catalog, st filter.State) []catalog.Student {
	refs := make([]studentRef, len(c.Students))
	for i, s := range c.Students {
		refs[i] = studentRef{rec: s}
	}
	picked := ByStudents(refs, st.Students)
	out := make([]catalog.Student, len(picked))
	for i, r := range picked {
		out[i] = r.rec
	}
	return out
}

// SummarizeDashboard aggregates the tiles for the current selection.
func SummarizeDashboard(c *catalog.Catalog, d *dataset.Dataset, st filter.State) DashboardSummary {
	students := SelectedStudents(c, st)
	return DashboardSummary{
		Students:      len(students),
		AvgScore:      NewStat(Mean(students, func(s catalog.Student) float64 { return float64(s.AverageScore) })),
		AvgEngagement: NewStat(Mean(students, func(s catalog.Student) float64 { return float64(s.Engagement) })),
		Queries:       len(Scope(d.Queries, st)),
		Notes:         len(Scope(d.Notes, st)),
		Scans:         len(Scope(d.Scans, st)),
	}
}

// Correlation narrows correlation points and returns them oldest first.
func Correlation(points []dataset.CorrelationPoint, st filter.State) []dataset.CorrelationPoint {
	out := ByStudents(points, st.Students)
	out = ByTopic(out, st.Topic)
	slices.SortStableFunc(out, func(a, b dataset.CorrelationPoint) int { return a.Date.Compare(b.Date) })
	return out
}
