package derive

import (
	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/filter"
)

// PerformanceRow is one line of the gradebook table.
type PerformanceRow struct {
	Name          string
	Average       int
	Assignments   int
	Quizzes       int
	Participation int
	Improvement   int
	Grade         string
	Trend         catalog.Trend
}

func (r PerformanceRow) Student() string { return r.Name }

// PerformanceBucket is the performance view's secondary filter.
type PerformanceBucket string

const (
	BucketAll       PerformanceBucket = "all"
	BucketHigh      PerformanceBucket = "high"
	BucketMedium    PerformanceBucket = "medium"
	BucketLow       PerformanceBucket = "low"
	BucketDeclining PerformanceBucket = "declining"
)

// PerformanceBuckets lists buckets in cycle order.
var PerformanceBuckets = []PerformanceBucket{BucketAll, BucketHigh, BucketMedium, BucketLow, BucketDeclining}

// Match reports whether a row belongs to the bucket.
func (b PerformanceBucket) Match(r PerformanceRow) bool {
	switch b {
	case BucketHigh:
		return r.Average >= 85
	case BucketMedium:
		return r.Average >= 70 && r.Average < 85
	case BucketLow:
		return r.Average < 70
	case BucketDeclining:
		return r.Improvement < 0
	default:
		return true
	}
}

// PerformanceKey is a sortable gradebook column.
type PerformanceKey string

const (
	PerfByName        PerformanceKey = "name"
	PerfByAverage     PerformanceKey = "average"
	PerfByImprovement PerformanceKey = "improvement"
)

// PerformanceKeys lists sort keys in cycle order.
var PerformanceKeys = []PerformanceKey{PerfByName, PerfByAverage, PerfByImprovement}

// DefaultPerformanceSort orders by average, best first.
var DefaultPerformanceSort = SortState[PerformanceKey]{Key: PerfByAverage, Dir: Descending}

func (k PerformanceKey) compare() Compare[PerformanceRow] {
	switch k {
	case PerfByName:
		return Text(func(r PerformanceRow) string { return r.Name })
	case PerfByImprovement:
		return Numeric(func(r PerformanceRow) int { return r.Improvement })
	default:
		return Numeric(func(r PerformanceRow) int { return r.Average })
	}
}

// PerformanceTable builds gradebook rows from the catalog in catalog order.
func PerformanceTable(c *catalog.Catalog) []PerformanceRow {
	rows := make([]PerformanceRow, len(c.Students))
	for i, s := range c.Students {
		rows[i] = PerformanceRow{
			Name:          s.Name,
			Average:       s.AverageScore,
			Assignments:   s.Performance.Assignments,
			Quizzes:       s.Performance.Quizzes,
			Participation: s.Performance.Participation,
			Improvement:   s.Performance.Improvement,
			Grade:         s.Grade(),
			Trend:         s.Performance.Trend,
		}
	}
	return rows
}

// Performance derives the rows the performance view shows.
func Performance(rows []PerformanceRow, st filter.State, bucket PerformanceBucket, sort SortState[PerformanceKey]) []PerformanceRow {
	out := ByStudents(rows, st.Students)
	out = Where(out, bucket.Match)
	return Sort(out, sort.Key.compare(), sort.Dir)
}

// PerformanceSummary is the set of tiles above the gradebook.
type PerformanceSummary struct {
	ClassAverage   Stat
	TopPerformers  int
	NeedsSupport   int
	AvgImprovement Stat
}

// SummarizePerformance aggregates rows.
func SummarizePerformance(rows []PerformanceRow) PerformanceSummary {
	return PerformanceSummary{
		ClassAverage:   NewStat(Mean(rows, func(r PerformanceRow) float64 { return float64(r.Average) })),
		TopPerformers:  Count(rows, func(r PerformanceRow) bool { return r.Average >= 90 }),
		NeedsSupport:   Count(rows, func(r PerformanceRow) bool { return r.Average < 70 }),
		AvgImprovement: NewStat(Mean(rows, func(r PerformanceRow) float64 { return float64(r.Improvement) })),
	}
}
