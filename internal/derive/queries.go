package derive

import (
	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/filter"
)

// QueryFilter is the query view's secondary filter.
type QueryFilter string

const (
	QueriesAll        QueryFilter = "all"
	QueriesConfused   QueryFilter = "confused"
	QueriesUnresolved QueryFilter = "unresolved"
)

// QueryFilters lists filters in cycle order.
var QueryFilters = []QueryFilter{QueriesAll, QueriesConfused, QueriesUnresolved}

// Match reports whether q passes the filter.
func (f QueryFilter) Match(q dataset.Query) bool {
	switch f {
	case QueriesConfused:
		return q.Confused
	case QueriesUnresolved:
		return !q.Resolved
	default:
		return true
	}
}

// QueryKey is a sortable query column.
type QueryKey string

const (
	QueryByStudent     QueryKey = "student"
	QueryByTopic       QueryKey = "topic"
	QueryByDifficulty  QueryKey = "difficulty"
	QueryByRepetitions QueryKey = "repetitions"
	QueryByRelevance   QueryKey = "relevance"
	QueryByTime        QueryKey = "time"
)

// QueryKeys lists sort keys in cycle order.
var QueryKeys = []QueryKey{QueryByStudent, QueryByTopic, QueryByDifficulty, QueryByRepetitions, QueryByRelevance, QueryByTime}

// DefaultQuerySort puts the most repeated questions first.
var DefaultQuerySort = SortState[QueryKey]{Key: QueryByRepetitions, Dir: Descending}

func (k QueryKey) compare() Compare[dataset.Query] {
	switch k {
	case QueryByStudent:
		return Text(func(q dataset.Query) string { return q.StudentName })
	case QueryByTopic:
		return Text(func(q dataset.Query) string { return q.Topic })
	case QueryByDifficulty:
		return Numeric(func(q dataset.Query) int { return q.Difficulty.Rank() })
	case QueryByRelevance:
		return Numeric(func(q dataset.Query) int { return q.Relevance })
	case QueryByTime:
		return Numeric(func(q dataset.Query) int { return q.TimeSpent })
	default:
		return Numeric(func(q dataset.Query) int { return q.Repetitions })
	}
}

// Queries derives the rows the query view shows.
func Queries(queries []dataset.Query, st filter.State, f QueryFilter, sort SortState[QueryKey]) []dataset.Query {
	out := Scope(queries, st)
	out = Where(out, f.Match)
	return Sort(out, sort.Key.compare(), sort.Dir)
}

// QuerySummary is the set of tiles above the query table.
type QuerySummary struct {
	Total          int
	AvgRelevance   Stat
	ConfusionRate  Stat
	ResolutionRate Stat
	AvgTimeSpent   Stat
}

// SummarizeQueries aggregates queries.
func SummarizeQueries(qs []dataset.Query) QuerySummary {
	return QuerySummary{
		Total:          len(qs),
		AvgRelevance:   NewStat(Mean(qs, func(q dataset.Query) float64 { return float64(q.Relevance) })),
		ConfusionRate:  NewStat(Percent(qs, func(q dataset.Query) bool { return q.Confused })),
		ResolutionRate: NewStat(Percent(qs, func(q dataset.Query) bool { return q.Resolved })),
		AvgTimeSpent:   NewStat(Mean(qs, func(q dataset.Query) float64 { return float64(q.TimeSpent) })),
	}
}

// QueriesByTopic counts queries per topic in catalog order.
func QueriesByTopic(c *catalog.Catalog, qs []dataset.Query) []GroupCount {
	return CountBy(qs, c.TopicNames(), func(q dataset.Query) string { return q.Topic })
}

// BloomSummary splits Bloom's levels into lower and higher order thinking.
type BloomSummary struct {
	LowerOrder  Stat
	HigherOrder Stat
	Highest     catalog.BloomLevel
	Lowest      catalog.BloomLevel
}

// SummarizeBlooms treats the first three levels as lower order and the
// rest as higher order.
func SummarizeBlooms(levels []catalog.BloomLevel) BloomSummary {
	var s BloomSummary
	if len(levels) == 0 {
		return s
	}
	split := min(3, len(levels))
	score := func(b catalog.BloomLevel) float64 { return float64(b.Score) }
	s.LowerOrder = NewStat(Mean(levels[:split], score))
	s.HigherOrder = NewStat(Mean(levels[split:], score))
	s.Highest, s.Lowest = levels[0], levels[0]
	for _, b := range levels[1:] {
		if b.Score > s.Highest.Score {
			s.Highest = b
		}
		if b.Score < s.Lowest.Score {
			s.Lowest = b
		}
	}
	return s
}
