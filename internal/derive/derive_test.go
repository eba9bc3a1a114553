package derive

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/filter"
)

func fixture(t *testing.T) (*catalog.Catalog, *dataset.Dataset) {
	t.Helper()
	c, err := catalog.Embedded()
	require.NoError(t, err)
	d := dataset.Generate(c, dataset.Options{Seed: 2024, Now: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)})
	return c, d
}

func withStudents(names ...string) filter.State {
	st := filter.Default()
	st.Students = names
	return st
}

func TestPerformance_EmmaJohnson(t *testing.T) {
	c, _ := fixture(t)
	rows := Performance(PerformanceTable(c), withStudents("Emma Johnson"), BucketAll, DefaultPerformanceSort)

	require.Len(t, rows, 1)
	assert.Equal(t, "Emma Johnson", rows[0].Name)
	assert.Equal(t, 92, rows[0].Average)
	assert.Equal(t, "A", rows[0].Grade)
}

func TestSingletonSelection_OneIdentity(t *testing.T) {
	c, d := fixture(t)
	st := withStudents("Noah Davis")

	rows := Performance(PerformanceTable(c), st, BucketAll, DefaultPerformanceSort)
	require.Len(t, rows, 1)
	assert.Equal(t, "Noah Davis", rows[0].Name)

	for _, q := range Queries(d.Queries, st, QueriesAll, DefaultQuerySort) {
		assert.Equal(t, "Noah Davis", q.StudentName)
	}
	for _, n := range Notes(d.Notes, st, QualityFilter{}, DefaultNoteSort) {
		assert.Equal(t, "Noah Davis", n.StudentName)
	}
	for _, s := range Scans(d.Scans, st, ComprehensionAll, DefaultScanSort) {
		assert.Equal(t, "Noah Davis", s.StudentName)
	}
}

func TestEmptySelection_KeepsFullDataset(t *testing.T) {
	c, d := fixture(t)
	st := filter.Default()

	assert.Equal(t, d.Queries, Scope(d.Queries, st))
	assert.Equal(t, d.Notes, Scope(d.Notes, st))
	assert.Equal(t, d.Scans, Scope(d.Scans, st))
	assert.Equal(t, d.Engagement, Scatter(d.Engagement, st))
	assert.Len(t, SelectedStudents(c, st), len(c.Students))
}

func TestSort_Idempotent(t *testing.T) {
	_, d := fixture(t)
	cmp := QueryByRelevance.compare()

	once := Sort(d.Queries, cmp, Ascending)
	twice := Sort(once, cmp, Ascending)
	assert.Equal(t, once, twice)
}

func TestSort_ToggleRoundTrip(t *testing.T) {
	c, _ := fixture(t)
	base := PerformanceTable(c)
	st := filter.Default()

	state := DefaultPerformanceSort
	before := Performance(base, st, BucketAll, state)

	state = state.Toggle(PerfByAverage)
	assert.Equal(t, Ascending, state.Dir)
	flipped := Performance(base, st, BucketAll, state)
	assert.NotEqual(t, before, flipped)

	state = state.Toggle(PerfByAverage)
	assert.Equal(t, before, Performance(base, st, BucketAll, state))
}

func TestSortState_NewKeyStartsDescending(t *testing.T) {
	s := SortState[PerformanceKey]{Key: PerfByAverage, Dir: Ascending}
	s = s.Toggle(PerfByName)
	assert.Equal(t, PerfByName, s.Key)
	assert.Equal(t, Descending, s.Dir)
}

func TestSort_StableTies(t *testing.T) {
	type rec struct {
		name  string
		score int
	}
	in := []rec{{"a", 1}, {"b", 2}, {"c", 1}, {"d", 2}}
	byScore := Numeric(func(r rec) int { return r.score })

	asc := Sort(in, byScore, Ascending)
	assert.Equal(t, []rec{{"a", 1}, {"c", 1}, {"b", 2}, {"d", 2}}, asc)

	desc := Sort(in, byScore, Descending)
	assert.Equal(t, []rec{{"b", 2}, {"d", 2}, {"a", 1}, {"c", 1}}, desc)

	assert.Equal(t, []rec{{"a", 1}, {"b", 2}, {"c", 1}, {"d", 2}}, in, "input must not be mutated")
}

func TestSort_TextIsLexicographic(t *testing.T) {
	c, _ := fixture(t)
	rows := Performance(PerformanceTable(c), filter.Default(), BucketAll, SortState[PerformanceKey]{Key: PerfByName, Dir: Ascending})
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	assert.True(t, slices.IsSorted(names))
}

func TestScatter_LowEngagementExcludesHighScores(t *testing.T) {
	_, d := fixture(t)
	st := filter.Default()
	st.Engagement = filter.Some(filter.EngagementLow)

	points := Scatter(d.Engagement, st)
	require.NotEmpty(t, points)
	for _, p := range points {
		assert.Less(t, p.Engagement, 50)
	}
}

func TestScatter_TopicAndStudents(t *testing.T) {
	c, d := fixture(t)
	st := withStudents("Emma Johnson", "Noah Davis")
	st.Topic = filter.Some("Photosynthesis")

	points := Scatter(d.Engagement, st)
	assert.Len(t, points, 2)

	avgs := TopicAverages(c, points)
	require.Len(t, avgs, 1)
	assert.Equal(t, "Photosynthesis", avgs[0].Label)
	assert.Equal(t, 2, avgs[0].Count)
}

func TestPerformanceBuckets(t *testing.T) {
	rows := []PerformanceRow{
		{Name: "hi", Average: 85, Improvement: 2},
		{Name: "mid", Average: 70, Improvement: -1},
		{Name: "low", Average: 69, Improvement: 0},
	}
	names := func(rs []PerformanceRow) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Name)
		}
		return out
	}
	sort := SortState[PerformanceKey]{Key: PerfByName, Dir: Ascending}
	st := filter.Default()

	assert.Equal(t, []string{"hi"}, names(Performance(rows, st, BucketHigh, sort)))
	assert.Equal(t, []string{"mid"}, names(Performance(rows, st, BucketMedium, sort)))
	assert.Equal(t, []string{"low"}, names(Performance(rows, st, BucketLow, sort)))
	assert.Equal(t, []string{"mid"}, names(Performance(rows, st, BucketDeclining, sort)))
	assert.Len(t, Performance(rows, st, BucketAll, sort), 3)
}

func TestSummaries_EmptySubset(t *testing.T) {
	p := SummarizePerformance(nil)
	assert.False(t, p.ClassAverage.OK)
	assert.False(t, p.AvgImprovement.OK)

	q := SummarizeQueries(nil)
	assert.Zero(t, q.Total)
	assert.False(t, q.AvgRelevance.OK)
	assert.False(t, q.ConfusionRate.OK)

	s := SummarizeScans(nil)
	assert.False(t, s.AvgComprehension.OK)

	n := SummarizeNotes(nil)
	assert.False(t, n.AvgWords.OK)
	assert.False(t, n.ExcellentShare.OK)
}

func TestSummarizePerformance(t *testing.T) {
	rows := []PerformanceRow{
		{Average: 92, Improvement: 5},
		{Average: 65, Improvement: -4},
		{Average: 88, Improvement: 3},
	}
	s := SummarizePerformance(rows)
	assert.True(t, s.ClassAverage.OK)
	assert.InDelta(t, 81.67, s.ClassAverage.Value, 0.01)
	assert.Equal(t, 1, s.TopPerformers)
	assert.Equal(t, 1, s.NeedsSupport)
	assert.InDelta(t, 1.33, s.AvgImprovement.Value, 0.01)
}

func TestQueries_FiltersAndMode(t *testing.T) {
	_, d := fixture(t)
	st := filter.Default()
	st.LearningMode = filter.ModeSelfLearning

	for _, q := range Queries(d.Queries, st, QueriesUnresolved, DefaultQuerySort) {
		assert.Equal(t, filter.ModeSelfLearning, q.LearningMode)
		assert.False(t, q.Resolved)
	}
	for _, q := range Queries(d.Queries, filter.Default(), QueriesConfused, DefaultQuerySort) {
		assert.True(t, q.Confused)
	}
}

func TestInvalidCombinationYieldsEmpty(t *testing.T) {
	_, d := fixture(t)
	st := withStudents("Nobody")
	st.Topic = filter.Some("Astrophysics")
	assert.Empty(t, Queries(d.Queries, st, QueriesAll, DefaultQuerySort))
	assert.Empty(t, Scatter(d.Engagement, st))
}

func TestSummarizeBlooms(t *testing.T) {
	c, _ := fixture(t)
	b := SummarizeBlooms(c.Blooms)
	assert.InDelta(t, 75.0, b.LowerOrder.Value, 0.01)
	assert.InDelta(t, 47.0, b.HigherOrder.Value, 0.01)
	assert.Equal(t, "Understand", b.Highest.Level)
	assert.Equal(t, "Create", b.Lowest.Level)
}

func TestCountLevels(t *testing.T) {
	pts := []dataset.EngagementPoint{{Engagement: 40}, {Engagement: 55}, {Engagement: 70}, {Engagement: 95}}
	got := CountLevels(pts)
	assert.Equal(t, LevelCounts{Low: 1, Medium: 1, High: 2}, got)
	assert.Equal(t, 4, got.Total())
}

func TestSummarizeDashboard(t *testing.T) {
	c, d := fixture(t)
	s := SummarizeDashboard(c, d, withStudents("Emma Johnson"))
	assert.Equal(t, 1, s.Students)
	assert.InDelta(t, 92.0, s.AvgScore.Value, 0.001)
	assert.Equal(t, 45*3/2, s.Queries)
	assert.Equal(t, 67, s.Notes)
}

func TestCycle(t *testing.T) {
	assert.Equal(t, BucketHigh, Cycle(PerformanceBuckets, BucketAll))
	assert.Equal(t, BucketAll, Cycle(PerformanceBuckets, BucketDeclining))
	assert.Equal(t, BucketAll, Cycle(PerformanceBuckets, PerformanceBucket("nope")))
	assert.Equal(t, "", Cycle([]string(nil), "x"))
}
