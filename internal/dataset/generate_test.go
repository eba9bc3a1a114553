package dataset

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/filter"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func generate(t *testing.T, seed uint64) (*catalog.Catalog, *Dataset) {
	t.Helper()
	c, err := catalog.Embedded()
	require.NoError(t, err)
	return c, Generate(c, Options{Seed: seed, Now: testNow})
}

func TestGenerate_Deterministic(t *testing.T) {
	_, a := generate(t, 42)
	_, b := generate(t, 42)
	assert.Equal(t, a, b)

	_, other := generate(t, 43)
	assert.NotEqual(t, a.Queries, other.Queries)
}

func TestGenerate_Counts(t *testing.T) {
	c, d := generate(t, 7)

	var queries, notes, scans int
	for _, s := range c.Students {
		queries += s.QueriesAsked * 3 / 2
		notes += s.NotesCreated
		scans += s.ContentScanned / 3
	}
	assert.Len(t, d.Queries, queries)
	assert.Len(t, d.Notes, notes)
	assert.Len(t, d.Scans, scans)
	assert.Len(t, d.Engagement, len(c.Students)*len(c.Topics))
	assert.GreaterOrEqual(t, len(d.Correlation), len(c.Students)*5)
	assert.LessOrEqual(t, len(d.Correlation), len(c.Students)*15)
}

func TestGenerate_Ranges(t *testing.T) {
	c, d := generate(t, 99)
	earliest := testNow.AddDate(0, 0, -historyDays)

	for _, q := range d.Queries {
		assert.GreaterOrEqual(t, q.Relevance, 70)
		assert.Less(t, q.Relevance, 100)
		assert.GreaterOrEqual(t, q.TimeSpent, 60)
		assert.Less(t, q.TimeSpent, 360)
		assert.GreaterOrEqual(t, q.Repetitions, 1)
		assert.LessOrEqual(t, q.Repetitions, 5)
		assert.NotEqual(t, filter.ModeAll, q.LearningMode)
		assert.Contains(t, c.QueryTemplates[q.Topic], q.Text)
		assert.True(t, q.Timestamp.After(earliest), "timestamp %v", q.Timestamp)
		h := q.Timestamp.Hour()
		assert.True(t, h >= 8 && h < 20, "hour %d", h)
	}
	for _, n := range d.Notes {
		assert.GreaterOrEqual(t, n.NoteCount, 1)
		assert.LessOrEqual(t, n.NoteCount, 10)
		assert.GreaterOrEqual(t, n.WordCount, 50)
		assert.Less(t, n.WordCount, 700)
	}
	for _, s := range d.Scans {
		assert.GreaterOrEqual(t, s.Pages, 1)
		assert.LessOrEqual(t, s.Pages, 8)
		assert.GreaterOrEqual(t, s.Minutes, s.Pages*2)
		assert.LessOrEqual(t, s.Minutes, s.Pages*6)
		assert.GreaterOrEqual(t, s.Comprehension, 0)
		assert.LessOrEqual(t, s.Comprehension, 100)
	}
	for _, p := range d.Engagement {
		assert.GreaterOrEqual(t, p.Engagement, 40)
		assert.LessOrEqual(t, p.Engagement, 95)
	}
}

func TestGenerate_FixedModesAreKept(t *testing.T) {
	c, d := generate(t, 3)
	for _, q := range d.Queries {
		s, ok := c.Student(q.StudentName)
		require.True(t, ok)
		switch s.LearningMode {
		case catalog.StudentClassroom:
			assert.Equal(t, filter.ModeClassroom, q.LearningMode)
		case catalog.StudentSelfLearning:
			assert.Equal(t, filter.ModeSelfLearning, q.LearningMode)
		}
	}
}

func TestGenerate_IDs(t *testing.T) {
	_, d := generate(t, 1)
	require.NotEmpty(t, d.Queries)
	assert.Equal(t, "q0001", d.Queries[0].ID)
	assert.Equal(t, "n0001", d.Notes[0].ID)
	assert.Equal(t, "c0001", d.Scans[0].ID)
}

func TestDifficultyFor(t *testing.T) {
	tests := []struct {
		level catalog.ConfusionLevel
		roll  float64
		want  Difficulty
	}{
		{catalog.ConfusionHigh, 0.59, Hard},
		{catalog.ConfusionHigh, 0.6, Medium},
		{catalog.ConfusionHigh, 0.95, Easy},
		{catalog.ConfusionMedium, 0.29, Hard},
		{catalog.ConfusionMedium, 0.5, Medium},
		{catalog.ConfusionMedium, 0.7, Easy},
		{catalog.ConfusionLow, 0.05, Hard},
		{catalog.ConfusionLow, 0.3, Medium},
		{catalog.ConfusionLow, 0.4, Easy},
	}
	for _, tt := range tests {
		if got := difficultyFor(tt.level, tt.roll); got != tt.want {
			t.Errorf("difficultyFor(%s, %v) = %s, want %s", tt.level, tt.roll, got, tt.want)
		}
	}
}

func TestQualityFor_TopStudentsNeverPoor(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		q := qualityFor(95, r)
		if q != Excellent && q != Good {
			t.Fatalf("qualityFor(95) = %s", q)
		}
	}
}

func TestGenerate_EmptyCatalog(t *testing.T) {
	d := Generate(&catalog.Catalog{}, Options{Seed: 1, Now: testNow})
	assert.Empty(t, d.Queries)
	assert.Empty(t, d.Notes)
	assert.Empty(t, d.Scans)
	assert.Empty(t, d.Engagement)
}
