package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classlens/classlens/internal/catalog"
)

func signatureNames(sigs []catalog.QuerySignature) []string {
	out := make([]string, len(sigs))
	for i, s := range sigs {
		out[i] = s.Name
	}
	return out
}

func TestBandOf(t *testing.T) {
	assert.Equal(t, ConfusionLow, BandOf(0))
	assert.Equal(t, ConfusionLow, BandOf(2))
	assert.Equal(t, ConfusionMedium, BandOf(3))
	assert.Equal(t, ConfusionMedium, BandOf(4))
	assert.Equal(t, ConfusionHigh, BandOf(5))
}

func TestSignatures_DefaultSort(t *testing.T) {
	c, _ := fixture(t)
	rows := Signatures(c.QuerySignatures, withStudents(), SignatureFilter{}, DefaultSignatureSort)
	require.Len(t, rows, 8)
	assert.Equal(t, "Noah Davis", rows[0].Name)
	assert.Equal(t, "Lucas Anderson", rows[7].Name)
}

func TestSignatures_Filters(t *testing.T) {
	c, _ := fixture(t)
	byName := SortState[SignatureKey]{Key: SignatureName, Dir: Ascending}

	high := Signatures(c.QuerySignatures, withStudents(), SignatureFilter{Confusion: ConfusionHigh}, byName)
	assert.Equal(t, []string{"Isabella Taylor", "Noah Davis"}, signatureNames(high))

	medium := Signatures(c.QuerySignatures, withStudents(), SignatureFilter{Confusion: ConfusionMedium}, byName)
	assert.Equal(t, []string{"Jackson Martinez", "Liam Smith", "Sophia Wilson"}, signatureNames(medium))

	picked := Signatures(c.QuerySignatures, withStudents("Emma Johnson", "Ava Garcia"), SignatureFilter{}, byName)
	assert.Equal(t, []string{"Emma Johnson"}, signatureNames(picked), "students without a signature drop out")

	sigs := []catalog.QuerySignature{
		{Name: "A", Volume: 4, Levels: catalog.QueryLevels{Basic: 4}},
		{Name: "B", Volume: 3, Levels: catalog.QueryLevels{Basic: 1, Advanced: 2}},
	}
	adv := Signatures(sigs, withStudents(), SignatureFilter{Difficulty: DifficultyAdvanced}, byName)
	assert.Equal(t, []string{"B"}, signatureNames(adv))
}

func TestSignatures_SortKeys(t *testing.T) {
	c, _ := fixture(t)
	rel := Signatures(c.QuerySignatures, withStudents(), SignatureFilter{}, SortState[SignatureKey]{Key: SignatureRelevance, Dir: Descending})
	assert.Equal(t, "Lucas Anderson", rel[0].Name)

	conf := Signatures(c.QuerySignatures, withStudents(), SignatureFilter{}, SortState[SignatureKey]{Key: SignatureConfusion, Dir: Ascending})
	assert.Equal(t, 1, conf[0].ConfusionClusters)
	assert.Equal(t, 6, conf[len(conf)-1].ConfusionClusters)
}

func TestMixOf(t *testing.T) {
	m := MixOf(catalog.QuerySignature{Levels: catalog.QueryLevels{Basic: 15, Intermediate: 18, Advanced: 12}})
	assert.Equal(t, Mix{Basic: 33, Intermediate: 40, Advanced: 27}, m)
	assert.Equal(t, Mix{}, MixOf(catalog.QuerySignature{}))
}

func TestSummarizeSignatures(t *testing.T) {
	c, _ := fixture(t)
	s := SummarizeSignatures(c.QuerySignatures)
	assert.Equal(t, 8, s.Students)
	assert.Equal(t, 409, s.TotalQueries)
	assert.Equal(t, 2, s.HighConfusion)
	assert.Equal(t, s.TotalQueries, s.Levels.Total())
	assert.InDelta(t, 89.25, s.AvgRelevance.Value, 0.001)

	empty := SummarizeSignatures(nil)
	assert.False(t, empty.AvgRelevance.OK)
	assert.False(t, empty.AvgRepetition.OK)
}

func TestSummarizeTimeline(t *testing.T) {
	c, _ := fixture(t)
	noah, ok := c.Timeline("Noah Davis")
	require.True(t, ok)
	s := SummarizeTimeline(noah)
	assert.Equal(t, 170, s.TotalMinutes)
	assert.Equal(t, 50, s.QueryMinutes)
	assert.Equal(t, KindMinutes{Kind: catalog.SegmentQueries, Minutes: 50}, s.ByKind[0])
	assert.Equal(t, 2, s.ConfusionEvents)
	assert.Equal(t, 1, s.InactivityGaps)

	sum := 0
	for _, k := range s.ByKind {
		sum += k.Minutes
	}
	assert.Equal(t, s.TotalMinutes, sum)
}

func TestStudyRollup(t *testing.T) {
	c, _ := fixture(t)
	acts := StudyActivity(c.StudyActivity, withStudents("Emma Johnson", "Olivia Brown"))
	s := SummarizeStudy(acts)
	assert.InDelta(t, 5.3, s.Hours, 0.001)
	s.Hours = 0
	assert.Equal(t, StudySummary{Students: 2, Doubts: 8, Videos: 18, Improving: 1, Confident: 1}, s)

	hot := TopicStruggles(c.TopicStruggles, withStudents())
	require.Len(t, hot, 5)
	assert.Equal(t, "DNA & Genetics", hot[0].Topic)
}
