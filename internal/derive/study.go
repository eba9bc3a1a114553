package derive

import (
	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/filter"
)

// StudySummary is the class roll-up of self-study activity.
type StudySummary struct {
	Students   int
	Doubts     int
	Videos     int
	Hours      float64
	Struggling int
	Improving  int
	Confident  int
}

// StudyActivity keeps the selected students' records in catalog order.
func StudyActivity(acts []catalog.StudyActivity, st filter.State) []catalog.StudyActivity {
	return ByStudents(acts, st.Students)
}

// SummarizeStudy totals doubts and videos and counts students per status.
func SummarizeStudy(acts []catalog.StudyActivity) StudySummary {
	status := func(s catalog.StudyStatus) int {
		return Count(acts, func(a catalog.StudyActivity) bool { return a.Status == s })
	}
	sum := StudySummary{
		Students:   len(acts),
		Doubts:     Sum(acts, func(a catalog.StudyActivity) int { return a.Doubts }),
		Videos:     Sum(acts, func(a catalog.StudyActivity) int { return a.Videos }),
		Struggling: status(catalog.StatusStruggling),
		Improving:  status(catalog.StatusImproving),
		Confident:  status(catalog.StatusConfident),
	}
	for _, a := range acts {
		sum.Hours += a.Hours
	}
	return sum
}

// TopicStruggles narrows hotspots to the selected topic and orders them by
// average doubts, highest first.
func TopicStruggles(s []catalog.TopicStruggle, st filter.State) []catalog.TopicStruggle {
	out := ByTopic(s, st.Topic)
	return Sort(out, Numeric(func(t catalog.TopicStruggle) float64 { return t.AvgDoubts }), Descending)
}
