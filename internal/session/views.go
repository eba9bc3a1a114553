package session

import (
	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/filter"
	"github.com/classlens/classlens/internal/insight"
)

// DashboardView is everything the overview page shows.
type DashboardView struct {
	Summary       derive.DashboardSummary
	Attendance    []catalog.AttendanceDay
	Weekly        []catalog.WeekScore
	Activities    []catalog.Activity
	Scatter       []dataset.EngagementPoint
	Levels        derive.LevelCounts
	TopicAverages []derive.Average
	// LeastEngaged is the students with the lowest grid engagement.
	LeastEngaged []derive.Average
	Correlation  []dataset.CorrelationPoint
	Link         derive.CorrelationSummary
	Study        []catalog.StudyActivity
	StudySummary derive.StudySummary
	Struggles    []catalog.TopicStruggle
	Behavior     []insight.Insight
	Engagement   []insight.Insight
	Learning     []insight.Insight
}

// LeastEngagedCount is how many students the dashboard flags for follow-up.
const LeastEngagedCount = 5

// Dashboard derives the overview for st.
func (s *Session) Dashboard(st filter.State) DashboardView {
	c := s.Catalog
	scatter := derive.Scatter(s.Data.Engagement, st)
	corr := derive.Correlation(s.Data.Correlation, st)
	study := derive.StudyActivity(c.StudyActivity, st)

	students := c.StudentNames()
	if !st.AllStudents() {
		students = names(derive.SelectedStudents(c, st))
	}

	return DashboardView{
		Summary:       derive.SummarizeDashboard(c, s.Data, st),
		Attendance:    c.Attendance,
		Weekly:        c.WeeklyPerformance,
		Activities:    c.ActivitiesFor(st.Students, st.Subject, st.Class),
		Scatter:       scatter,
		Levels:        derive.CountLevels(scatter),
		TopicAverages: derive.TopicAverages(c, scatter),
		LeastEngaged:  derive.Lowest(derive.StudentAverages(c, scatter), LeastEngagedCount),
		Correlation:   corr,
		Link:          derive.SummarizeCorrelation(corr),
		Study:         study,
		StudySummary:  derive.SummarizeStudy(study),
		Struggles:     derive.TopicStruggles(c.TopicStruggles, st),
		Behavior:      insight.Study(study),
		Engagement: insight.Engagement(insight.EngagementInput{
			Points:   scatter,
			Topics:   c.TopicNames(),
			Students: students,
		}),
		Learning: insight.Learning(insight.LearningInput{
			State:   st,
			Topics:  c.TopicNames(),
			Queries: derive.Scope(s.Data.Queries, st),
			Notes:   derive.Scope(s.Data.Notes, st),
			Scans:   derive.Scope(s.Data.Scans, st),
		}),
	}
}

func names(students []catalog.Student) []string {
	out := make([]string, len(students))
	for i, s := range students {
		out[i] = s.Name
	}
	return out
}

// PerformanceView is the gradebook page.
type PerformanceView struct {
	Rows     []derive.PerformanceRow
	Summary  derive.PerformanceSummary
	Insights []insight.Insight
}

// Performance derives the gradebook for st.
func (s *Session) Performance(st filter.State, bucket derive.PerformanceBucket, sort derive.SortState[derive.PerformanceKey]) PerformanceView {
	rows := derive.Performance(s.gradebook, st, bucket, sort)

	var student *catalog.Student
	if len(st.Students) == 1 {
		if rec, ok := s.Catalog.Student(st.Students[0]); ok {
			student = &rec
		}
	}
	return PerformanceView{
		Rows:     rows,
		Summary:  derive.SummarizePerformance(rows),
		Insights: insight.Performance(rows, st, student),
	}
}

// QueriesView is the query analysis page.
type QueriesView struct {
	Rows     []dataset.Query
	Summary  derive.QuerySummary
	ByTopic  []derive.GroupCount
	Blooms   []catalog.BloomLevel
	Bloom    derive.BloomSummary
	Insights []insight.Insight
}

// Queries derives the query table for st.
func (s *Session) Queries(st filter.State, f derive.QueryFilter, sort derive.SortState[derive.QueryKey]) QueriesView {
	rows := derive.Queries(s.Data.Queries, st, f, sort)
	return QueriesView{
		Rows:     rows,
		Summary:  derive.SummarizeQueries(rows),
		ByTopic:  derive.QueriesByTopic(s.Catalog, rows),
		Blooms:   s.Catalog.Blooms,
		Bloom:    derive.SummarizeBlooms(s.Catalog.Blooms),
		Insights: insight.Queries(rows, s.Catalog.TopicNames(), s.Catalog.Blooms),
	}
}

// SignatureView is the query signature tab.
type SignatureView struct {
	Rows    []catalog.QuerySignature
	Summary derive.SignatureSummary
}

// Signatures derives the signature table for st.
func (s *Session) Signatures(st filter.State, f derive.SignatureFilter, sort derive.SortState[derive.SignatureKey]) SignatureView {
	rows := derive.Signatures(s.Catalog.QuerySignatures, st, f, sort)
	return SignatureView{
		Rows:    rows,
		Summary: derive.SummarizeSignatures(rows),
	}
}

// TimelineView is one student's session drill-down.
type TimelineView struct {
	Timeline catalog.Timeline
	Summary  derive.TimelineSummary
	Insights []insight.Insight
}

// Timeline derives the session drill-down for a student. It reports false
// when no session is recorded.
func (s *Session) Timeline(student string) (TimelineView, bool) {
	t, ok := s.Catalog.Timeline(student)
	if !ok {
		return TimelineView{}, false
	}
	sum := derive.SummarizeTimeline(t)
	return TimelineView{Timeline: t, Summary: sum, Insights: insight.Timeline(t, sum)}, true
}

// ContentView is the content scanning page.
type ContentView struct {
	Rows     []dataset.Scan
	Summary  derive.ScanSummary
	ByTopic  []derive.GroupCount
	Insights []insight.Insight
}

// Content derives the scan table for st.
func (s *Session) Content(st filter.State, b derive.ComprehensionBucket, sort derive.SortState[derive.ScanKey]) ContentView {
	rows := derive.Scans(s.Data.Scans, st, b, sort)
	return ContentView{
		Rows:     rows,
		Summary:  derive.SummarizeScans(rows),
		ByTopic:  derive.ScansByTopic(s.Catalog, rows),
		Insights: insight.Content(rows, s.Catalog.TopicNames()),
	}
}

// NotesView is the notes analysis page.
type NotesView struct {
	Rows      []dataset.Note
	Summary   derive.NoteSummary
	ByQuality []derive.GroupCount
	Insights  []insight.Insight
}

// Notes derives the note table for st.
func (s *Session) Notes(st filter.State, f derive.QualityFilter, sort derive.SortState[derive.NoteKey]) NotesView {
	rows := derive.Notes(s.Data.Notes, st, f, sort)
	return NotesView{
		Rows:      rows,
		Summary:   derive.SummarizeNotes(rows),
		ByQuality: derive.NotesByQuality(rows),
		Insights:  insight.Notes(rows, s.Catalog.TopicNames()),
	}
}
