package catalog

// ConfusionLevel classifies how often a student reports being confused.
type ConfusionLevel string

const (
	ConfusionLow    ConfusionLevel = "Low"
	ConfusionMedium ConfusionLevel = "Medium"
	ConfusionHigh   ConfusionLevel = "High"
)

// StudentMode is the learning mode recorded for a student. Unlike the
// filter's mode it includes Both.
type StudentMode string

const (
	StudentClassroom    StudentMode = "Classroom"
	StudentSelfLearning StudentMode = "Self-Learning"
	StudentBoth         StudentMode = "Both"
)

// Trend is the direction of a student's recent scores.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendStable Trend = "stable"
	TrendDown   Trend = "down"
)

// Performance holds the gradebook breakdown for a student.
type Performance struct {
	Assignments   int   `yaml:"assignments" json:"assignments" validate:"min=0,max=100"`
	Quizzes       int   `yaml:"quizzes" json:"quizzes" validate:"min=0,max=100"`
	Participation int   `yaml:"participation" json:"participation" validate:"min=0,max=100"`
	Improvement   int   `yaml:"improvement" json:"improvement"`
	Trend         Trend `yaml:"trend" json:"trend" validate:"oneof=up stable down"`
}

// Student is a static catalog record.
type Student struct {
	ID             string         `yaml:"id" json:"id" validate:"required"`
	Name           string         `yaml:"name" json:"name" validate:"required"`
	GradeLevel     string         `yaml:"grade_level" json:"grade_level"`
	AverageScore   int            `yaml:"average_score" json:"average_score" validate:"min=0,max=100"`
	Engagement     int            `yaml:"engagement" json:"engagement" validate:"min=0,max=100"`
	QueriesAsked   int            `yaml:"queries_asked" json:"queries_asked" validate:"min=0"`
	NotesCreated   int            `yaml:"notes_created" json:"notes_created" validate:"min=0"`
	ContentScanned int            `yaml:"content_scanned" json:"content_scanned" validate:"min=0"`
	ConfusionLevel ConfusionLevel `yaml:"confusion_level" json:"confusion_level" validate:"oneof=Low Medium High"`
	LearningMode   StudentMode    `yaml:"learning_mode" json:"learning_mode" validate:"oneof=Classroom Self-Learning Both"`
	LastActive     string         `yaml:"last_active" json:"last_active"`
	Strengths      []string       `yaml:"strengths" json:"strengths"`
	Struggles      []string       `yaml:"struggles" json:"struggles"`
	Performance    Performance    `yaml:"performance" json:"performance"`
}

// Grade returns the letter grade for the student's average.
func (s Student) Grade() string {
	return Grade(s.AverageScore)
}

// Topic is a static per-topic aggregate.
type Topic struct {
	ID              string `yaml:"id" json:"id" validate:"required"`
	Name            string `yaml:"name" json:"name" validate:"required"`
	Category        string `yaml:"category" json:"category"`
	EngagementRate  int    `yaml:"engagement_rate" json:"engagement_rate" validate:"min=0,max=100"`
	AverageScore    int    `yaml:"average_score" json:"average_score" validate:"min=0,max=100"`
	TotalQueries    int    `yaml:"total_queries" json:"total_queries" validate:"min=0"`
	ConfusionRate   int    `yaml:"confusion_rate" json:"confusion_rate" validate:"min=0,max=100"`
	CompletionRate  int    `yaml:"completion_rate" json:"completion_rate" validate:"min=0,max=100"`
	StudentsEngaged int    `yaml:"students_engaged" json:"students_engaged" validate:"min=0"`
}

// TopicMeta describes where a topic sits in the syllabus.
type TopicMeta struct {
	Topic         string   `yaml:"topic" json:"topic" validate:"required"`
	Difficulty    string   `yaml:"difficulty" json:"difficulty" validate:"oneof=Basic Intermediate Advanced"`
	Unit          string   `yaml:"unit" json:"unit"`
	Prerequisites []string `yaml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
}

// AttendanceDay is one weekday of the attendance chart.
type AttendanceDay struct {
	Day     string `yaml:"day" json:"day"`
	Present int    `yaml:"present" json:"present" validate:"min=0"`
	Absent  int    `yaml:"absent" json:"absent" validate:"min=0"`
}

// WeekScore is one point of the weekly performance trend.
type WeekScore struct {
	Week  string `yaml:"week" json:"week"`
	Score int    `yaml:"score" json:"score" validate:"min=0,max=100"`
}

// BloomLevel is one level of the Bloom's taxonomy breakdown of queries.
type BloomLevel struct {
	Level       string `yaml:"level" json:"level"`
	Score       int    `yaml:"score" json:"score" validate:"min=0,max=100"`
	Description string `yaml:"description" json:"description"`
}

// Activity is a recent item in the dashboard feed.
type Activity struct {
	Student  string `yaml:"student" json:"student"`
	Activity string `yaml:"activity" json:"activity"`
	Score    int    `yaml:"score" json:"score" validate:"min=0,max=100"`
	When     string `yaml:"when" json:"when"`
	Subject  string `yaml:"subject" json:"subject"`
}

// Activities groups feed entries by what the filter is narrowed to.
type Activities struct {
	Students map[string][]Activity `yaml:"students" json:"students"`
	Subjects map[string][]Activity `yaml:"subjects" json:"subjects"`
	Classes  map[string][]Activity `yaml:"classes" json:"classes"`
	Default  []Activity            `yaml:"default" json:"default"`
}

// QueryLevels counts a student's queries by difficulty.
type QueryLevels struct {
	Basic        int `yaml:"basic" json:"basic" validate:"min=0"`
	Intermediate int `yaml:"intermediate" json:"intermediate" validate:"min=0"`
	Advanced     int `yaml:"advanced" json:"advanced" validate:"min=0"`
}

// Total is the sum of the three levels.
func (l QueryLevels) Total() int { return l.Basic + l.Intermediate + l.Advanced }

// QuerySignature is how a student asks questions over the term.
// Repetition counts re-asked questions; ConfusionClusters counts bursts of
// related queries in a short window.
type QuerySignature struct {
	Name              string      `yaml:"student" json:"student" validate:"required"`
	Volume            int         `yaml:"query_volume" json:"query_volume" validate:"min=0"`
	Levels            QueryLevels `yaml:"levels" json:"levels"`
	Repetition        int         `yaml:"repetition" json:"repetition" validate:"min=0"`
	Relevance         int         `yaml:"relevance" json:"relevance" validate:"min=0,max=100"`
	ConfusionClusters int         `yaml:"confusion_clusters" json:"confusion_clusters" validate:"min=0"`
	Trend             Trend       `yaml:"trend" json:"trend" validate:"oneof=up stable down"`
}

func (s QuerySignature) Student() string { return s.Name }

// SegmentKind is what a student was doing during a timeline segment.
type SegmentKind string

const (
	SegmentReading SegmentKind = "reading"
	SegmentWriting SegmentKind = "writing"
	SegmentApp     SegmentKind = "app-usage"
	SegmentQueries SegmentKind = "queries"
	SegmentIdle    SegmentKind = "idle"
)

// SegmentKinds lists segment kinds in legend order.
var SegmentKinds = []SegmentKind{SegmentReading, SegmentWriting, SegmentApp, SegmentQueries, SegmentIdle}

// EventKind classifies a timeline marker.
type EventKind string

const (
	EventConfusionSpike EventKind = "confusion-spike"
	EventRepeatedQuery  EventKind = "repeated-query"
	EventInactivity     EventKind = "inactivity"
	EventAchievement    EventKind = "achievement"
)

// Severity grades events and topic struggles.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Segment is one contiguous block of a session. Times are HH:MM.
type Segment struct {
	Kind    SegmentKind `yaml:"activity" json:"activity" validate:"oneof=reading writing app-usage queries idle"`
	Start   string      `yaml:"start" json:"start" validate:"required"`
	End     string      `yaml:"end" json:"end" validate:"required"`
	Minutes int         `yaml:"minutes" json:"minutes" validate:"min=1"`
	Details string      `yaml:"details" json:"details"`
}

// Event is a notable moment on a timeline.
type Event struct {
	Time        string    `yaml:"time" json:"time" validate:"required"`
	Kind        EventKind `yaml:"type" json:"type" validate:"oneof=confusion-spike repeated-query inactivity achievement"`
	Description string    `yaml:"description" json:"description"`
	Severity    Severity  `yaml:"severity" json:"severity" validate:"oneof=high medium low"`
}

// Timeline is one student's most recent study session.
type Timeline struct {
	Student  string    `yaml:"student" json:"student" validate:"required"`
	Segments []Segment `yaml:"segments" json:"segments" validate:"required,min=1,dive"`
	Events   []Event   `yaml:"events" json:"events" validate:"dive"`
}

// StudyStatus is the teacher-facing label for how a student is coping.
type StudyStatus string

const (
	StatusStruggling StudyStatus = "struggling"
	StatusImproving  StudyStatus = "improving"
	StatusConfident  StudyStatus = "confident"
)

// StudyActivity is a student's self-study record for the week.
type StudyActivity struct {
	Name           string      `yaml:"student" json:"student" validate:"required"`
	Doubts         int         `yaml:"doubts" json:"doubts" validate:"min=0"`
	Videos         int         `yaml:"videos" json:"videos" validate:"min=0"`
	Hours          float64     `yaml:"hours" json:"hours" validate:"min=0"`
	StrugglingWith []string    `yaml:"struggling_with" json:"struggling_with"`
	Status         StudyStatus `yaml:"status" json:"status" validate:"oneof=struggling improving confident"`
	LastActive     string      `yaml:"last_active" json:"last_active"`
}

func (a StudyActivity) Student() string { return a.Name }

// TopicStruggle is a class-wide difficulty hotspot.
type TopicStruggle struct {
	Topic            string   `yaml:"topic" json:"topic" validate:"required"`
	StudentsAffected int      `yaml:"students_affected" json:"students_affected" validate:"min=0"`
	AvgDoubts        float64  `yaml:"avg_doubts" json:"avg_doubts" validate:"min=0"`
	Severity         Severity `yaml:"severity" json:"severity" validate:"oneof=high medium low"`
}

func (s TopicStruggle) TopicName() string { return s.Topic }

// RecentQuestions holds the latest student questions per topic, newest
// first, with a fallback list when no topic is selected or known.
type RecentQuestions struct {
	Topics  map[string][]string `yaml:"topics" json:"topics" validate:"dive,min=1"`
	Default []string            `yaml:"default" json:"default"`
}
