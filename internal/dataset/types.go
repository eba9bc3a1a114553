package dataset

import (
	"time"

	"github.com/classlens/classlens/internal/filter"
)

// TimestampLayout is how record timestamps are shown and exported.
const TimestampLayout = "2006-01-02 15:04"

// Difficulty is the perceived difficulty of a student query.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Rank orders difficulties from easiest to hardest.
func (d Difficulty) Rank() int {
	switch d {
	case Easy:
		return 0
	case Medium:
		return 1
	case Hard:
		return 2
	}
	return -1
}

// Quality grades a student's note.
type Quality string

const (
	Excellent Quality = "Excellent"
	Good      Quality = "Good"
	Fair      Quality = "Fair"
	Poor      Quality = "Poor"
)

// Qualities lists note qualities from best to worst.
var Qualities = []Quality{Excellent, Good, Fair, Poor}

// Rank orders qualities from worst to best.
func (q Quality) Rank() int {
	switch q {
	case Poor:
		return 0
	case Fair:
		return 1
	case Good:
		return 2
	case Excellent:
		return 3
	}
	return -1
}

// Query is a question a student asked the study assistant.
type Query struct {
	ID           string
	StudentID    string
	StudentName  string
	Topic        string
	Text         string
	Difficulty   Difficulty
	Repetitions  int
	Relevance    int
	Timestamp    time.Time
	Confused     bool
	TimeSpent    int // seconds
	Resolved     bool
	LearningMode filter.LearningMode
}

// Note is a set of notes a student wrote on a topic.
type Note struct {
	ID           string
	StudentID    string
	StudentName  string
	Topic        string
	NoteCount    int
	Quality      Quality
	Timestamp    time.Time
	WordCount    int
	LearningMode filter.LearningMode
}

// Scan is a content-scanning session.
type Scan struct {
	ID            string
	StudentID     string
	StudentName   string
	Topic         string
	Pages         int
	Minutes       int
	Comprehension int
	Timestamp     time.Time
	LearningMode  filter.LearningMode
}

// EngagementPoint is one cell of the student by topic engagement grid.
type EngagementPoint struct {
	StudentName string
	Topic       string
	TopicIndex  int
	Engagement  int
}

// CorrelationPoint pairs engagement and performance for a student on a day.
type CorrelationPoint struct {
	StudentID   string
	StudentName string
	Topic       string
	Engagement  int
	Performance int
	Date        time.Time
}

// Record accessors let the derive package filter every dataset the same way.

func (q Query) Student() string              { return q.StudentName }
func (q Query) TopicName() string            { return q.Topic }
func (q Query) Mode() filter.LearningMode    { return q.LearningMode }
func (n Note) Student() string               { return n.StudentName }
func (n Note) TopicName() string             { return n.Topic }
func (n Note) Mode() filter.LearningMode     { return n.LearningMode }
func (s Scan) Student() string               { return s.StudentName }
func (s Scan) TopicName() string             { return s.Topic }
func (s Scan) Mode() filter.LearningMode     { return s.LearningMode }
func (p EngagementPoint) Student() string    { return p.StudentName }
func (p EngagementPoint) TopicName() string  { return p.Topic }
func (p CorrelationPoint) Student() string   { return p.StudentName }
func (p CorrelationPoint) TopicName() string { return p.Topic }
