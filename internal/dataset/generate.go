package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/filter"
)

// Options control synthetic generation. The same Seed and Now always
// produce the same Dataset.
type Options struct {
	Seed uint64
	Now  time.Time
}

// Dataset is every generated record set. It is built once at startup and
// only filtered afterwards.
type Dataset struct {
	Seed        uint64
	Queries     []Query
	Notes       []Note
	Scans       []Scan
	Engagement  []EngagementPoint
	Correlation []CorrelationPoint
}

// Independent streams so adding records to one set never shifts another.
const (
	streamQueries uint64 = iota + 1
	streamNotes
	streamScans
	streamEngagement
	streamCorrelation
)

// historyDays is how far back generated timestamps reach.
const historyDays = 30

// Generate builds all datasets from the catalog.
func Generate(c *catalog.Catalog, opts Options) *Dataset {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	g := generator{catalog: c, now: opts.Now}
	return &Dataset{
		Seed:        opts.Seed,
		Queries:     g.queries(newRand(opts.Seed, streamQueries)),
		Notes:       g.notes(newRand(opts.Seed, streamNotes)),
		Scans:       g.scans(newRand(opts.Seed, streamScans)),
		Engagement:  g.engagement(newRand(opts.Seed, streamEngagement)),
		Correlation: g.correlation(newRand(opts.Seed, streamCorrelation)),
	}
}

func newRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

type generator struct {
	catalog *catalog.Catalog
	now     time.Time
}

func (g generator) queries(r *rand.Rand) []Query {
	topics := g.catalog.TemplateTopics()
	if len(topics) == 0 {
		return nil
	}
	var out []Query
	for _, s := range g.catalog.Students {
		n := int(math.Floor(float64(s.QueriesAsked) * 1.5))
		for range n {
			topic := topics[r.IntN(len(topics))]
			templates := g.catalog.QueryTemplates[topic]
			out = append(out, Query{
				ID:           fmt.Sprintf("q%04d", len(out)+1),
				StudentID:    s.ID,
				StudentName:  s.Name,
				Topic:        topic,
				Text:         templates[r.IntN(len(templates))],
				Difficulty:   difficultyFor(s.ConfusionLevel, r.Float64()),
				Repetitions:  repetitionsFor(s.ConfusionLevel, r),
				Relevance:    r.IntN(30) + 70,
				Confused:     r.Float64() < confusedChance(s.ConfusionLevel),
				TimeSpent:    r.IntN(300) + 60,
				Resolved:     r.Float64() < 0.85,
				Timestamp:    g.timestamp(r),
				LearningMode: modeFor(s.LearningMode, r),
			})
		}
	}
	return out
}

func difficultyFor(level catalog.ConfusionLevel, roll float64) Difficulty {
	var hard, medium float64
	switch level {
	case catalog.ConfusionHigh:
		hard, medium = 0.6, 0.9
	case catalog.ConfusionMedium:
		hard, medium = 0.3, 0.7
	default:
		hard, medium = 0.1, 0.4
	}
	switch {
	case roll < hard:
		return Hard
	case roll < medium:
		return Medium
	default:
		return Easy
	}
}

func repetitionsFor(level catalog.ConfusionLevel, r *rand.Rand) int {
	switch level {
	case catalog.ConfusionHigh:
		return r.IntN(5) + 1
	case catalog.ConfusionMedium:
		return r.IntN(3) + 1
	default:
		return r.IntN(2) + 1
	}
}

func confusedChance(level catalog.ConfusionLevel) float64 {
	switch level {
	case catalog.ConfusionHigh:
		return 0.6
	case catalog.ConfusionMedium:
		return 0.3
	default:
		return 0.1
	}
}

// modeFor resolves a student's recorded mode to the mode of one record.
// Students who learn both ways get a coin flip.
func modeFor(m catalog.StudentMode, r *rand.Rand) filter.LearningMode {
	switch m {
	case catalog.StudentClassroom:
		return filter.ModeClassroom
	case catalog.StudentSelfLearning:
		return filter.ModeSelfLearning
	}
	if r.Float64() < 0.5 {
		return filter.ModeClassroom
	}
	return filter.ModeSelfLearning
}

func (g generator) notes(r *rand.Rand) []Note {
	topics := g.catalog.TopicNames()
	if len(topics) == 0 {
		return nil
	}
	var out []Note
	for _, s := range g.catalog.Students {
		for range s.NotesCreated {
			topic := topics[r.IntN(len(topics))]
			q := qualityFor(s.AverageScore, r)
			out = append(out, Note{
				ID:           fmt.Sprintf("n%04d", len(out)+1),
				StudentID:    s.ID,
				StudentName:  s.Name,
				Topic:        topic,
				NoteCount:    r.IntN(10) + 1,
				Quality:      q,
				Timestamp:    g.timestamp(r),
				WordCount:    wordCountFor(q, r),
				LearningMode: modeFor(s.LearningMode, r),
			})
		}
	}
	return out
}

func qualityFor(average int, r *rand.Rand) Quality {
	switch {
	case average >= 90:
		if r.Float64() < 0.7 {
			return Excellent
		}
		return Good
	case average >= 80:
		if r.Float64() < 0.5 {
			return Good
		}
		if r.Float64() < 0.8 {
			return Excellent
		}
		return Fair
	case average >= 70:
		if r.Float64() < 0.6 {
			return Good
		}
		return Fair
	default:
		if r.Float64() < 0.4 {
			return Fair
		}
		if r.Float64() < 0.7 {
			return Good
		}
		return Poor
	}
}

func wordCountFor(q Quality, r *rand.Rand) int {
	switch q {
	case Excellent:
		return r.IntN(400) + 300
	case Good:
		return r.IntN(300) + 200
	case Fair:
		return r.IntN(200) + 100
	default:
		return r.IntN(100) + 50
	}
}

func (g generator) scans(r *rand.Rand) []Scan {
	topics := g.catalog.TopicNames()
	if len(topics) == 0 {
		return nil
	}
	var out []Scan
	for _, s := range g.catalog.Students {
		for range s.ContentScanned / 3 {
			pages := r.IntN(8) + 1
			out = append(out, Scan{
				ID:            fmt.Sprintf("c%04d", len(out)+1),
				StudentID:     s.ID,
				StudentName:   s.Name,
				Topic:         topics[r.IntN(len(topics))],
				Pages:         pages,
				Minutes:       pages * (r.IntN(5) + 2),
				Comprehension: clamp(s.AverageScore + r.IntN(20) - 10),
				Timestamp:     g.timestamp(r),
				LearningMode:  modeFor(s.LearningMode, r),
			})
		}
	}
	return out
}

// engagement fills the student by topic grid with scores in [40, 95].
func (g generator) engagement(r *rand.Rand) []EngagementPoint {
	topics := g.catalog.TopicNames()
	out := make([]EngagementPoint, 0, len(g.catalog.Students)*len(topics))
	for _, s := range g.catalog.Students {
		for i, topic := range topics {
			out = append(out, EngagementPoint{
				StudentName: s.Name,
				Topic:       topic,
				TopicIndex:  i,
				Engagement:  int(math.Round(40 + r.Float64()*55)),
			})
		}
	}
	return out
}

// correlation draws 5-15 engagement/performance pairs per student that
// stay within 10 points of the student's own averages.
func (g generator) correlation(r *rand.Rand) []CorrelationPoint {
	topics := g.catalog.TopicNames()
	if len(topics) == 0 {
		return nil
	}
	var out []CorrelationPoint
	for _, s := range g.catalog.Students {
		n := r.IntN(11) + 5
		for range n {
			out = append(out, CorrelationPoint{
				StudentID:   s.ID,
				StudentName: s.Name,
				Topic:       topics[r.IntN(len(topics))],
				Engagement:  clamp(s.Engagement + r.IntN(20) - 10),
				Performance: clamp(s.AverageScore + r.IntN(20) - 10),
				Date:        g.day(r.IntN(historyDays)),
			})
		}
	}
	return out
}

func (g generator) day(daysAgo int) time.Time {
	y, m, d := g.now.AddDate(0, 0, -daysAgo).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, g.now.Location())
}

// timestamp picks a minute between 08:00 and 19:59 on one of the last 30 days.
func (g generator) timestamp(r *rand.Rand) time.Time {
	day := g.day(r.IntN(historyDays))
	return day.Add(time.Duration(r.IntN(12)+8)*time.Hour + time.Duration(r.IntN(60))*time.Minute)
}

func clamp(v int) int {
	return max(0, min(100, v))
}
