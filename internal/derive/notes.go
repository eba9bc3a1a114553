package derive

import (
	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/filter"
)

// QualityFilter is the notes view's secondary filter. The zero value
// keeps every note.
type QualityFilter struct {
	Quality dataset.Quality
}

// QualityFilters lists filters in cycle order.
var QualityFilters = []QualityFilter{
	{},
	{Quality: dataset.Excellent},
	{Quality: dataset.Good},
	{Quality: dataset.Fair},
	{Quality: dataset.Poor},
}

func (f QualityFilter) String() string {
	if f.Quality == "" {
		return "all"
	}
	return string(f.Quality)
}

// Match reports whether n passes the filter.
func (f QualityFilter) Match(n dataset.Note) bool {
	return f.Quality == "" || n.Quality == f.Quality
}

// NoteKey is a sortable note column.
type NoteKey string

const (
	NoteByStudent NoteKey = "student"
	NoteByTopic   NoteKey = "topic"
	NoteByQuality NoteKey = "quality"
	NoteByWords   NoteKey = "words"
	NoteByDate    NoteKey = "date"
)

// NoteKeys lists sort keys in cycle order.
var NoteKeys = []NoteKey{NoteByStudent, NoteByTopic, NoteByQuality, NoteByWords, NoteByDate}

// DefaultNoteSort shows the most recent notes first.
var DefaultNoteSort = SortState[NoteKey]{Key: NoteByDate, Dir: Descending}

func (k NoteKey) compare() Compare[dataset.Note] {
	switch k {
	case NoteByStudent:
		return Text(func(n dataset.Note) string { return n.StudentName })
	case NoteByTopic:
		return Text(func(n dataset.Note) string { return n.Topic })
	case NoteByQuality:
		return Numeric(func(n dataset.Note) int { return n.Quality.Rank() })
	case NoteByWords:
		return Numeric(func(n dataset.Note) int { return n.WordCount })
	default:
		return Numeric(func(n dataset.Note) int64 { return n.Timestamp.Unix() })
	}
}

// Notes derives the rows the notes view shows.
func Notes(notes []dataset.Note, st filter.State, f QualityFilter, sort SortState[NoteKey]) []dataset.Note {
	out := Scope(notes, st)
	out = Where(out, f.Match)
	return Sort(out, sort.Key.compare(), sort.Dir)
}

// NoteSummary is the set of tiles above the notes table.
type NoteSummary struct {
	Total          int
	Pages          int
	AvgWords       Stat
	ExcellentShare Stat
}

// SummarizeNotes aggregates notes.
func SummarizeNotes(notes []dataset.Note) NoteSummary {
	return NoteSummary{
		Total:          len(notes),
		Pages:          Sum(notes, func(n dataset.Note) int { return n.NoteCount }),
		AvgWords:       NewStat(Mean(notes, func(n dataset.Note) float64 { return float64(n.WordCount) })),
		ExcellentShare: NewStat(Percent(notes, func(n dataset.Note) bool { return n.Quality == dataset.Excellent })),
	}
}

// NotesByQuality counts notes per quality from best to worst.
func NotesByQuality(notes []dataset.Note) []GroupCount {
	order := make([]string, len(dataset.Qualities))
	for i, q := range dataset.Qualities {
		order[i] = string(q)
	}
	return CountBy(notes, order, func(n dataset.Note) string { return string(n.Quality) })
}
