package insight

import (
	"fmt"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/filter"
)

// Performance explains the gradebook rows on screen. A single student
// gets their strengths and struggles when the catalog record is given.
func Performance(rows []derive.PerformanceRow, st filter.State, student *catalog.Student) []Insight {
	if len(rows) == 0 {
		return NoData("students")
	}
	sum := derive.SummarizePerformance(rows)

	if len(st.Students) == 1 && len(rows) == 1 {
		r := rows[0]
		out := []Insight{{
			Kind:  gradeKind(r.Average),
			Title: r.Name,
			Text: fmt.Sprintf("Average %d%% (grade %s), assignments %d%%, quizzes %d%%, participation %d%%. Trend is %s (%+d).",
				r.Average, r.Grade, r.Assignments, r.Quizzes, r.Participation, r.Trend, r.Improvement),
		}}
		if student != nil && len(student.Strengths) > 0 {
			out = append(out, Insight{Kind: Success, Title: "Strengths", Text: joinNames(student.Strengths, 5)})
		}
		if student != nil && len(student.Struggles) > 0 {
			out = append(out, Insight{Kind: Warning, Title: "Struggles", Text: joinNames(student.Struggles, 5)})
		}
		return out
	}

	out := []Insight{{
		Kind:  Info,
		Title: "Class average",
		Text: fmt.Sprintf("%d %s average %.1f%% with a mean change of %+.1f points.",
			len(rows), plural(len(rows), "student", "students"), sum.ClassAverage.Value, sum.AvgImprovement.Value),
	}}
	if sum.TopPerformers > 0 {
		out = append(out, Insight{
			Kind:  Success,
			Title: "Top performers",
			Text:  fmt.Sprintf("%d %s at 90%% or above.", sum.TopPerformers, plural(sum.TopPerformers, "student is", "students are")),
		})
	}
	if sum.NeedsSupport > 0 {
		out = append(out, Insight{
			Kind:  Critical,
			Title: "Needs support",
			Text:  fmt.Sprintf("%d %s below 70%%. Schedule targeted review sessions.", sum.NeedsSupport, plural(sum.NeedsSupport, "student is", "students are")),
		})
	}
	var declining []string
	for _, r := range rows {
		if r.Improvement < 0 {
			declining = append(declining, r.Name)
		}
	}
	if len(declining) > 0 {
		out = append(out, Insight{
			Kind:  Warning,
			Title: "Declining",
			Text:  fmt.Sprintf("Scores are dropping for %s.", joinNames(declining, 5)),
		})
	}
	return out
}

func gradeKind(avg int) Kind {
	switch {
	case avg >= 90:
		return Success
	case avg < 70:
		return Critical
	default:
		return Info
	}
}

// Queries explains the query table and the Bloom's breakdown.
func Queries(qs []dataset.Query, topics []string, blooms []catalog.BloomLevel) []Insight {
	var out []Insight
	if len(qs) == 0 {
		out = NoData("queries")
	} else {
		sum := derive.SummarizeQueries(qs)
		out = append(out, Insight{
			Kind:  queryKind(sum.ConfusionRate),
			Title: "Query volume",
			Text: fmt.Sprintf("%d queries with %s average relevance; %s confused and %s resolved.",
				sum.Total, pct(sum.AvgRelevance.Value), pct(sum.ConfusionRate.Value), pct(sum.ResolutionRate.Value)),
		})
		if t := top(derive.CountBy(qs, topics, func(q dataset.Query) string { return q.Topic })); t.Count > 0 {
			out = append(out, Insight{
				Kind:  Warning,
				Title: "Hotspot",
				Text:  fmt.Sprintf("%s has the most questions (%d).", t.Label, t.Count),
			})
		}
		hard := derive.Count(qs, func(q dataset.Query) bool { return q.Difficulty == dataset.Hard && q.Repetitions >= 3 })
		if hard > 0 {
			out = append(out, Insight{
				Kind:  Critical,
				Title: "Repeated hard questions",
				Text:  fmt.Sprintf("%d hard %s asked three or more times. Revisit these concepts in class.", hard, plural(hard, "question was", "questions were")),
			})
		}
	}

	if len(blooms) > 0 {
		b := derive.SummarizeBlooms(blooms)
		out = append(out, Insight{
			Kind:  Info,
			Title: "Lower-order thinking",
			Text: fmt.Sprintf("Average %.1f%% across recall, understand and apply. %s queries lead at %d%%.",
				b.LowerOrder.Value, b.Highest.Level, b.Highest.Score),
		})
		if b.HigherOrder.OK {
			out = append(out, Insight{
				Kind:  Warning,
				Title: "Higher-order thinking",
				Text: fmt.Sprintf("Average %.1f%% across analyze, evaluate and create. %s queries are lowest at %d%%.",
					b.HigherOrder.Value, b.Lowest.Level, b.Lowest.Score),
			})
		}
	}
	return out
}

// Content explains scanning activity.
func Content(scans []dataset.Scan, topics []string) []Insight {
	if len(scans) == 0 {
		return NoData("scanning sessions")
	}
	sum := derive.SummarizeScans(scans)
	counts := derive.CountBy(scans, topics, func(s dataset.Scan) string { return s.Topic })

	out := []Insight{{
		Kind:  Info,
		Title: "Scanning activity",
		Text: fmt.Sprintf("%d sessions covering %d pages in %d minutes%s.",
			sum.Total, sum.Pages, sum.Minutes, comprehension(sum.AvgComprehension)),
	}}

	var notStarted []string
	seen := make(map[string]bool, len(counts))
	for _, c := range counts {
		seen[c.Label] = true
	}
	for _, t := range topics {
		if !seen[t] {
			notStarted = append(notStarted, t)
		}
	}
	if len(notStarted) > 0 && len(notStarted) < len(topics) {
		out = append(out, Insight{
			Kind:  Warning,
			Title: "Not started",
			Text:  fmt.Sprintf("%d %s not been opened: %s.", len(notStarted), plural(len(notStarted), "topic has", "topics have"), joinNames(notStarted, 4)),
		})
	}

	weak := derive.Count(scans, derive.ComprehensionWeak.Match)
	if share := float64(weak) / float64(len(scans)) * 100; share > 20 {
		out = append(out, Insight{
			Kind:  Critical,
			Title: "Low comprehension",
			Text:  fmt.Sprintf("%s of sessions scored under 60%% comprehension. Pair reading with guided questions.", pct(share)),
		})
	}
	return out
}

// Notes explains note-taking behaviour.
func Notes(notes []dataset.Note, topics []string) []Insight {
	if len(notes) == 0 {
		return NoData("notes")
	}
	sum := derive.SummarizeNotes(notes)
	counts := derive.CountBy(notes, topics, func(n dataset.Note) string { return n.Topic })

	out := []Insight{{
		Kind:  Info,
		Title: "Note-taking",
		Text: fmt.Sprintf("%d notes averaging %.0f words; %s rated excellent.",
			sum.Total, sum.AvgWords.Value, pct(sum.ExcellentShare.Value)),
	}}
	if t := top(counts); t.Count > 0 {
		out = append(out, Insight{
			Kind:  Info,
			Title: "Most noted topic",
			Text:  fmt.Sprintf("%s has the most notes (%d), a sign students review it often.", t.Label, t.Count),
		})
	}
	poor := derive.Count(notes, func(n dataset.Note) bool { return n.Quality == dataset.Poor || n.Quality == dataset.Fair })
	if share := float64(poor) / float64(len(notes)) * 100; share > 30 {
		out = append(out, Insight{
			Kind:  Warning,
			Title: "Recommendation",
			Text:  fmt.Sprintf("%s of notes are fair or poor. Offer note-taking templates or structured guides.", pct(share)),
		})
	}
	return out
}
