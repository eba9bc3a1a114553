package insight

import (
	"fmt"

	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/filter"
)

// LearningInput is the scoped activity behind the dashboard tiles.
type LearningInput struct {
	State   filter.State
	Topics  []string // catalog order
	Queries []dataset.Query
	Notes   []dataset.Note
	Scans   []dataset.Scan
}

// Learning explains note, scan and query activity for the selection. It
// reads differently for the whole class, one student and a group.
func Learning(in LearningInput) []Insight {
	if len(in.Queries) == 0 && len(in.Notes) == 0 && len(in.Scans) == 0 {
		return NoData("learning records")
	}

	noteTopic := top(derive.CountBy(in.Notes, in.Topics, func(n dataset.Note) string { return n.Topic }))
	queryTopic := top(derive.CountBy(in.Queries, in.Topics, func(q dataset.Query) string { return q.Topic }))
	scans := derive.SummarizeScans(in.Scans)
	queries := derive.SummarizeQueries(in.Queries)

	var out []Insight
	switch len(in.State.Students) {
	case 0:
		out = append(out, Insight{
			Kind:  Info,
			Title: "Class overview",
			Text: fmt.Sprintf("The class logged %d queries, %d notes and %d scanning sessions in %s.",
				len(in.Queries), len(in.Notes), len(in.Scans), in.State.Subject),
		})
		if queryTopic.Count > 0 {
			out = append(out, Insight{
				Kind:  Warning,
				Title: "Most questioned topic",
				Text: fmt.Sprintf("%s drew the most questions (%d). Plan a clarification session before moving on.",
					queryTopic.Label, queryTopic.Count),
			})
		}
	case 1:
		name := in.State.Students[0]
		out = append(out,
			Insight{
				Kind:  Info,
				Title: "Note-taking pattern",
				Text:  fmt.Sprintf("%s has written %d notes%s.", name, len(in.Notes), mostOn(noteTopic)),
			},
			Insight{
				Kind:  Info,
				Title: "Content engagement",
				Text: fmt.Sprintf("%s scanned %d pages over %d sessions%s.",
					name, scans.Pages, scans.Total, comprehension(scans.AvgComprehension)),
			},
			Insight{
				Kind:  queryKind(queries.ConfusionRate),
				Title: "Query behaviour",
				Text: fmt.Sprintf("%s asked %d questions%s%s.",
					name, queries.Total, mostOn(queryTopic), confusion(queries.ConfusionRate)),
			},
		)
	default:
		out = append(out,
			Insight{
				Kind:  Info,
				Title: "Group note-taking",
				Text: fmt.Sprintf("The %d selected students wrote %d notes%s.",
					len(in.State.Students), len(in.Notes), mostOn(noteTopic)),
			},
			Insight{
				Kind:  Info,
				Title: "Group content use",
				Text: fmt.Sprintf("Together they scanned %d pages over %d sessions%s.",
					scans.Pages, scans.Total, comprehension(scans.AvgComprehension)),
			},
			Insight{
				Kind:  queryKind(queries.ConfusionRate),
				Title: "Group query patterns",
				Text: fmt.Sprintf("The group asked %d questions%s%s.",
					queries.Total, mostOn(queryTopic), confusion(queries.ConfusionRate)),
			},
		)
		if queryTopic.Count > 0 {
			out = append(out, Insight{
				Kind:  Success,
				Title: "Recommendation",
				Text:  fmt.Sprintf("These students share questions on %s. A study group on it could support peer learning.", queryTopic.Label),
			})
		}
	}

	if topic, ok := in.State.Topic.Get(); ok {
		out = append(out, Insight{
			Kind:  Info,
			Title: "Topic focus",
			Text:  fmt.Sprintf("Figures are limited to %s.", topic),
		})
	}
	if level, ok := in.State.Engagement.Get(); ok {
		out = append(out, Insight{
			Kind:  Info,
			Title: "Engagement filter",
			Text:  fmt.Sprintf("The engagement grid shows %s engagement points only.", level),
		})
	}
	return out
}

func top(groups []derive.GroupCount) derive.GroupCount {
	var best derive.GroupCount
	for _, g := range groups {
		if g.Count > best.Count {
			best = g
		}
	}
	return best
}

func mostOn(g derive.GroupCount) string {
	if g.Count == 0 {
		return ""
	}
	return fmt.Sprintf(", most on %s (%d)", g.Label, g.Count)
}

func comprehension(s derive.Stat) string {
	if !s.OK {
		return ""
	}
	return fmt.Sprintf(" with %s average comprehension", pct(s.Value))
}

func confusion(s derive.Stat) string {
	if !s.OK {
		return ""
	}
	return fmt.Sprintf("; %s were flagged as confused", pct(s.Value))
}

func queryKind(confusionRate derive.Stat) Kind {
	if confusionRate.OK && confusionRate.Value >= 40 {
		return Warning
	}
	return Info
}
