package insight

import (
	"fmt"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/derive"
)

// Thresholds for the behaviour notes.
const (
	ManyDoubts = 8
	ManyVideos = 10
	FewDoubts  = 5
)

var kindLabels = map[catalog.SegmentKind]string{
	catalog.SegmentReading: "reading",
	catalog.SegmentWriting: "writing",
	catalog.SegmentApp:     "using apps",
	catalog.SegmentQueries: "asking questions",
	catalog.SegmentIdle:    "idle",
}

// Timeline explains one student's study session.
func Timeline(t catalog.Timeline, sum derive.TimelineSummary) []Insight {
	if len(sum.ByKind) == 0 {
		return NoData("study sessions")
	}
	top := sum.ByKind[0]
	out := []Insight{{
		Kind:  Info,
		Title: "Time use",
		Text:  fmt.Sprintf("Spent most time %s (%d minutes of %d).", kindLabels[top.Kind], top.Minutes, sum.TotalMinutes),
	}}
	if n := sum.ConfusionEvents; n > 0 {
		out = append(out, Insight{
			Kind:  Warning,
			Title: "Confusion",
			Text:  fmt.Sprintf("%d confusion %s detected.", n, plural(n, "event", "events")),
		})
	}
	if n := sum.InactivityGaps; n > 0 {
		out = append(out, Insight{
			Kind:  Warning,
			Title: "Inactivity",
			Text:  fmt.Sprintf("%d %s of extended inactivity.", n, plural(n, "period", "periods")),
		})
	}
	switch {
	case sum.QueryMinutes > 30:
		out = append(out, Insight{
			Kind:  Critical,
			Title: "Query volume",
			Text:  fmt.Sprintf("%d minutes spent on questions. %s may need additional support.", sum.QueryMinutes, t.Student),
		})
	case sum.QueryMinutes > 0:
		out = append(out, Insight{
			Kind:  Success,
			Title: "Participation",
			Text:  "Active participation with questions.",
		})
	}
	return out
}

// Study explains the class self-study table.
func Study(acts []catalog.StudyActivity) []Insight {
	if len(acts) == 0 {
		return NoData("study records")
	}
	var askers, gaps, quiet, struggling []string
	for _, a := range acts {
		if a.Doubts >= ManyDoubts {
			askers = append(askers, a.Name)
			if a.Videos >= ManyVideos {
				gaps = append(gaps, a.Name)
			}
		}
		if a.Doubts < FewDoubts && a.Videos < ManyVideos {
			quiet = append(quiet, a.Name)
		}
		if a.Status == catalog.StatusStruggling {
			struggling = append(struggling, a.Name)
		}
	}

	var out []Insight
	if len(struggling) > 0 {
		out = append(out, Insight{
			Kind:  Critical,
			Title: "Recommendation",
			Text:  fmt.Sprintf("Focus additional support on %s, who show high struggle patterns.", joinNames(struggling, 4)),
		})
	}
	if len(askers) > 0 {
		out = append(out, Insight{
			Kind:  Warning,
			Title: "Frequent doubts",
			Text: fmt.Sprintf("%s asked %d or more doubts. They are engaging but may need targeted help on specific topics.",
				joinNames(askers, 4), ManyDoubts),
		})
	}
	if len(gaps) > 0 {
		out = append(out, Insight{
			Kind:  Info,
			Title: "Self-learning gaps",
			Text:  fmt.Sprintf("%s pair heavy video use with many doubts, a sign of conceptual gaps.", joinNames(gaps, 4)),
		})
	}
	if len(quiet) > 0 {
		out = append(out, Insight{
			Kind:  Info,
			Title: "Quiet learners",
			Text:  fmt.Sprintf("%s asked few doubts and watched few videos. Check whether they need motivation or are already confident.", joinNames(quiet, 4)),
		})
	}
	if len(out) == 0 {
		out = append(out, Insight{Kind: Success, Title: "On track", Text: "No struggle patterns in the selected students."})
	}
	return out
}
