package insight

import (
	"fmt"

	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/derive"
)

// EngagementInput is the scatter grid selection to explain.
type EngagementInput struct {
	Points   []dataset.EngagementPoint
	Topics   []string // catalog order
	Students []string // catalog order
}

// Engagement analyses the student by topic engagement grid.
func Engagement(in EngagementInput) []Insight {
	if len(in.Points) == 0 {
		return NoData("engagement points")
	}

	topics := derive.AverageBy(in.Points, in.Topics, func(p dataset.EngagementPoint) string { return p.Topic })
	students := derive.AverageBy(in.Points, in.Students, func(p dataset.EngagementPoint) string { return p.StudentName })

	var out []Insight
	lowest, highest := extremes(topics)

	if lowest.Count > 0 && lowest.Mean < 50 {
		out = append(out, Insight{
			Kind:  Critical,
			Title: "Low topic engagement",
			Text: fmt.Sprintf("%s shows critically low engagement (%s). Try interactive labs or simplified content.",
				lowest.Label, pct(lowest.Mean)),
		})
	}

	var struggling, excelling []string
	for _, s := range students {
		switch {
		case s.Mean < 50:
			struggling = append(struggling, s.Label)
		case s.Mean >= 80:
			excelling = append(excelling, s.Label)
		}
	}
	if len(struggling) > 0 {
		out = append(out, Insight{
			Kind:  Warning,
			Title: "Students at risk",
			Text: fmt.Sprintf("%d %s showing consistently low engagement: %s. Consider one-on-one sessions or personalised learning paths.",
				len(struggling), plural(len(struggling), "student", "students"), joinNames(struggling, 5)),
		})
	}

	if highest.Label != lowest.Label {
		out = append(out, Insight{
			Kind:  Success,
			Title: "Strongest topic",
			Text: fmt.Sprintf("%s (%s) shows strong engagement. Reuse its teaching approach for %s.",
				highest.Label, pct(highest.Mean), lowest.Label),
		})
	}

	if len(excelling) > 0 {
		out = append(out, Insight{
			Kind:  Info,
			Title: "Ready for more",
			Text: fmt.Sprintf("%d high-engagement %s could take on advanced material or peer tutoring.",
				len(excelling), plural(len(excelling), "student", "students")),
		})
	}

	levels := derive.CountLevels(in.Points)
	lowShare := float64(levels.Low) / float64(levels.Total()) * 100
	switch {
	case lowShare > 30:
		out = append(out, Insight{
			Kind:  Critical,
			Title: "Class-wide engagement",
			Text:  fmt.Sprintf("%s of engagement points are below 50%%. Review the class engagement strategy.", pct(lowShare)),
		})
	case lowShare > 15:
		out = append(out, Insight{
			Kind:  Warning,
			Title: "Class-wide engagement",
			Text:  fmt.Sprintf("%s low engagement detected. Monitor the trend and consider supplementary resources.", pct(lowShare)),
		})
	}

	if len(out) == 0 {
		out = append(out, Insight{
			Kind:  Success,
			Title: "Healthy engagement",
			Text:  "Engagement is healthy across the selected topics and students. Keep the current teaching strategy.",
		})
	}
	return out
}

// extremes returns the lowest and highest averages. Ties keep the earlier
// entry.
func extremes(avgs []derive.Average) (lowest, highest derive.Average) {
	if len(avgs) == 0 {
		return
	}
	lowest, highest = avgs[0], avgs[0]
	for _, a := range avgs[1:] {
		if a.Mean < lowest.Mean {
			lowest = a
		}
		if a.Mean > highest.Mean {
			highest = a
		}
	}
	return
}
