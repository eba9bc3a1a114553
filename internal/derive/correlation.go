package derive

import (
	"math"

	"github.com/classlens/classlens/internal/dataset"
)

// HighMark splits engagement and performance scores into high and low
// halves for the correlation quadrants.
const HighMark = 70

// Quadrants counts correlation points by engagement and performance band.
type Quadrants struct {
	Thriving int // high engagement, high performance
	Coasting int // low engagement, high performance
	Striving int // high engagement, low performance
	AtRisk   int // low engagement, low performance
}

// CorrelationSummary describes how engagement tracks performance.
type CorrelationSummary struct {
	Points         int
	AvgEngagement  Stat
	AvgPerformance Stat
	// Coefficient is Pearson's r. It is unset for fewer than two points or
	// when either score never varies.
	Coefficient Stat
	Quadrants   Quadrants
}

// SummarizeCorrelation rolls up points already narrowed by Correlation.
func SummarizeCorrelation(points []dataset.CorrelationPoint) CorrelationSummary {
	eng := func(p dataset.CorrelationPoint) float64 { return float64(p.Engagement) }
	perf := func(p dataset.CorrelationPoint) float64 { return float64(p.Performance) }

	sum := CorrelationSummary{
		Points:         len(points),
		AvgEngagement:  NewStat(Mean(points, eng)),
		AvgPerformance: NewStat(Mean(points, perf)),
	}
	for _, p := range points {
		highE, highP := p.Engagement >= HighMark, p.Performance >= HighMark
		switch {
		case highE && highP:
			sum.Quadrants.Thriving++
		case highP:
			sum.Quadrants.Coasting++
		case highE:
			sum.Quadrants.Striving++
		default:
			sum.Quadrants.AtRisk++
		}
	}

	if len(points) < 2 {
		return sum
	}
	me, mp := sum.AvgEngagement.Value, sum.AvgPerformance.Value
	var cov, ve, vp float64
	for _, p := range points {
		de, dp := eng(p)-me, perf(p)-mp
		cov += de * dp
		ve += de * de
		vp += dp * dp
	}
	if ve == 0 || vp == 0 {
		return sum
	}
	sum.Coefficient = Stat{Value: cov / math.Sqrt(ve*vp), OK: true}
	return sum
}

// Strength names a correlation coefficient, e.g. "moderate positive".
func Strength(r Stat) string {
	if !r.OK {
		return "n/a"
	}
	a := math.Abs(r.Value)
	var band string
	switch {
	case a >= 0.7:
		band = "strong"
	case a >= 0.4:
		band = "moderate"
	case a >= 0.2:
		band = "weak"
	default:
		return "no clear link"
	}
	if r.Value < 0 {
		return band + " negative"
	}
	return band + " positive"
}

// Lowest returns the n averages with the smallest mean, lowest first. Ties
// keep their input order.
func Lowest(avgs []Average, n int) []Average {
	out := Sort(avgs, Numeric(func(a Average) float64 { return a.Mean }), Ascending)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
