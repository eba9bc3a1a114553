package derive

import (
	"slices"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/filter"
)

// ConfusionBand filters signatures by confusion clusters.
type ConfusionBand string

const (
	ConfusionAll    ConfusionBand = "all"
	ConfusionHigh   ConfusionBand = "high"
	ConfusionMedium ConfusionBand = "medium"
	ConfusionLow    ConfusionBand = "low"
)

// ConfusionBands lists the bands in cycle order.
var ConfusionBands = []ConfusionBand{ConfusionAll, ConfusionHigh, ConfusionMedium, ConfusionLow}

// BandOf classifies a cluster count: high 5+, medium 3-4, low under 3.
func BandOf(clusters int) ConfusionBand {
	switch {
	case clusters >= 5:
		return ConfusionHigh
	case clusters >= 3:
		return ConfusionMedium
	default:
		return ConfusionLow
	}
}

// DifficultyBand keeps signatures with at least one query at a level.
type DifficultyBand string

const (
	DifficultyAll          DifficultyBand = "all"
	DifficultyBasic        DifficultyBand = "basic"
	DifficultyIntermediate DifficultyBand = "intermediate"
	DifficultyAdvanced     DifficultyBand = "advanced"
)

// DifficultyBands lists the bands in cycle order.
var DifficultyBands = []DifficultyBand{DifficultyAll, DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced}

func (d DifficultyBand) match(l catalog.QueryLevels) bool {
	switch d {
	case DifficultyBasic:
		return l.Basic > 0
	case DifficultyIntermediate:
		return l.Intermediate > 0
	case DifficultyAdvanced:
		return l.Advanced > 0
	default:
		return true
	}
}

// SignatureKey is a sortable column of the signature table.
type SignatureKey string

const (
	SignatureName      SignatureKey = "name"
	SignatureVolume    SignatureKey = "volume"
	SignatureConfusion SignatureKey = "confusion"
	SignatureRelevance SignatureKey = "relevance"
)

// SignatureKeys lists the sort keys in cycle order.
var SignatureKeys = []SignatureKey{SignatureName, SignatureVolume, SignatureConfusion, SignatureRelevance}

// DefaultSignatureSort puts the busiest askers first.
var DefaultSignatureSort = SortState[SignatureKey]{Key: SignatureVolume, Dir: Descending}

var signatureCompare = map[SignatureKey]Compare[catalog.QuerySignature]{
	SignatureName:      Text(func(s catalog.QuerySignature) string { return s.Name }),
	SignatureVolume:    Numeric(func(s catalog.QuerySignature) int { return s.Volume }),
	SignatureConfusion: Numeric(func(s catalog.QuerySignature) int { return s.ConfusionClusters }),
	SignatureRelevance: Numeric(func(s catalog.QuerySignature) int { return s.Relevance }),
}

// SignatureFilter is the tab-local narrowing of the signature table.
type SignatureFilter struct {
	Confusion  ConfusionBand
	Difficulty DifficultyBand
}

// Signatures narrows signatures to the student selection and the tab
// filters, then sorts them. Signatures carry no topic or learning mode, so
// only the student selection applies from st.
func Signatures(sigs []catalog.QuerySignature, st filter.State, f SignatureFilter, sort SortState[SignatureKey]) []catalog.QuerySignature {
	out := ByStudents(sigs, st.Students)
	out = Where(out, func(s catalog.QuerySignature) bool {
		if f.Confusion != "" && f.Confusion != ConfusionAll && BandOf(s.ConfusionClusters) != f.Confusion {
			return false
		}
		return f.Difficulty.match(s.Levels)
	})
	return Sort(out, signatureCompare[sort.Key], sort.Dir)
}

// Mix is a signature's difficulty split in whole percent. The three values
// add up to 100 when the signature has any levelled queries.
type Mix struct {
	Basic, Intermediate, Advanced int
}

// MixOf splits the levelled queries of s into percentages.
func MixOf(s catalog.QuerySignature) Mix {
	total := s.Levels.Total()
	if total == 0 {
		return Mix{}
	}
	b := s.Levels.Basic * 100 / total
	i := s.Levels.Intermediate * 100 / total
	return Mix{Basic: b, Intermediate: i, Advanced: 100 - b - i}
}

// SignatureSummary is the stat row and difficulty breakdown of the tab.
type SignatureSummary struct {
	Students      int
	TotalQueries  int
	AvgRelevance  Stat
	AvgRepetition Stat
	HighConfusion int
	Levels        catalog.QueryLevels
}

// SummarizeSignatures aggregates the rows shown in the table.
func SummarizeSignatures(sigs []catalog.QuerySignature) SignatureSummary {
	sum := SignatureSummary{
		Students:      len(sigs),
		TotalQueries:  Sum(sigs, func(s catalog.QuerySignature) int { return s.Volume }),
		AvgRelevance:  NewStat(Mean(sigs, func(s catalog.QuerySignature) float64 { return float64(s.Relevance) })),
		AvgRepetition: NewStat(Mean(sigs, func(s catalog.QuerySignature) float64 { return float64(s.Repetition) })),
		HighConfusion: Count(sigs, func(s catalog.QuerySignature) bool { return BandOf(s.ConfusionClusters) == ConfusionHigh }),
	}
	for _, s := range sigs {
		sum.Levels.Basic += s.Levels.Basic
		sum.Levels.Intermediate += s.Levels.Intermediate
		sum.Levels.Advanced += s.Levels.Advanced
	}
	return sum
}

// KindMinutes is the time spent on one kind of activity.
type KindMinutes struct {
	Kind    catalog.SegmentKind
	Minutes int
}

// TimelineSummary rolls up one study session.
type TimelineSummary struct {
	TotalMinutes int
	// ByKind is sorted by minutes, largest first; ties keep legend order.
	ByKind          []KindMinutes
	QueryMinutes    int
	ConfusionEvents int
	InactivityGaps  int
}

// SummarizeTimeline totals a session by activity and counts its events.
// Repeated queries count as confusion events.
func SummarizeTimeline(t catalog.Timeline) TimelineSummary {
	totals := make(map[catalog.SegmentKind]int)
	var sum TimelineSummary
	for _, s := range t.Segments {
		totals[s.Kind] += s.Minutes
		sum.TotalMinutes += s.Minutes
	}
	for _, k := range catalog.SegmentKinds {
		if m := totals[k]; m > 0 {
			sum.ByKind = append(sum.ByKind, KindMinutes{Kind: k, Minutes: m})
		}
	}
	sum.ByKind = Sort(sum.ByKind, Numeric(func(k KindMinutes) int { return k.Minutes }), Descending)
	sum.QueryMinutes = totals[catalog.SegmentQueries]

	sum.ConfusionEvents = Count(t.Events, func(e catalog.Event) bool {
		return slices.Contains([]catalog.EventKind{catalog.EventConfusionSpike, catalog.EventRepeatedQuery}, e.Kind)
	})
	sum.InactivityGaps = Count(t.Events, func(e catalog.Event) bool { return e.Kind == catalog.EventInactivity })
	return sum
}
