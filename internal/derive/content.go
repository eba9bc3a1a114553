package derive

import (
	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/filter"
)

// ComprehensionBucket is the content view's secondary filter.
type ComprehensionBucket string

const (
	ComprehensionAll    ComprehensionBucket = "all"
	ComprehensionStrong ComprehensionBucket = "strong"
	ComprehensionFair   ComprehensionBucket = "fair"
	ComprehensionWeak   ComprehensionBucket = "weak"
)

// ComprehensionBuckets lists buckets in cycle order.
var ComprehensionBuckets = []ComprehensionBucket{ComprehensionAll, ComprehensionStrong, ComprehensionFair, ComprehensionWeak}

// Match reports whether a scan belongs to the bucket: strong >=80,
// fair 60-79, weak <60.
func (b ComprehensionBucket) Match(s dataset.Scan) bool {
	switch b {
	case ComprehensionStrong:
		return s.Comprehension >= 80
	case ComprehensionFair:
		return s.Comprehension >= 60 && s.Comprehension < 80
	case ComprehensionWeak:
		return s.Comprehension < 60
	default:
		return true
	}
}

// ScanKey is a sortable scan column.
type ScanKey string

const (
	ScanByStudent       ScanKey = "student"
	ScanByTopic         ScanKey = "topic"
	ScanByPages         ScanKey = "pages"
	ScanByMinutes       ScanKey = "minutes"
	ScanByComprehension ScanKey = "comprehension"
	ScanByDate          ScanKey = "date"
)

// ScanKeys lists sort keys in cycle order.
var ScanKeys = []ScanKey{ScanByStudent, ScanByTopic, ScanByPages, ScanByMinutes, ScanByComprehension, ScanByDate}

// DefaultScanSort shows the most recent sessions first.
var DefaultScanSort = SortState[ScanKey]{Key: ScanByDate, Dir: Descending}

func (k ScanKey) compare() Compare[dataset.Scan] {
	switch k {
	case ScanByStudent:
		return Text(func(s dataset.Scan) string { return s.StudentName })
	case ScanByTopic:
		return Text(func(s dataset.Scan) string { return s.Topic })
	case ScanByPages:
		return Numeric(func(s dataset.Scan) int { return s.Pages })
	case ScanByMinutes:
		return Numeric(func(s dataset.Scan) int { return s.Minutes })
	case ScanByComprehension:
		return Numeric(func(s dataset.Scan) int { return s.Comprehension })
	default:
		return Numeric(func(s dataset.Scan) int64 { return s.Timestamp.Unix() })
	}
}

// Scans derives the rows the content view shows.
func Scans(scans []dataset.Scan, st filter.State, b ComprehensionBucket, sort SortState[ScanKey]) []dataset.Scan {
	out := Scope(scans, st)
	out = Where(out, b.Match)
	return Sort(out, sort.Key.compare(), sort.Dir)
}

// ScanSummary is the set of tiles above the content table.
type ScanSummary struct {
	Total            int
	Pages            int
	Minutes          int
	AvgComprehension Stat
}

// SummarizeScans aggregates scans.
func SummarizeScans(scans []dataset.Scan) ScanSummary {
	return ScanSummary{
		Total:            len(scans),
		Pages:            Sum(scans, func(s dataset.Scan) int { return s.Pages }),
		Minutes:          Sum(scans, func(s dataset.Scan) int { return s.Minutes }),
		AvgComprehension: NewStat(Mean(scans, func(s dataset.Scan) float64 { return float64(s.Comprehension) })),
	}
}

// ScansByTopic counts scans per topic in catalog order.
func ScansByTopic(c *catalog.Catalog, scans []dataset.Scan) []GroupCount {
	return CountBy(scans, c.TopicNames(), func(s dataset.Scan) string { return s.Topic })
}
