// Package export writes the derived views to an xlsx workbook, one sheet
// per page.
package export

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/classlens/classlens/internal/dataset"
	"github.com/classlens/classlens/internal/derive"
	"github.com/classlens/classlens/internal/filter"
	"github.com/classlens/classlens/internal/nav"
	"github.com/classlens/classlens/internal/session"
)

// ErrUnknownView is returned for a view name that is not a page slug.
var ErrUnknownView = errors.New("unknown view")

// ParseViews resolves view slugs. An empty list selects every page.
// Repeated slugs yield one page.
func ParseViews(slugs []string) ([]nav.Page, error) {
	if len(slugs) == 0 {
		return nav.Pages, nil
	}
	pages := make([]nav.Page, 0, len(slugs))
	for _, slug := range slugs {
		p, ok := nav.Parse(strings.ToLower(strings.TrimSpace(slug)))
		if !ok {
			return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownView, slug, strings.Join(nav.Slugs(), ", "))
		}
		if !slices.Contains(pages, p) {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

// Workbook builds a workbook with a sheet for each page, derived under st
// with each page's default secondary filter and sort.
func Workbook(s *session.Session, st filter.State, pages []nav.Page) (*excelize.File, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	w := sheetWriter{f: f, header: header}
	for i, p := range pages {
		name := p.String()
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("add sheet %s: %w", name, err)
		}
		if err := w.page(s, st, p, name); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook and writes it to out.
func Write(out io.Writer, s *session.Session, st filter.State, pages []nav.Page) error {
	f, err := Workbook(s, st, pages)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type sheetWriter struct {
	f      *excelize.File
	header int
}

func (w sheetWriter) page(s *session.Session, st filter.State, p nav.Page, sheet string) error {
	var rows [][]any
	switch p {
	case nav.Dashboard:
		rows = dashboardRows(s, st)
	case nav.Performance:
		rows = performanceRows(s, st)
	case nav.Queries:
		rows = queryRows(s, st)
	case nav.Content:
		rows = contentRows(s, st)
	case nav.Notes:
		rows = noteRows(s, st)
	default:
		return fmt.Errorf("%w %d", ErrUnknownView, p)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := w.f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := w.f.SetRowStyle(sheet, 1, 1, w.header); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	if len(rows) > 0 {
		last, _ := excelize.ColumnNumberToName(len(rows[0]))
		if err := w.f.SetColWidth(sheet, "A", last, 18); err != nil {
			return fmt.Errorf("size %s columns: %w", sheet, err)
		}
	}
	return nil
}

func stat(s derive.Stat) any {
	if !s.OK {
		return ""
	}
	return s.Value
}

func dashboardRows(s *session.Session, st filter.State) [][]any {
	v := s.Dashboard(st)
	rows := [][]any{
		{"Metric", "Value"},
		{"Students", v.Summary.Students},
		{"Average score", stat(v.Summary.AvgScore)},
		{"Average engagement", stat(v.Summary.AvgEngagement)},
		{"Queries", v.Summary.Queries},
		{"Notes", v.Summary.Notes},
		{"Content scans", v.Summary.Scans},
		{"Low engagement points", v.Levels.Low},
		{"Medium engagement points", v.Levels.Medium},
		{"High engagement points", v.Levels.High},
		{},
		{"Topic", "Average engagement", "Points"},
	}
	for _, a := range v.TopicAverages {
		rows = append(rows, []any{a.Label, a.Mean, a.Count})
	}

	l := v.Link
	rows = append(rows,
		[]any{},
		[]any{"Engagement vs performance", "Value"},
		[]any{"Samples", l.Points},
		[]any{"Correlation (r)", stat(l.Coefficient)},
		[]any{"Strength", derive.Strength(l.Coefficient)},
		[]any{"Thriving", l.Quadrants.Thriving},
		[]any{"Coasting", l.Quadrants.Coasting},
		[]any{"Striving", l.Quadrants.Striving},
		[]any{"At risk", l.Quadrants.AtRisk},
		[]any{},
		[]any{"Least engaged student", "Average engagement", "Topics"},
	)
	for _, a := range v.LeastEngaged {
		rows = append(rows, []any{a.Label, a.Mean, a.Count})
	}
	return rows
}

func performanceRows(s *session.Session, st filter.State) [][]any {
	v := s.Performance(st, derive.BucketAll, derive.DefaultPerformanceSort)
	rows := [][]any{{"Student", "Average", "Assignments", "Quizzes", "Participation", "Improvement", "Grade", "Trend"}}
	for _, r := range v.Rows {
		rows = append(rows, []any{r.Name, r.Average, r.Assignments, r.Quizzes, r.Participation, r.Improvement, r.Grade, string(r.Trend)})
	}
	return rows
}

func queryRows(s *session.Session, st filter.State) [][]any {
	v := s.Queries(st, derive.QueriesAll, derive.DefaultQuerySort)
	rows := [][]any{{"ID", "Student", "Topic", "Query", "Difficulty", "Repetitions", "Relevance", "Confused", "Resolved", "Time Spent (s)", "Mode", "Timestamp"}}
	for _, q := range v.Rows {
		rows = append(rows, []any{q.ID, q.StudentName, q.Topic, q.Text, string(q.Difficulty), q.Repetitions, q.Relevance,
			q.Confused, q.Resolved, q.TimeSpent, string(q.LearningMode), q.Timestamp.Format(dataset.TimestampLayout)})
	}
	return rows
}

func contentRows(s *session.Session, st filter.State) [][]any {
	v := s.Content(st, derive.ComprehensionAll, derive.DefaultScanSort)
	rows := [][]any{{"ID", "Student", "Topic", "Pages", "Minutes", "Comprehension", "Mode", "Timestamp"}}
	for _, sc := range v.Rows {
		rows = append(rows, []any{sc.ID, sc.StudentName, sc.Topic, sc.Pages, sc.Minutes, sc.Comprehension,
			string(sc.LearningMode), sc.Timestamp.Format(dataset.TimestampLayout)})
	}
	return rows
}

func noteRows(s *session.Session, st filter.State) [][]any {
	v := s.Notes(st, derive.QualityFilter{}, derive.DefaultNoteSort)
	rows := [][]any{{"ID", "Student", "Topic", "Notes", "Quality", "Words", "Mode", "Timestamp"}}
	for _, n := range v.Rows {
		rows = append(rows, []any{n.ID, n.StudentName, n.Topic, n.NoteCount, string(n.Quality), n.WordCount,
			string(n.LearningMode), n.Timestamp.Format(dataset.TimestampLayout)})
	}
	return rows
}
