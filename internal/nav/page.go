package nav

// Page identifies one of the dashboard views.
type Page int

const (
	Dashboard Page = iota
	Queries
	Performance
	Content
	Notes
)

// Pages lists every view in sidebar order.
var Pages = []Page{Dashboard, Queries, Performance, Content, Notes}

var pageInfo = map[Page]struct{ label, slug string }{
	Dashboard:   {"Dashboard", "dashboard"},
	Queries:     {"Query Analysis", "queries"},
	Performance: {"Student Performance", "performance"},
	Content:     {"Content Scanning", "content"},
	Notes:       {"Notes Analysis", "notes"},
}

// String returns the sidebar label.
func (p Page) String() string { return pageInfo[p].label }

// Slug returns the short identifier used on the command line.
func (p Page) Slug() string { return pageInfo[p].slug }

// Valid reports whether p is a known page.
func (p Page) Valid() bool {
	_, ok := pageInfo[p]
	return ok
}

// Parse resolves a slug to a page.
func Parse(slug string) (Page, bool) {
	for _, p := range Pages {
		if p.Slug() == slug {
			return p, true
		}
	}
	return Dashboard, false
}

// Slugs lists the identifiers accepted by Parse.
func Slugs() []string {
	out := make([]string, len(Pages))
	for i, p := range Pages {
		out[i] = p.Slug()
	}
	return out
}
