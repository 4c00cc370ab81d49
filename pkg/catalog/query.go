package catalog

import (
	"time"

	"golang.org/x/text/cases"
)

// Query narrows a snapshot. Zero-valued fields are unconstrained and the
// remaining ones combine with AND.
type Query struct {
	// Level matches case-insensitively and exactly.
	Level string
	// Component matches case-insensitively and exactly.
	Component string
	// Start is an inclusive lower bound on the timestamp.
	Start *time.Time
	// End is an inclusive upper bound on the timestamp.
	End *time.Time
}

// IsZero reports whether the query matches every record.
func (q Query) IsZero() bool {
	return q.Level == "" && q.Component == "" && q.Start == nil && q.End == nil
}

type matcher struct {
	q         Query
	level     string
	component string
}

func (q Query) matcher() matcher {
	// Casers keep state, so each query gets its own.
	fold := cases.Fold()
	m := matcher{q: q}
	if q.Level != "" {
		m.level = fold.String(q.Level)
	}
	if q.Component != "" {
		m.component = fold.String(q.Component)
	}
	return m
}

func (m matcher) match(r *Record, k foldedKeys) bool {
	if m.q.Level != "" && k.level != m.level {
		return false
	}
	if m.q.Component != "" && k.component != m.component {
		return false
	}
	if m.q.Start != nil && r.Timestamp.Before(*m.q.Start) {
		return false
	}
	if m.q.End != nil && r.Timestamp.After(*m.q.End) {
		return false
	}
	return true
}

// Page is one page of a filtered result.
type Page struct {
	Total   int      `json:"total"    yaml:"total"`
	Page    int      `json:"page"     yaml:"page"`
	PerPage int      `json:"per_page" yaml:"per_page"`
	Records []Record `json:"entries"  yaml:"entries"`
}

// Pages returns the number of pages needed for Total at PerPage.
func (p Page) Pages() int {
	if p.PerPage < 1 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// Paginate returns the 1-based page of items holding perPage elements,
// along with len(items). Pages past the end are empty. A page or perPage
// below 1 also yields an empty page.
func Paginate[T any](items []T, page, perPage int) ([]T, int) {
	total := len(items)
	if page < 1 || perPage < 1 {
		return []T{}, total
	}
	offset := (page - 1) * perPage
	// guard against overflow from huge page numbers
	if offset/perPage != page-1 || offset >= total {
		return []T{}, total
	}
	end := total
	if perPage < total-offset {
		end = offset + perPage
	}
	return items[offset:end:end], total
}
