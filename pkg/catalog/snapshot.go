package catalog

import (
	"maps"
	"slices"
	"time"

	"golang.org/x/text/cases"

	"github.com/agentstation/logbook/pkg/errors"
)

// Snapshot is one immutable generation of the catalog. All methods are safe
// for concurrent use; a pinned Snapshot never changes underneath its reader.
type Snapshot struct {
	generation uint64
	root       string
	loadedAt   time.Time

	records []Record
	keys    []foldedKeys
	byID    map[string]int
	stats   Stats
}

// foldedKeys holds the case-folded level and component of a record, in
// the same position as the record.
type foldedKeys struct {
	level     string
	component string
}

// newSnapshot indexes records, which must already be in catalog order.
func newSnapshot(records []Record, generation uint64, root string, loadedAt time.Time) *Snapshot {
	fold := cases.Fold()
	s := &Snapshot{
		generation: generation,
		root:       root,
		loadedAt:   loadedAt,
		records:    records,
		keys:       make([]foldedKeys, len(records)),
		byID:       make(map[string]int, len(records)),
		stats: Stats{
			Total:       len(records),
			ByLevel:     make(map[string]int),
			ByComponent: make(map[string]int),
		},
	}
	for i, r := range records {
		s.keys[i] = foldedKeys{level: fold.String(r.Level), component: fold.String(r.Component)}
		// a later record with the same id replaces the earlier one
		s.byID[r.ID] = i
		s.stats.ByLevel[r.Level]++
		s.stats.ByComponent[r.Component]++
	}
	return s
}

// Generation is the load counter that produced this snapshot; zero means
// nothing has been loaded yet.
func (s *Snapshot) Generation() uint64 { return s.generation }

// Root returns the directory the snapshot was loaded from.
func (s *Snapshot) Root() string { return s.root }

// LoadedAt returns when the snapshot was published.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Len returns the number of records.
func (s *Snapshot) Len() int { return len(s.records) }

// Records returns a copy of all records in catalog order.
func (s *Snapshot) Records() []Record {
	return slices.Clone(s.records)
}

// Get looks up a record by id.
func (s *Snapshot) Get(id string) (Record, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Record{}, false
	}
	return s.records[i], true
}

// Find is Get with a *errors.NotFoundError for unknown ids.
func (s *Snapshot) Find(id string) (Record, error) {
	r, ok := s.Get(id)
	if !ok {
		return Record{}, errors.NewNotFoundError("record", id)
	}
	return r, nil
}

// Filter returns the records matching q in catalog order.
func (s *Snapshot) Filter(q Query) []Record {
	m := q.matcher()
	out := make([]Record, 0)
	for i := range s.records {
		if m.match(&s.records[i], s.keys[i]) {
			out = append(out, s.records[i])
		}
	}
	return out
}

// Search filters with q and returns the requested page.
func (s *Snapshot) Search(q Query, page, perPage int) Page {
	items, total := Paginate(s.Filter(q), page, perPage)
	return Page{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Records: items,
	}
}

// Stats returns counts over all records, grouped by the stored level and
// component strings.
func (s *Snapshot) Stats() Stats {
	return s.stats.clone()
}

// Stats are aggregate counts over a snapshot. Grouping keys keep their
// original casing.
type Stats struct {
	Total       int            `json:"total"        yaml:"total"`
	ByLevel     map[string]int `json:"by_level"     yaml:"by_level"`
	ByComponent map[string]int `json:"by_component" yaml:"by_component"`
}

func (s Stats) clone() Stats {
	return Stats{
		Total:       s.Total,
		ByLevel:     maps.Clone(s.ByLevel),
		ByComponent: maps.Clone(s.ByComponent),
	}
}
