// Package catalog loads tab-separated log files into an in-memory catalog
// and answers filter, pagination, lookup and statistics queries over it.
//
// A Catalog publishes immutable Snapshots. Load builds a complete new
// snapshot off to the side and swaps it in atomically, so readers always see
// either the previous generation or the new one in full:
//
//	cat, err := catalog.New("./logs", catalog.WithLogger(&logger))
//	if err != nil {
//	    return err
//	}
//	if _, err := cat.Load(ctx); err != nil {
//	    return err
//	}
//	page := cat.Search(catalog.Query{Level: "error"}, 1, 50)
package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agentstation/logbook/pkg/errors"
	"github.com/agentstation/logbook/pkg/logging"
)

// Catalog owns the published snapshot of all loaded records.
type Catalog struct {
	root string
	fsys fs.FS
	opts *options

	// mu serializes loads; readers never take it.
	mu         sync.Mutex
	generation uint64
	current    atomic.Pointer[Snapshot]

	hooks *hooks
}

// LoadReport summarizes one completed load.
type LoadReport struct {
	Root           string        `json:"root"            yaml:"root"`
	Generation     uint64        `json:"generation"      yaml:"generation"`
	RootMissing    bool          `json:"root_missing"    yaml:"root_missing"`
	FilesScanned   int           `json:"files_scanned"   yaml:"files_scanned"`
	FilesFailed    int           `json:"files_failed"    yaml:"files_failed"`
	DirsFailed     int           `json:"dirs_failed"     yaml:"dirs_failed"`
	MalformedLines int           `json:"malformed_lines" yaml:"malformed_lines"`
	Records        int           `json:"records"         yaml:"records"`
	Duration       time.Duration `json:"duration_ns"     yaml:"duration"`
	LoadedAt       time.Time     `json:"loaded_at"       yaml:"loaded_at"`
}

// New creates an empty catalog bound to root. Nothing is read until Load.
func New(root string, opts ...Option) (*Catalog, error) {
	if root == "" {
		return nil, errors.NewConfigError("catalog", "root directory cannot be empty", nil)
	}

	o := defaultOptions()
	if err := o.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	c := &Catalog{
		root:  root,
		fsys:  o.fsys,
		opts:  o,
		hooks: newHooks(),
	}
	if c.fsys == nil {
		c.fsys = os.DirFS(root)
	}
	c.current.Store(newSnapshot(nil, 0, root, time.Time{}))
	return c, nil
}

// Root returns the directory the catalog is bound to.
func (c *Catalog) Root() string {
	return c.root
}

// Snapshot returns the currently published snapshot. Use it to run several
// reads against one generation.
func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Load scans the root directory and replaces the published snapshot.
//
// A missing root publishes an empty snapshot. Malformed lines and unreadable
// files are skipped and counted in the report. If ctx is canceled or the
// load timeout expires during the scan, the previous snapshot stays
// published and the error is returned.
func (c *Catalog) Load(ctx context.Context) (*LoadReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.opts.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.loadTimeout)
		defer cancel()
	}
	ctx = logging.WithOperation(logging.WithLogger(ctx, c.opts.logger), "load")
	log := logging.FromContext(ctx)

	start := time.Now()
	l := &loader{
		fsys:   c.fsys,
		root:   c.root,
		report: &LoadReport{Root: c.root},
	}

	records, err := l.run(ctx)
	if err != nil {
		err = c.abortError(err)
		log.Error().Err(err).Uint64("generation", c.generation).Msg("Catalog load aborted, keeping previous snapshot")
		c.hooks.triggerLoadFailed(err)
		return nil, err
	}

	slices.SortStableFunc(records, func(a, b Record) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	c.generation++
	now := time.Now()
	snap := newSnapshot(records, c.generation, c.root, now)
	c.current.Store(snap)

	report := l.report
	report.Generation = c.generation
	report.Records = snap.Len()
	report.Duration = time.Since(start)
	report.LoadedAt = now

	log.Info().
		Str("root", c.root).
		Int("records", report.Records).
		Int("files", report.FilesScanned).
		Int("files_failed", report.FilesFailed).
		Int("malformed_lines", report.MalformedLines).
		Uint64("generation", report.Generation).
		Dur("duration", report.Duration).
		Msg("Catalog loaded")

	c.hooks.triggerReload(report)
	return report, nil
}

func (c *Catalog) abortError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w",
			errors.NewTimeoutError("catalog load", c.opts.loadTimeout.String(), "scan did not finish"), err)
	}
	return errors.WrapResource("load", "catalog", "", fmt.Errorf("%w: %w", errors.ErrCanceled, err))
}

// Generation returns the generation of the published snapshot.
func (c *Catalog) Generation() uint64 {
	return c.Snapshot().Generation()
}

// Len returns the number of records in the published snapshot.
func (c *Catalog) Len() int {
	return c.Snapshot().Len()
}

// Filter runs Snapshot.Filter on the published snapshot.
func (c *Catalog) Filter(q Query) []Record {
	return c.Snapshot().Filter(q)
}

// Search runs Snapshot.Search on the published snapshot.
func (c *Catalog) Search(q Query, page, perPage int) Page {
	return c.Snapshot().Search(q, page, perPage)
}

// Get runs Snapshot.Get on the published snapshot.
func (c *Catalog) Get(id string) (Record, bool) {
	return c.Snapshot().Get(id)
}

// Find runs Snapshot.Find on the published snapshot.
func (c *Catalog) Find(id string) (Record, error) {
	return c.Snapshot().Find(id)
}

// Stats runs Snapshot.Stats on the published snapshot.
func (c *Catalog) Stats() Stats {
	return c.Snapshot().Stats()
}
