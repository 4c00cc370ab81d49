package catalog_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/logbook/pkg/catalog"
	"github.com/agentstation/logbook/pkg/logging"
)

// logFile joins lines into file content with a trailing newline.
func logFile(lines ...string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(strings.Join(lines, "\n") + "\n")}
}

// newTestCatalog builds a catalog over fsys rooted at "logs" and loads it.
func newTestCatalog(t *testing.T, fsys fs.FS, opts ...catalog.Option) (*catalog.Catalog, *catalog.LoadReport) {
	t.Helper()
	opts = append([]catalog.Option{
		catalog.WithFS(fsys),
		catalog.WithLogger(logging.NewNopLogger()),
	}, opts...)
	c, err := catalog.New("logs", opts...)
	require.NoError(t, err)
	report, err := c.Load(context.Background())
	require.NoError(t, err)
	return c, report
}

// faultyFS fails to open some files and fails mid-read on others.
type faultyFS struct {
	fstest.MapFS
	failOpen map[string]bool
	failRead map[string]bool
}

func (f faultyFS) Open(name string) (fs.File, error) {
	if f.failOpen[name] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	file, err := f.MapFS.Open(name)
	if err != nil {
		return nil, err
	}
	if f.failRead[name] {
		return &brokenFile{File: file}, nil
	}
	return file, nil
}

// slowFS delays every Open.
type slowFS struct {
	fstest.MapFS
	delay time.Duration
}

func (s slowFS) Open(name string) (fs.File, error) {
	time.Sleep(s.delay)
	return s.MapFS.Open(name)
}

// brokenFile returns its first read normally and errors afterwards.
type brokenFile struct {
	fs.File
	reads int
}

func (b *brokenFile) Read(p []byte) (int, error) {
	b.reads++
	if b.reads == 1 {
		n, err := b.File.Read(p)
		if errors.Is(err, io.EOF) {
			err = nil
		}
		return n, err
	}
	return 0, errors.New("disk error")
}

func ids(records []catalog.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func messages(records []catalog.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Message
	}
	return out
}
