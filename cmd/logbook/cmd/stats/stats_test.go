package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/agentstation/logbook/cmd/application"
	"github.com/agentstation/logbook/pkg/catalog"
)

func newTestApp(t *testing.T, format string) *application.Mock {
	t.Helper()
	fsys := fstest.MapFS{
		"a.log": &fstest.MapFile{Data: []byte(
			"2024-01-15 10:00:00\tINFO\tauth\tuser login\n" +
				"2024-01-15 10:05:00\tERROR\tdb\tconnection lost\n" +
				"not a log line\n",
		)},
		"nested/b.log": &fstest.MapFile{Data: []byte("2024-01-15 10:10:00\tinfo\tauth\tlogout\n")},
	}
	cat, err := catalog.New("logs", catalog.WithFS(fsys))
	if err != nil {
		t.Fatalf("catalog.New() error: %v", err)
	}
	return &application.Mock{
		CatalogFunc:      func() (*catalog.Catalog, error) { return cat, nil },
		OutputFormatFunc: func() string { return format },
	}
}

func execute(t *testing.T, app application.Application, args ...string) *bytes.Buffer {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	return &out
}

func TestStats(t *testing.T) {
	out := execute(t, newTestApp(t, "json"))

	var stats catalog.Stats
	if err := json.Unmarshal(out.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	// grouping keeps original casing
	if stats.ByLevel["INFO"] != 1 || stats.ByLevel["info"] != 1 {
		t.Errorf("ByLevel = %v", stats.ByLevel)
	}
	if stats.ByComponent["auth"] != 2 {
		t.Errorf("ByComponent[auth] = %d, want 2", stats.ByComponent["auth"])
	}
}

func TestStats_Report(t *testing.T) {
	out := execute(t, newTestApp(t, "json"), "--report")

	var report catalog.LoadReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if report.FilesScanned != 2 {
		t.Errorf("FilesScanned = %d, want 2", report.FilesScanned)
	}
	if report.MalformedLines != 1 {
		t.Errorf("MalformedLines = %d, want 1", report.MalformedLines)
	}
	if report.Records != 3 {
		t.Errorf("Records = %d, want 3", report.Records)
	}
}

func TestStats_Table(t *testing.T) {
	out := execute(t, newTestApp(t, "table"))
	for _, want := range []string{"Total", "Level", "Component", "auth"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("table output missing %q:\n%s", want, out.String())
		}
	}
}
