package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/agentstation/logbook/pkg/catalog"
)

func testRecords() []catalog.Record {
	return []catalog.Record{
		{
			ID:        "aaaa",
			Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Level:     "ERROR",
			Component: "auth",
			Message:   "token expired",
			Source:    "logs/app.log",
			Line:      3,
		},
		{
			ID:        "bbbb",
			Timestamp: time.Date(2024, 1, 15, 10, 31, 0, 0, time.UTC),
			Level:     "INFO",
			Component: "db",
			Message:   strings.Repeat("x", 200),
			Source:    "logs/app.log",
			Line:      4,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"table", FormatTable, false},
		{"wide", FormatWide, false},
		{"", "", false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetectFormat_Explicit(t *testing.T) {
	if got := DetectFormat("JSON"); got != FormatJSON {
		t.Errorf("DetectFormat(JSON) = %q, want json", got)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	page := catalog.Page{Total: 2, Page: 1, PerPage: 50, Records: testRecords()}
	if err := NewFormatter(FormatJSON).Format(&buf, page); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["total"] != float64(2) {
		t.Errorf("total = %v, want 2", decoded["total"])
	}
	entries, ok := decoded["entries"].([]any)
	if !ok || len(entries) != 2 {
		t.Fatalf("entries = %v, want 2 entries", decoded["entries"])
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	stats := catalog.Stats{Total: 2, ByLevel: map[string]int{"ERROR": 1}, ByComponent: map[string]int{}}
	if err := NewFormatter(FormatYAML).Format(&buf, stats); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "total: 2") {
		t.Errorf("YAML output missing total:\n%s", out)
	}
	if !strings.Contains(out, "ERROR: 1") {
		t.Errorf("YAML output missing level count:\n%s", out)
	}
}

func TestTableFormatter_Footer(t *testing.T) {
	var buf bytes.Buffer
	data := Data{
		Headers: []string{"NAME", "COUNT"},
		Rows:    [][]string{{"auth", "2"}},
		Footer:  "1 row",
	}
	if err := NewFormatter(FormatTable).Format(&buf, data); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"NAME", "auth", "1 row"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatter_FallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatTable).Format(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"a": 1`) {
		t.Errorf("expected JSON fallback, got %q", buf.String())
	}
}

func TestPageToTableData(t *testing.T) {
	page := catalog.Page{Total: 2, Page: 1, PerPage: 1, Records: testRecords()}

	narrow := PageToTableData(page, false)
	if len(narrow.Headers) != 4 {
		t.Errorf("narrow headers = %v, want 4 columns", narrow.Headers)
	}
	if got := narrow.Rows[0][0]; got != "2024-01-15 10:30:00" {
		t.Errorf("timestamp cell = %q", got)
	}
	if got := []rune(narrow.Rows[1][3]); len(got) != maxMessageWidth || !strings.HasSuffix(string(got), "...") {
		t.Errorf("long message not truncated: %d runes", len(got))
	}
	if !strings.Contains(narrow.Footer, "Page 1 of 2") {
		t.Errorf("footer = %q", narrow.Footer)
	}

	wide := PageToTableData(page, true)
	if len(wide.Headers) != 6 || wide.Headers[0] != "ID" || wide.Headers[5] != "SOURCE" {
		t.Errorf("wide headers = %v", wide.Headers)
	}
	if got := wide.Rows[0][5]; got != "logs/app.log:3" {
		t.Errorf("source cell = %q, want logs/app.log:3", got)
	}
	if got := wide.Rows[1][4]; len(got) != 200 {
		t.Errorf("wide message truncated to %d bytes", len(got))
	}
}

func TestStatsToTableData_Order(t *testing.T) {
	stats := catalog.Stats{
		Total:       6,
		ByLevel:     map[string]int{"INFO": 3, "ERROR": 3},
		ByComponent: map[string]int{"db": 1, "auth": 5},
	}

	data := StatsToTableData(stats)
	want := [][]string{
		{"Total", "", "6"},
		{"Level", "ERROR", "3"},
		{"Level", "INFO", "3"},
		{"Component", "auth", "5"},
		{"Component", "db", "1"},
	}
	if len(data.Rows) != len(want) {
		t.Fatalf("rows = %v, want %v", data.Rows, want)
	}
	for i := range want {
		for j := range want[i] {
			if data.Rows[i][j] != want[i][j] {
				t.Errorf("row %d = %v, want %v", i, data.Rows[i], want[i])
				break
			}
		}
	}
}

func TestWrite_TableUsesTableData(t *testing.T) {
	var buf bytes.Buffer
	called := false
	err := Write(&buf, FormatWide, struct{}{}, func(wide bool) Data {
		called = true
		if !wide {
			t.Error("expected wide=true for FormatWide")
		}
		return Data{Headers: []string{"H"}, Rows: [][]string{{"v"}}}
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !called {
		t.Error("table data function not called")
	}
}
