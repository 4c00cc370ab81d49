package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/logbook/pkg/catalog"
	"github.com/agentstation/logbook/pkg/logline"
)

// maxMessageWidth truncates messages in narrow tables.
const maxMessageWidth = 80

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// PageToTableData renders a page of records. Wide tables add the id and
// the source location.
func PageToTableData(page catalog.Page, wide bool) Data {
	headers := []string{"TIMESTAMP", "LEVEL", "COMPONENT", "MESSAGE"}
	if wide {
		headers = append([]string{"ID"}, append(headers, "SOURCE")...)
	}

	rows := make([][]string, 0, len(page.Records))
	for _, r := range page.Records {
		msg := r.Message
		if !wide {
			msg = truncate(msg, maxMessageWidth)
		}
		row := []string{logline.FormatTimestamp(r.Timestamp), r.Level, r.Component, msg}
		if wide {
			row = append([]string{r.ID}, append(row, r.Source+":"+strconv.Itoa(r.Line))...)
		}
		rows = append(rows, row)
	}

	return Data{
		Headers: headers,
		Rows:    rows,
		Footer: fmt.Sprintf("Page %d of %d (%d entries, %d per page)",
			page.Page, page.Pages(), page.Total, page.PerPage),
	}
}

// RecordToTableData renders one record as a property table.
func RecordToTableData(r catalog.Record) Data {
	return Data{
		Headers: []string{"PROPERTY", "VALUE"},
		Rows: [][]string{
			{"ID", r.ID},
			{"Timestamp", logline.FormatTimestamp(r.Timestamp)},
			{"Level", r.Level},
			{"Component", r.Component},
			{"Message", r.Message},
			{"Source", r.Source},
			{"Line", strconv.Itoa(r.Line)},
		},
	}
}

// StatsToTableData renders catalog stats. Groups are sorted by count,
// then name.
func StatsToTableData(stats catalog.Stats) Data {
	rows := [][]string{{titleCase("total"), "", strconv.Itoa(stats.Total)}}
	rows = append(rows, groupRows("level", stats.ByLevel)...)
	rows = append(rows, groupRows("component", stats.ByComponent)...)

	return Data{
		Headers:         []string{"GROUP", "NAME", "COUNT"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
}

// ReportToTableData renders a load report.
func ReportToTableData(r *catalog.LoadReport) Data {
	return Data{
		Headers: []string{"PROPERTY", "VALUE"},
		Rows: [][]string{
			{"Root", r.Root},
			{"Generation", strconv.FormatUint(r.Generation, 10)},
			{"Root missing", strconv.FormatBool(r.RootMissing)},
			{"Files scanned", strconv.Itoa(r.FilesScanned)},
			{"Files failed", strconv.Itoa(r.FilesFailed)},
			{"Directories failed", strconv.Itoa(r.DirsFailed)},
			{"Malformed lines", strconv.Itoa(r.MalformedLines)},
			{"Records", strconv.Itoa(r.Records)},
			{"Duration", r.Duration.Round(time.Microsecond).String()},
		},
	}
}

// Write renders data in format to w. For table formats tableData is
// rendered instead of data.
func Write(w io.Writer, format Format, data any, tableData func(wide bool) Data) error {
	if format.IsTable() && tableData != nil {
		return NewFormatter(FormatTable).Format(w, tableData(format == FormatWide))
	}
	return NewFormatter(format).Format(w, data)
}

func groupRows(group string, counts map[string]int) [][]string {
	names := slices.SortedFunc(maps.Keys(counts), func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{titleCase(group), name, strconv.Itoa(counts[name])})
	}
	return rows
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
