package catalog_test

import (
	"context"
	"fmt"
	"testing/fstest"

	"github.com/agentstation/logbook/pkg/catalog"
	"github.com/agentstation/logbook/pkg/logging"
)

func Example() {
	fsys := fstest.MapFS{
		"app.log": {Data: []byte(
			"2025-05-07 10:00:00\tINFO\tAuth\tUser 'a' logged in.\n" +
				"not a log line\n" +
				"2025-05-07 10:00:05\tERROR\tAuth\tUser 'b' rejected.\n",
		)},
		"jobs/worker.log": {Data: []byte(
			"2025-05-07 09:59:59\tinfo\tWorker\tstarted\n",
		)},
	}

	cat, err := catalog.New("logs", catalog.WithFS(fsys), catalog.WithLogger(logging.NewNopLogger()))
	if err != nil {
		panic(err)
	}
	report, err := cat.Load(context.Background())
	if err != nil {
		panic(err)
	}
	fmt.Printf("loaded %d records, skipped %d malformed lines\n", report.Records, report.MalformedLines)

	page := cat.Search(catalog.Query{Level: "INFO"}, 1, 10)
	for _, r := range page.Records {
		fmt.Println(r.Fields())
	}

	stats := cat.Stats()
	fmt.Println(stats.Total, stats.ByComponent["Auth"])
	// Output:
	// loaded 3 records, skipped 1 malformed lines
	// 2025-05-07 09:59:59	info	Worker	started
	// 2025-05-07 10:00:00	INFO	Auth	User 'a' logged in.
	// 3 2
}

func ExamplePaginate() {
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	page, total := catalog.Paginate(items, 2, 4)
	fmt.Println(page, total)
	// Output: [e f g h] 10
}
