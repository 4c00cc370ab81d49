package catalog_test

import (
	"encoding/json"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/logbook/pkg/catalog"
	pkgerrors "github.com/agentstation/logbook/pkg/errors"
)

func TestFingerprint(t *testing.T) {
	at := time.Date(2025, 5, 7, 10, 0, 0, 0, time.UTC)
	base := catalog.Fingerprint("logs/app.log", 1, at, "INFO", "Auth")

	assert.Equal(t, "ab03e512a09e47741929d3abbb5722d25ac205bf", base)
	assert.Regexp(t, "^[0-9a-f]{40}$", base)
	assert.Equal(t, base, catalog.Fingerprint("logs/app.log", 1, at, "INFO", "Auth"))

	variants := map[string]string{
		"source":    catalog.Fingerprint("logs/other.log", 1, at, "INFO", "Auth"),
		"line":      catalog.Fingerprint("logs/app.log", 2, at, "INFO", "Auth"),
		"timestamp": catalog.Fingerprint("logs/app.log", 1, at.Add(time.Second), "INFO", "Auth"),
		"level":     catalog.Fingerprint("logs/app.log", 1, at, "info", "Auth"),
		"component": catalog.Fingerprint("logs/app.log", 1, at, "INFO", "auth"),
	}
	for input, id := range variants {
		assert.NotEqual(t, base, id, "changing %s must change the id", input)
	}
}

func TestFingerprintIgnoresMessage(t *testing.T) {
	a, _ := newTestCatalog(t, fstest.MapFS{"app.log": logFile("2025-05-07 10:00:00\tINFO\tAuth\tfirst")})
	b, _ := newTestCatalog(t, fstest.MapFS{"app.log": logFile("2025-05-07 10:00:00\tINFO\tAuth\tsecond")})
	assert.Equal(t, ids(a.Filter(catalog.Query{})), ids(b.Filter(catalog.Query{})))
}

func sampleRecord() catalog.Record {
	return catalog.Record{
		ID:        "ab03e512a09e47741929d3abbb5722d25ac205bf",
		Timestamp: time.Date(2025, 5, 7, 10, 0, 0, 0, time.UTC),
		Level:     "INFO",
		Component: "Auth",
		Message:   "User 'a' logged in.",
		Source:    "logs/app.log",
		Line:      1,
	}
}

func TestRecordJSON(t *testing.T) {
	r := sampleRecord()

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "ab03e512a09e47741929d3abbb5722d25ac205bf",
		"timestamp": "2025-05-07 10:00:00",
		"level": "INFO",
		"component": "Auth",
		"message": "User 'a' logged in.",
		"file": "logs/app.log",
		"line_no": 1
	}`, string(data))

	var back catalog.Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)

	for _, doc := range []string{
		`{"timestamp":"yesterday"}`,
		`{"timestamp":"2025-05-07 10:00:00.5"}`,
	} {
		err := json.Unmarshal([]byte(doc), &back)
		var validation *pkgerrors.ValidationError
		require.ErrorAs(t, err, &validation, doc)
		assert.Equal(t, "timestamp", validation.Field)
	}
}

func TestRecordYAML(t *testing.T) {
	data, err := yaml.Marshal(sampleRecord())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "id: ab03e512a09e47741929d3abbb5722d25ac205bf")
	assert.Contains(t, out, "file: logs/app.log")
	assert.Contains(t, out, "line_no: 1")
	assert.Contains(t, out, "2025-05-07 10:00:00")
}

func TestRecordFields(t *testing.T) {
	f := sampleRecord().Fields()
	assert.Equal(t, "2025-05-07 10:00:00\tINFO\tAuth\tUser 'a' logged in.", f.String())
}
