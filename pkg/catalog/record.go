package catalog

import (
	"crypto/sha1" //nolint:gosec // fingerprint, not a security boundary
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/logbook/pkg/constants"
	"github.com/agentstation/logbook/pkg/errors"
	"github.com/agentstation/logbook/pkg/logline"
)

// Record is one parsed log line. Records are immutable once loaded.
type Record struct {
	ID        string
	Timestamp time.Time
	Level     string
	Component string
	Message   string
	Source    string // path of the originating file
	Line      int    // 1-based
}

// Fingerprint returns the record id for the given inputs:
// the lowercase hex SHA-1 of "source:line:timestamp:level:component".
// The message is deliberately not part of the id.
func Fingerprint(source string, line int, ts time.Time, level, component string) string {
	key := strings.Join([]string{
		source,
		strconv.Itoa(line),
		logline.FormatTimestamp(ts),
		level,
		component,
	}, constants.FingerprintSeparator)
	sum := sha1.Sum([]byte(key)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// newRecord builds a Record from parsed fields and assigns its fingerprint.
func newRecord(f logline.Fields, source string, line int) Record {
	return Record{
		ID:        Fingerprint(source, line, f.Timestamp, f.Level, f.Component),
		Timestamp: f.Timestamp,
		Level:     f.Level,
		Component: f.Component,
		Message:   f.Message,
		Source:    source,
		Line:      line,
	}
}

// Fields returns the parsed line fields of the record.
func (r Record) Fields() logline.Fields {
	return logline.Fields{
		Timestamp: r.Timestamp,
		Level:     r.Level,
		Component: r.Component,
		Message:   r.Message,
	}
}

// document is the wire form shared by JSON and YAML.
type document struct {
	ID        string `json:"id"        yaml:"id"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Level     string `json:"level"     yaml:"level"`
	Component string `json:"component" yaml:"component"`
	Message   string `json:"message"   yaml:"message"`
	File      string `json:"file"      yaml:"file"`
	LineNo    int    `json:"line_no"   yaml:"line_no"`
}

func (r Record) document() document {
	return document{
		ID:        r.ID,
		Timestamp: logline.FormatTimestamp(r.Timestamp),
		Level:     r.Level,
		Component: r.Component,
		Message:   r.Message,
		File:      r.Source,
		LineNo:    r.Line,
	}
}

// MarshalJSON renders the record with the timestamp in the record layout.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.document())
}

// UnmarshalJSON parses the form produced by MarshalJSON.
func (r *Record) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	ts, err := logline.ParseTimestamp(doc.Timestamp)
	if err != nil {
		return errors.WrapValidation("timestamp", err)
	}
	*r = Record{
		ID:        doc.ID,
		Timestamp: ts,
		Level:     doc.Level,
		Component: doc.Component,
		Message:   doc.Message,
		Source:    doc.File,
		Line:      doc.LineNo,
	}
	return nil
}

// MarshalYAML renders the record with the same keys as its JSON form.
func (r Record) MarshalYAML() (any, error) {
	return r.document(), nil
}
