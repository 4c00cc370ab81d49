// Package logline parses the tab-separated log line format:
//
//	timestamp<TAB>level<TAB>component<TAB>message
//
// The timestamp uses the layout "2006-01-02 15:04:05". The message is
// everything after the third tab and may itself contain tabs.
package logline

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/logbook/pkg/constants"
	"github.com/agentstation/logbook/pkg/errors"
)

// ErrMalformed is matched (via errors.Is) by every error Parse returns.
var ErrMalformed = errors.ErrMalformed

// fieldCount is the number of tab-separated fields in a line.
const fieldCount = 4

// Fields are the structured parts of one log line.
type Fields struct {
	Timestamp time.Time
	Level     string
	Component string
	Message   string
}

// String renders the canonical tab-separated form of the fields.
func (f Fields) String() string {
	return strings.Join([]string{
		FormatTimestamp(f.Timestamp),
		f.Level,
		f.Component,
		f.Message,
	}, constants.FieldSeparator)
}

// Parse converts a raw line into Fields. Surrounding whitespace is ignored.
// Level and component may be empty. A line with fewer than four fields or an
// unparseable timestamp yields a *errors.ParseError.
func Parse(raw string) (Fields, error) {
	line := strings.TrimSpace(raw)

	parts := strings.SplitN(line, constants.FieldSeparator, fieldCount)
	if len(parts) < fieldCount {
		return Fields{}, malformed(fmt.Sprintf("expected %d tab-separated fields, got %d", fieldCount, len(parts)), nil)
	}

	stamp := strings.TrimSpace(parts[0])
	ts, err := ParseTimestamp(stamp)
	if err != nil {
		return Fields{}, malformed(fmt.Sprintf("invalid timestamp %q", stamp), err)
	}

	return Fields{
		Timestamp: ts,
		Level:     strings.TrimSpace(parts[1]),
		Component: strings.TrimSpace(parts[2]),
		Message:   strings.TrimSpace(parts[3]),
	}, nil
}

// ParseTimestamp parses s with the record timestamp layout. The result is
// in UTC. s must match the layout byte for byte; anything time.Parse would
// tolerate beyond it, such as fractional seconds, is rejected.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(constants.TimestampLayout, s)
	if err != nil {
		return time.Time{}, errors.WrapParse("timestamp", "", err)
	}
	if FormatTimestamp(t) != s {
		return time.Time{}, errors.NewParseError("timestamp", "",
			fmt.Sprintf("%q does not match layout %q", s, constants.TimestampLayout), nil)
	}
	return t, nil
}

// FormatTimestamp renders t with the record timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.TimestampLayout)
}

func malformed(msg string, err error) *errors.ParseError {
	return errors.NewParseError("logline", "", msg, err)
}
