// Package filter provides query parameter parsing and validation for the
// log endpoints.
package filter

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/agentstation/logbook/pkg/catalog"
	"github.com/agentstation/logbook/pkg/constants"
	"github.com/agentstation/logbook/pkg/errors"
	"github.com/agentstation/logbook/pkg/logline"
)

// Query parameter names accepted by GET /logs.
const (
	ParamLevel     = "level"
	ParamComponent = "component"
	ParamStartTime = "start_time"
	ParamEndTime   = "end_time"
	ParamPage      = "page"
	ParamPerPage   = "per_page"
)

// timestampHint is the human form of constants.TimestampLayout used in errors.
const timestampHint = "YYYY-MM-DD HH:MM:SS"

// Limits bounds the page size.
type Limits struct {
	DefaultPerPage int
	MaxPerPage     int
}

// DefaultLimits returns the default page size limits.
func DefaultLimits() Limits {
	return Limits{
		DefaultPerPage: constants.DefaultPerPage,
		MaxPerPage:     constants.MaxPerPage,
	}
}

// LogQuery is a validated GET /logs request.
type LogQuery struct {
	catalog.Query
	Page    int
	PerPage int
}

// ParseLogQuery extracts and validates log query parameters from an HTTP request.
func ParseLogQuery(r *http.Request, limits Limits) (LogQuery, error) {
	return ParseValues(r.URL.Query(), limits)
}

// ParseValues validates raw query values. Empty values are treated as absent.
// Every failure is a *errors.ValidationError.
func ParseValues(q url.Values, limits Limits) (LogQuery, error) {
	if limits.MaxPerPage < 1 {
		limits.MaxPerPage = constants.MaxPerPage
	}
	if limits.DefaultPerPage < 1 || limits.DefaultPerPage > limits.MaxPerPage {
		limits.DefaultPerPage = min(constants.DefaultPerPage, limits.MaxPerPage)
	}

	lq := LogQuery{
		Query: catalog.Query{
			Level:     q.Get(ParamLevel),
			Component: q.Get(ParamComponent),
		},
	}

	var err error
	if lq.Start, err = parseTime(ParamStartTime, q.Get(ParamStartTime)); err != nil {
		return LogQuery{}, err
	}
	if lq.End, err = parseTime(ParamEndTime, q.Get(ParamEndTime)); err != nil {
		return LogQuery{}, err
	}

	page, pageErr := parseIntOrDefault(q.Get(ParamPage), constants.DefaultPage)
	perPage, perPageErr := parseIntOrDefault(q.Get(ParamPerPage), limits.DefaultPerPage)
	if pageErr != nil || perPageErr != nil {
		field := ParamPage
		if pageErr == nil {
			field = ParamPerPage
		}
		return LogQuery{}, errors.NewValidationError(field, q.Get(field), "page and per_page must be integers")
	}
	if page < 1 {
		return LogQuery{}, errors.NewValidationError(ParamPage, page, "page must be >= 1")
	}
	if perPage < 1 || perPage > limits.MaxPerPage {
		return LogQuery{}, errors.NewValidationError(ParamPerPage, perPage,
			fmt.Sprintf("per_page must be between 1 and %d", limits.MaxPerPage))
	}

	lq.Page = page
	lq.PerPage = perPage
	return lq, nil
}

// CacheKey returns a canonical key for the query, independent of parameter
// order and formatting.
func (lq LogQuery) CacheKey() string {
	v := url.Values{}
	v.Set(ParamLevel, lq.Level)
	v.Set(ParamComponent, lq.Component)
	if lq.Start != nil {
		v.Set(ParamStartTime, lq.Start.Format(constants.TimestampLayout))
	}
	if lq.End != nil {
		v.Set(ParamEndTime, lq.End.Format(constants.TimestampLayout))
	}
	v.Set(ParamPage, strconv.Itoa(lq.Page))
	v.Set(ParamPerPage, strconv.Itoa(lq.PerPage))
	return v.Encode()
}

func parseTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := logline.ParseTimestamp(value)
	if err != nil {
		return nil, errors.NewValidationError(field, value,
			fmt.Sprintf("Invalid time format for '%s'. Expected: %s", value, timestampHint))
	}
	return &t, nil
}

func parseIntOrDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
