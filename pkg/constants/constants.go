// Package constants provides shared constants used throughout the logbook codebase.
// This includes the record timestamp layout, pagination limits, timeouts, file
// permissions, and other values that should be consistent across the application.
package constants

import "time"

// Format constants
const (
	// TimestampLayout is the fixed layout of record timestamps, both on disk and
	// at every API boundary (YYYY-MM-DD HH:MM:SS, 24-hour clock).
	TimestampLayout = "2006-01-02 15:04:05"

	// FieldSeparator separates the fields of a log line.
	FieldSeparator = "\t"

	// FingerprintSeparator joins the inputs of a record fingerprint.
	FingerprintSeparator = ":"
)

// Pagination constants
const (
	// DefaultPage is the page returned when none is requested
	DefaultPage = 1

	// DefaultPerPage is the default number of records per page
	DefaultPerPage = 50

	// MaxPerPage is the maximum allowed page size
	MaxPerPage = 500
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultLoadTimeout bounds the file-scanning phase of a catalog load.
	// 0 means unbounded; load_timeout opts in to a limit.
	DefaultLoadTimeout time.Duration = 0

	// ShutdownTimeout is how long the server waits for in-flight requests on shutdown
	ShutdownTimeout = 30 * time.Second

	// ReadTimeout is the default HTTP read timeout
	ReadTimeout = 10 * time.Second

	// WriteTimeout is the default HTTP write timeout
	WriteTimeout = 10 * time.Second

	// IdleTimeout is the default HTTP idle timeout
	IdleTimeout = 120 * time.Second
)

// FilePermissions is the mode for log output files created by the logger (rw-r--r--)
const FilePermissions = 0644

// Limit constants define various limits and capacities
const (
	// ChannelBufferSize is the default buffer size for event channels
	ChannelBufferSize = 256

	// DefaultRateLimit is the default number of requests per minute per client
	DefaultRateLimit = 100

	// BurstSize is the token bucket burst size for rate limiting
	BurstSize = 10
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached responses
	CacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute
)

// Default values
const (
	// DefaultLogDir is the root directory scanned when none is configured
	DefaultLogDir = "./logs"

	// DefaultHost is the default bind address for the HTTP server
	DefaultHost = "localhost"

	// DefaultPort is the default port for the HTTP server
	DefaultPort = 8080

	// DefaultPathPrefix is the default API path prefix
	DefaultPathPrefix = "/api/v1"

	// ConfigName is the config file name (without extension)
	ConfigName = ".logbook"
)
