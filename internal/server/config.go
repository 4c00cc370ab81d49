package server

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/logbook/internal/server/filter"
	"github.com/agentstation/logbook/pkg/constants"
	"github.com/agentstation/logbook/pkg/errors"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string
	Limits     filter.Limits

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Authentication settings
	AuthEnabled bool
	AuthHeader  string
	APIKey      string

	// Performance settings
	RateLimit int // Requests per minute per IP (0 to disable)
	RateBurst int
	CacheTTL  time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Features
	MetricsEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           constants.DefaultHost,
		Port:           constants.DefaultPort,
		PathPrefix:     constants.DefaultPathPrefix,
		Limits:         filter.DefaultLimits(),
		CORSOrigins:    []string{},
		AuthHeader:     "X-API-Key",
		RateLimit:      constants.DefaultRateLimit,
		RateBurst:      constants.BurstSize,
		CacheTTL:       constants.CacheTTL,
		ReadTimeout:    constants.ReadTimeout,
		WriteTimeout:   constants.WriteTimeout,
		IdleTimeout:    constants.IdleTimeout,
		MetricsEnabled: true,
	}
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks the configuration and normalizes the path prefix.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.NewValidationError("port", c.Port, fmt.Sprintf("port out of range: %d", c.Port))
	}
	if c.PathPrefix != "" {
		c.PathPrefix = "/" + strings.Trim(c.PathPrefix, "/")
	}
	if c.AuthEnabled && c.APIKey == "" {
		return errors.NewConfigError("server", "authentication enabled but no API key configured", nil)
	}
	if c.Limits.MaxPerPage < 1 {
		c.Limits = filter.DefaultLimits()
	}
	if c.Limits.DefaultPerPage < 1 || c.Limits.DefaultPerPage > c.Limits.MaxPerPage {
		return errors.NewValidationError("default_per_page", c.Limits.DefaultPerPage,
			fmt.Sprintf("default per_page must be between 1 and %d", c.Limits.MaxPerPage))
	}
	return nil
}
