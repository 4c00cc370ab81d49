// Package app provides the application context and dependency management
// for the logbook CLI. It centralizes configuration, logging and the
// shared catalog so commands receive their dependencies explicitly.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/logbook/cmd/application"
	"github.com/agentstation/logbook/pkg/catalog"
	"github.com/agentstation/logbook/pkg/errors"
	"github.com/agentstation/logbook/pkg/logging"
)

// App represents the logbook application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// lazily created, never loaded here
	mu      sync.RWMutex
	catalog *catalog.Catalog
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger
	logging.SetDefault(logger)

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Catalog returns the catalog bound to the configured log directory,
// creating it on first use. Callers are responsible for loading it.
func (a *App) Catalog() (*catalog.Catalog, error) {
	a.mu.RLock()
	if a.catalog != nil {
		c := a.catalog
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.catalog != nil {
		return a.catalog, nil
	}

	opts := []catalog.Option{catalog.WithLogger(a.logger)}
	if a.config.LoadTimeout > 0 {
		opts = append(opts, catalog.WithLoadTimeout(a.config.LoadTimeout))
	}

	c, err := catalog.New(a.config.LogDir, opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "catalog", a.config.LogDir, err)
	}

	a.catalog = c
	return c, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Application shutdown")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithCatalog sets a prebuilt catalog (useful for testing).
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *App) error {
		a.catalog = c
		return nil
	}
}
