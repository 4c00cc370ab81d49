// Package application defines what logbook commands need from the
// application layer.
//
// Commands accept the Application interface rather than the concrete App
// type so they can be exercised with Mock in tests:
//
//	mock := &application.Mock{
//	    CatalogFunc: func() (*catalog.Catalog, error) {
//	        return testCatalog, nil
//	    },
//	}
//	cmd := list.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/logbook/pkg/catalog"
)

// Application provides the application interface that commands need.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Catalog returns the shared catalog bound to the configured log
	// directory. It is created on first use and not loaded; callers
	// decide when to Load so hooks can be attached first.
	Catalog() (*catalog.Catalog, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
