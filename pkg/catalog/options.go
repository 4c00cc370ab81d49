package catalog

import (
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/logbook/pkg/constants"
	"github.com/agentstation/logbook/pkg/errors"
	"github.com/agentstation/logbook/pkg/logging"
)

// Option configures a Catalog.
type Option func(*options) error

type options struct {
	logger      *zerolog.Logger
	fsys        fs.FS
	loadTimeout time.Duration
}

func defaultOptions() *options {
	return &options{
		logger:      logging.Default(),
		loadTimeout: constants.DefaultLoadTimeout,
	}
}

func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// WithFS reads files from fsys instead of the OS directory at root. The root
// passed to New is still used to build each record's source path.
func WithFS(fsys fs.FS) Option {
	return func(o *options) error {
		if fsys == nil {
			return errors.NewConfigError("catalog", "filesystem cannot be nil", nil)
		}
		o.fsys = fsys
		return nil
	}
}

// WithLoadTimeout bounds the scanning phase of each Load. Zero disables the
// bound.
func WithLoadTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.NewConfigError("catalog", "load timeout cannot be negative", nil)
		}
		o.loadTimeout = d
		return nil
	}
}
