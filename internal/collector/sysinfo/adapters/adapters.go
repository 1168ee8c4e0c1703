// Package adapters implements the per-category hardware data sources
// consumed by the collector. Each category method returns a structured
// record or an error; the collector converts errors into the category's
// documented default, so nothing here needs to be fault free.
package adapters

import (
	"log/slog"
	"runtime"
)

// Source reads hardware facts from the local machine.
type Source struct {
	log  *slog.Logger
	arch string

	platform platformOptions
}

// Options are the variadic options available to the Source.
type Options func(*options)

type options struct {
	log  *slog.Logger
	arch string

	platform platformOptions
}

// New returns a Source backed by the local machine.
func New(args ...Options) Source {
	opts := &options{
		log:  slog.Default(),
		arch: runtime.GOARCH,
	}
	opts.platform = defaultPlatformOptions()

	for _, opt := range args {
		opt(opts)
	}

	return Source{
		log:  opts.log,
		arch: opts.arch,

		platform: opts.platform,
	}
}

// WithLogger overrides the default logger.
func WithLogger(log *slog.Logger) Options {
	return func(o *options) {
		o.log = log
	}
}
