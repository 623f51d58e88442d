package cfgkv

import (
	"fmt"
	"log/slog"
)

type config struct {
	logger        *slog.Logger
	filename      string
	maxSize       int64
	lenientArrays bool
}

// Option configures a parse. Options are plain functions so that callers can
// build and share bundles of them with Group:
//
//	strict := cfgkv.Group(cfgkv.WithMaxSize(1<<20), cfgkv.WithLogger(log))
//	doc, err := cfgkv.ParseFile("app.cfg", strict)
type Option func(c *config) error

// Group combines several options into one. Options are applied in order and
// the first error stops the rest.
func Group(opts ...Option) Option {
	return func(c *config) error { return apply(c, opts...) }
}

func apply(c *config, opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

func newConfig(opts ...Option) (*config, error) {
	c := &config{logger: slog.New(slog.DiscardHandler)}
	if err := apply(c, opts...); err != nil {
		return nil, fmt.Errorf("apply options: %w", err)
	}
	return c, nil
}

// WithLogger sends parse tracing to l at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return fmt.Errorf("nil logger")
		}
		c.logger = l
		return nil
	}
}

// WithFilename sets the name reported in errors. ParseFile sets it to the
// path unless this option overrides it.
func WithFilename(name string) Option {
	return func(c *config) error {
		c.filename = name
		return nil
	}
}

// WithMaxSize rejects inputs larger than n bytes with OutOfMemory. Zero
// means no limit.
func WithMaxSize(n int64) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("max size must not be negative (got %d)", n)
		}
		c.maxSize = n
		return nil
	}
}

// WithLenientArrays accepts stray commas inside arrays, as in [,1], [1,,2]
// and [1,]. By default a comma must sit between two elements.
func WithLenientArrays() Option {
	return func(c *config) error {
		c.lenientArrays = true
		return nil
	}
}
