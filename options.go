package wareflow

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	logger   *zap.Logger
	strict   bool
	observer Observer
	limits   *listing.Limits
}

// WithLogger sets the logger for ignored field references and bulk actions.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrictFields rejects unknown filter and sort keys instead of ignoring them.
func WithStrictFields() Option {
	return func(c *clientConfig) {
		c.strict = true
	}
}

// WithObserver receives per-call measurements, e.g. for Prometheus.
func WithObserver(o Observer) Option {
	return func(c *clientConfig) {
		c.observer = o
	}
}

// WithPageLimits makes Apply default and clamp the page size the way the admin screens do.
// Without it Apply uses the requested size as is. Non-positive values keep 10 and 100.
func WithPageLimits(defaultSize, maxSize int) Option {
	return func(c *clientConfig) {
		l := listing.DefaultLimits()
		if c.limits != nil {
			l = *c.limits
		}
		if defaultSize > 0 {
			l.DefaultPageSize = defaultSize
		}
		if maxSize > 0 {
			l.MaxPageSize = maxSize
		}
		c.limits = &l
	}
}

// screenLimits are the limits of views, which always behave like a screen.
func (c clientConfig) screenLimits() listing.Limits {
	if c.limits == nil {
		return listing.DefaultLimits()
	}
	return *c.limits
}
