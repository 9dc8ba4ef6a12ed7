package cubeengine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeengine/internal/interp"
	"github.com/SeamusWaldron/cubeengine/internal/metrics"
	"github.com/SeamusWaldron/cubeengine/internal/movetable"
	"github.com/SeamusWaldron/cubeengine/internal/scheduler"
)

// Option configures Engine behavior.
type Option func(*config)

type config struct {
	duration time.Duration
	easing   interp.Easing
	table    *movetable.Table
	bindings []movetable.Binding
	logger   logrus.FieldLogger
	metrics  *metrics.Collector
}

func defaultConfig() *config {
	return &config{
		duration: scheduler.DefaultDuration,
		easing:   interp.Linear,
	}
}

// WithDuration sets how long one quarter turn animates. Zero or negative
// durations complete every move on the next tick.
func WithDuration(d time.Duration) Option {
	return func(c *config) {
		c.duration = d
	}
}

// WithEasing sets the easing applied to move progress.
// Linear is the default.
func WithEasing(e interp.Easing) Option {
	return func(c *config) {
		if e != nil {
			c.easing = e
		}
	}
}

// WithTable replaces the default twelve-symbol move table.
func WithTable(t *movetable.Table) Option {
	return func(c *config) {
		c.table = t
	}
}

// WithBindings builds the move table from key bindings. New reports
// ErrInvalidBinding if they do not form a valid table.
func WithBindings(b []movetable.Binding) Option {
	return func(c *config) {
		c.bindings = b
	}
}

// WithLogger enables logging. The engine is silent by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics records diagnostics into a Prometheus collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *config) {
		c.metrics = m
	}
}
