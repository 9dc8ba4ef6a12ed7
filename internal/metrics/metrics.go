// Package metrics exposes the engine's diagnostic counters through
// Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cubeengine"

// Collector holds the engine's counters in a private registry so several
// engines (and tests) never collide on registration.
type Collector struct {
	registry *prometheus.Registry

	symbols   prometheus.Counter
	started   prometheus.Counter
	completed prometheus.Counter
	dropped   *prometheus.CounterVec
	layerMaps prometheus.Counter
	pending   prometheus.Gauge
	active    prometheus.Gauge
	moveTime  prometheus.Histogram
}

// New creates and registers a collector.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		symbols: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "symbols_received_total",
			Help:      "Input symbols submitted to the engine.",
		}),
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_started_total",
			Help:      "Layer rotations that began animating.",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_completed_total",
			Help:      "Layer rotations that reached their end angle.",
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "symbols_dropped_total",
			Help:      "Symbols that produced no move, by reason.",
		}, []string{"reason"}),
		layerMaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layer_maps_built_total",
			Help:      "Lattice classifications performed.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Symbols waiting for the scheduler.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active",
			Help:      "1 once the puzzle has been bootstrapped.",
		}),
		moveTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "move_duration_seconds",
			Help:      "Simulated time from move start to completion.",
			Buckets:   []float64{0.05, 0.1, 0.2, 0.4, 0.8, 1.6},
		}),
	}
	c.registry.MustRegister(c.symbols, c.started, c.completed, c.dropped,
		c.layerMaps, c.pending, c.active, c.moveTime)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// SymbolReceived counts one submitted symbol.
func (c *Collector) SymbolReceived() { c.symbols.Inc() }

// LayerMapBuilt counts one classification.
func (c *Collector) LayerMapBuilt() { c.layerMaps.Inc() }

// MoveStarted counts one started move.
func (c *Collector) MoveStarted() { c.started.Inc() }

// MoveCompleted counts one completed move and records its duration.
func (c *Collector) MoveCompleted(d time.Duration) {
	c.completed.Inc()
	c.moveTime.Observe(d.Seconds())
}

// Dropped counts one dropped symbol.
func (c *Collector) Dropped(reason string) {
	c.dropped.WithLabelValues(reason).Inc()
}

// SetPending records the queue depth.
func (c *Collector) SetPending(n int) { c.pending.Set(float64(n)) }

// SetActive records whether the engine is active.
func (c *Collector) SetActive(active bool) {
	if active {
		c.active.Set(1)
		return
	}
	c.active.Set(0)
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
