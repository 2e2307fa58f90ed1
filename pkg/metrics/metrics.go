// Package metrics exports Prometheus metrics for control-flow constructs,
// portal registries and the live server.
//
// A Collector implements both flow.Observer and portal.Observer:
//
//	m := metrics.New(metrics.WithRegistry(reg))
//	nav := flow.MustIf(loggedIn, ...) // with flow.WithObserver(m)
//	portals := portal.NewRegistry[string](portal.WithObserver(m))
//
// Metrics collected (namespace "declarative" by default):
//   - branch_selections_total{construct,outcome}
//   - portal_publishes_total{key}
//   - portal_consumes_total{key,result}
//   - portal_slots
//   - render_duration_seconds{surface}
//   - signal_writes_total{signal}
//   - live_clients
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/declarative/pkg/flow"
	"github.com/vango-dev/declarative/pkg/portal"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "declarative").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Buckets are the render duration histogram buckets.
	Buckets []float64

	// Registry receives the metrics (default: prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}

// WithBuckets sets the render duration buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) { c.Buckets = buckets }
}

// WithRegistry sets the registerer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = registry }
}

func defaultConfig() Config {
	return Config{
		Namespace: "declarative",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records metrics. The zero value is not usable; use New.
type Collector struct {
	branchSelections *prometheus.CounterVec
	portalPublishes  *prometheus.CounterVec
	portalConsumes   *prometheus.CounterVec
	portalSlots      prometheus.Gauge
	renderDuration   *prometheus.HistogramVec
	signalWrites     *prometheus.CounterVec
	liveClients      prometheus.Gauge
}

// New registers the metrics and returns their collector. Registering twice
// on the same registry panics, as promauto does.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		branchSelections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "branch_selections_total",
			Help:        "Evaluations of If and When constructs by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"construct", "outcome"}),

		portalPublishes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "portal_publishes_total",
			Help:        "Content published into portal slots",
			ConstLabels: config.ConstLabels,
		}, []string{"key"}),

		portalConsumes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "portal_consumes_total",
			Help:        "Portal slot reads by result (hit or empty)",
			ConstLabels: config.ConstLabels,
		}, []string{"key", "result"}),

		portalSlots: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "portal_slots",
			Help:        "Live portal slots across registries",
			ConstLabels: config.ConstLabels,
		}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Time spent rendering a tree to HTML",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"surface"}),

		signalWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signal_writes_total",
			Help:        "Signal writes received by the live server",
			ConstLabels: config.ConstLabels,
		}, []string{"signal"}),

		liveClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_clients",
			Help:        "Connected live update websocket clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// BranchSelected implements flow.Observer.
func (c *Collector) BranchSelected(construct string, _ int, outcome flow.Outcome) {
	c.branchSelections.WithLabelValues(construct, outcome.String()).Inc()
}

// SlotCreated implements portal.Observer.
func (c *Collector) SlotCreated(string) {
	c.portalSlots.Inc()
}

// Published implements portal.Observer.
func (c *Collector) Published(key string) {
	c.portalPublishes.WithLabelValues(key).Inc()
}

// Consumed implements portal.Observer.
func (c *Collector) Consumed(key string, hit bool) {
	result := "empty"
	if hit {
		result = "hit"
	}
	c.portalConsumes.WithLabelValues(key, result).Inc()
}

// SlotsDropped implements portal.Observer.
func (c *Collector) SlotsDropped(n int) {
	c.portalSlots.Sub(float64(n))
}

// ObserveRender records one render of surface ("page", "fragment",
// "snapshot", ...).
func (c *Collector) ObserveRender(surface string, d time.Duration) {
	c.renderDuration.WithLabelValues(surface).Observe(d.Seconds())
}

// SignalWritten records a write to the named signal.
func (c *Collector) SignalWritten(name string) {
	c.signalWrites.WithLabelValues(name).Inc()
}

// ClientConnected increments the live client gauge.
func (c *Collector) ClientConnected() {
	c.liveClients.Inc()
}

// ClientDisconnected decrements the live client gauge.
func (c *Collector) ClientDisconnected() {
	c.liveClients.Dec()
}

var (
	_ flow.Observer   = (*Collector)(nil)
	_ portal.Observer = (*Collector)(nil)
)
