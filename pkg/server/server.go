package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/declarative/pkg/metrics"
	"github.com/vango-dev/declarative/pkg/render"
)

const tracerName = "github.com/vango-dev/declarative/pkg/server"

// ErrClosed is returned for work submitted after Close.
var ErrClosed = stderrors.New("server: closed")

// Config configures a Server.
type Config struct {
	// Address is the listen address for Run.
	Address string

	// Title is the page title.
	Title string

	// MetricsPath serves Prometheus metrics. Empty or "-" disables it.
	MetricsPath string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// PingInterval is the websocket keepalive interval.
	PingInterval time.Duration

	// WriteTimeout bounds a single websocket write.
	WriteTimeout time.Duration

	// MaxPasses bounds update passes after each change.
	MaxPasses int

	Render render.RendererConfig
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:         "localhost:4000",
		Title:           "declarative",
		MetricsPath:     "/metrics",
		ShutdownTimeout: 10 * time.Second,
		PingInterval:    30 * time.Second,
		WriteTimeout:    10 * time.Second,
		MaxPasses:       DefaultMaxPasses,
	}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics records render, signal and client metrics.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Server) { s.metrics = m }
}

// WithGatherer sets the registry served on the metrics path
// (default: prometheus.DefaultGatherer).
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithTracer sets the tracer (default: the global provider's tracer).
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// Server serves one mounted App.
type Server struct {
	config   Config
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *metrics.Collector
	gatherer prometheus.Gatherer
	renderer *render.Renderer
	upgrader websocket.Upgrader

	// Event loop. tree and lastSent are only touched on the loop goroutine.
	tasks    chan func()
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	tree     *Tree
	lastSent string

	clients   map[*client]struct{}
	clientsMu sync.Mutex

	httpServer *http.Server
}

// New mounts app on a fresh event loop.
func New(app App, config Config, opts ...Option) (*Server, error) {
	defaults := DefaultConfig()
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if config.PingInterval == 0 {
		config.PingInterval = defaults.PingInterval
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.MaxPasses == 0 {
		config.MaxPasses = defaults.MaxPasses
	}

	s := &Server{
		config:   config,
		logger:   slog.Default(),
		gatherer: prometheus.DefaultGatherer,
		renderer: render.NewRenderer(config.Render),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		tasks:   make(chan func()),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		clients: make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}

	go s.loop()

	treeOpts := []TreeOption{WithMaxPasses(config.MaxPasses)}
	if s.metrics != nil {
		treeOpts = append(treeOpts, WithRenderObserver(s.metrics.ObserveRender))
	}
	err := s.dispatch(context.Background(), func() {
		s.tree = Mount(app, s.renderer, treeOpts...)
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	s.logger.Debug("app mounted", "signals", len(s.tree.names))
	return s, nil
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown disconnects live clients, stops the HTTP server and the event
// loop.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.closeClients()

	var err error
	if s.httpServer != nil {
		if err = s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
		}
	}
	s.Close()

	s.logger.Info("server shutdown complete")
	return err
}

// Close disposes the tree and stops the event loop. It is safe to call more
// than once.
func (s *Server) Close() {
	_ = s.dispatchRaw(context.Background(), func() {
		if s.tree != nil {
			s.tree.Dispose()
		}
	})
	s.stopOnce.Do(func() { close(s.done) })
	<-s.stopped
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}
