package snapshot

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/render"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// ContentType is the content type of published pages.
const ContentType = "text/html; charset=utf-8"

// Store persists rendered pages.
type Store interface {
	// Put stores body under key and returns where it was written.
	Put(ctx context.Context, key string, body []byte) (location string, err error)
}

// Result describes one published snapshot.
type Result struct {
	Key        string
	Location   string
	Bytes      int
	RenderedAt time.Time
	Duration   time.Duration
}

// Publisher renders pages and writes them to a Store.
type Publisher struct {
	store    Store
	renderer *render.Renderer
	logger   *slog.Logger
	observe  func(surface string, d time.Duration)
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithRenderer sets the renderer (default: compact output).
func WithRenderer(r *render.Renderer) PublisherOption {
	return func(p *Publisher) { p.renderer = r }
}

// WithLogger sets the publisher logger.
func WithLogger(l *slog.Logger) PublisherOption {
	return func(p *Publisher) { p.logger = l }
}

// WithRenderObserver receives the render duration of every snapshot under
// the "snapshot" surface.
func WithRenderObserver(fn func(surface string, d time.Duration)) PublisherOption {
	return func(p *Publisher) { p.observe = fn }
}

// NewPublisher creates a Publisher writing to store.
func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		store:    store,
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "snapshot")
	return p
}

// Publish renders body as a full page and stores it under key.
func (p *Publisher) Publish(ctx context.Context, key string, opts render.PageOptions, body *vdom.VNode) (*Result, error) {
	start := time.Now()
	var buf bytes.Buffer
	if err := p.renderer.RenderPage(&buf, opts, body); err != nil {
		return nil, errors.New("D012").WithDetail("snapshot " + key).Wrap(err)
	}
	elapsed := time.Since(start)
	if p.observe != nil {
		p.observe("snapshot", elapsed)
	}

	location, err := p.store.Put(ctx, key, buf.Bytes())
	if err != nil {
		p.logger.Error("snapshot upload failed", "key", key, "error", err)
		return nil, errors.New("D030").WithDetail(key).Wrap(err)
	}

	p.logger.Info("snapshot published", "key", key, "location", location, "bytes", buf.Len())
	return &Result{
		Key:        key,
		Location:   location,
		Bytes:      buf.Len(),
		RenderedAt: start,
		Duration:   elapsed,
	}, nil
}
