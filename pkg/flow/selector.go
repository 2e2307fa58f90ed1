package flow

import (
	"log/slog"

	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// Renderer lazily produces content.
type Renderer = func() *vdom.VNode

// Content returns a Renderer producing a fragment of children. The
// children are built once by the caller; use a func literal when they must
// be rebuilt on each selection.
func Content(children ...any) Renderer {
	return func() *vdom.VNode {
		return vdom.Fragment(children...)
	}
}

// Outcome classifies one evaluation of a construct.
type Outcome uint8

const (
	// OutcomeRendered means a different block was selected and rendered.
	OutcomeRendered Outcome = iota
	// OutcomeReused means the selection was unchanged and cached content
	// was returned.
	OutcomeReused
	// OutcomeEmpty means no block matched.
	OutcomeEmpty
)

// String returns the outcome label used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case OutcomeRendered:
		return "rendered"
	case OutcomeReused:
		return "reused"
	case OutcomeEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Observer is notified after every evaluation. index is the selected block
// position, -1 when nothing matched.
type Observer interface {
	BranchSelected(construct string, index int, outcome Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(construct string, index int, outcome Outcome)

// BranchSelected implements Observer.
func (f ObserverFunc) BranchSelected(construct string, index int, outcome Outcome) {
	f(construct, index, outcome)
}

// Option configures an If or When.
type Option func(*options)

type options struct {
	name     string
	observer Observer
	logger   *slog.Logger
}

// WithName labels the construct in logs and observer callbacks.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithObserver registers an evaluation observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger sets the logger used for selection changes (debug level).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(defaultName string, opts []Option) options {
	o := options{name: defaultName}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.logger = o.logger.With("component", "flow", "construct", o.name)
	return o
}

const notRendered = -2

// selector caches the content of the last selected block. Each block
// renders under its own owner, disposed when the selection moves away, so
// effects and cleanups registered by block content share its lifetime.
//
// Block owners are children of the owner the construct was built under,
// not of whatever owner is current when the renderer expands it. A
// construct built inside another block's content is therefore torn down
// with that block.
type selector struct {
	opts     options
	parent   *reactive.Owner
	selected int
	content  *vdom.VNode
	scope    *reactive.Owner
	renders  int
}

func newSelector(opts options) selector {
	return selector{
		opts:     opts,
		parent:   reactive.CurrentOwner(),
		selected: notRendered,
	}
}

// pick returns the content for block index idx (-1 for none), invoking
// render only when the selection changed.
func (s *selector) pick(idx int, render Renderer) *vdom.VNode {
	var outcome Outcome
	switch {
	case idx == s.selected && s.content != nil:
		outcome = OutcomeReused
	case idx < 0:
		s.dropScope()
		s.content = vdom.Empty()
		outcome = OutcomeEmpty
	default:
		s.content = s.renderScoped(render)
		s.renders++
		outcome = OutcomeRendered
	}
	if idx < 0 {
		outcome = OutcomeEmpty
	}

	if s.selected != idx {
		s.opts.logger.Debug("selection changed", "from", s.selected, "to", idx)
	}
	s.selected = idx

	if s.opts.observer != nil {
		s.opts.observer.BranchSelected(s.opts.name, idx, outcome)
	}
	return s.content
}

func (s *selector) renderScoped(render Renderer) *vdom.VNode {
	s.dropScope()
	parent := s.parent
	if parent == nil || parent.IsDisposed() {
		parent = reactive.CurrentOwner()
	}
	s.scope = reactive.NewOwner(parent)

	var n *vdom.VNode
	reactive.WithOwner(s.scope, func() {
		n = callRenderer(render)
	})
	return n
}

func (s *selector) dropScope() {
	if s.scope != nil {
		s.scope.Dispose()
		s.scope = nil
	}
}

func callRenderer(render Renderer) *vdom.VNode {
	if render == nil {
		return vdom.Empty()
	}
	if n := render(); n != nil {
		return n
	}
	return vdom.Empty()
}

// Selected returns the index of the block chosen by the last render. ok is
// false before the first render and when no block matched.
func (s *selector) Selected() (index int, ok bool) {
	if s.selected < 0 {
		return -1, false
	}
	return s.selected, true
}

// Renders returns how many times a block renderer has been invoked.
func (s *selector) Renders() int {
	return s.renders
}

// Name returns the construct label.
func (s *selector) Name() string {
	return s.opts.name
}
