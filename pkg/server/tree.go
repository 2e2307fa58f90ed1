package server

import (
	"sort"
	"time"

	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/render"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// App builds a live component tree. Build runs once, on the goroutine that
// drives the tree, with owner as the current owner.
type App interface {
	Build(owner *reactive.Owner) (root vdom.Component, bindings []Binding)
}

// AppFunc adapts a function to App.
type AppFunc func(owner *reactive.Owner) (vdom.Component, []Binding)

// Build implements App.
func (f AppFunc) Build(owner *reactive.Owner) (vdom.Component, []Binding) {
	return f(owner)
}

// DefaultMaxPasses bounds the update passes Settle runs.
const DefaultMaxPasses = 16

// Tree is a mounted App. The root component is rendered by an effect on the
// tree's root owner, so it re-renders whenever anything it read changes
// and Settle runs the pending update passes.
//
// A Tree is not safe for concurrent use; drive it from one goroutine.
type Tree struct {
	owner    *reactive.Owner
	root     vdom.Component
	bindings map[string]Binding
	names    []string
	renderer *render.Renderer

	maxPasses int
	observe   func(surface string, d time.Duration)

	html    string
	err     error
	renders int
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithMaxPasses sets the update pass bound used by Settle.
func WithMaxPasses(n int) TreeOption {
	return func(t *Tree) { t.maxPasses = n }
}

// WithRenderObserver receives the duration of every render pass under the
// "tree" surface.
func WithRenderObserver(fn func(surface string, d time.Duration)) TreeOption {
	return func(t *Tree) { t.observe = fn }
}

// Mount builds app and renders it once.
func Mount(app App, renderer *render.Renderer, opts ...TreeOption) *Tree {
	t := &Tree{
		owner:     reactive.NewOwner(nil),
		bindings:  make(map[string]Binding),
		renderer:  renderer,
		maxPasses: DefaultMaxPasses,
	}
	for _, opt := range opts {
		opt(t)
	}

	reactive.WithOwner(t.owner, func() {
		root, bindings := app.Build(t.owner)
		t.root = root
		for _, b := range bindings {
			if _, dup := t.bindings[b.Name()]; !dup {
				t.names = append(t.names, b.Name())
			}
			t.bindings[b.Name()] = b
		}
		sort.Strings(t.names)
		reactive.CreateEffect(t.renderPass)
	})
	return t
}

func (t *Tree) renderPass() reactive.Cleanup {
	start := time.Now()
	html, err := t.renderer.RenderComponent(t.root)
	if t.observe != nil {
		t.observe("tree", time.Since(start))
	}
	t.renders++
	if err != nil {
		t.err = errors.New("D012").Wrap(err)
		return nil
	}
	t.html, t.err = html, nil
	return nil
}

// Settle runs update passes until nothing is pending or the pass bound is
// hit. settled is false when effects are still pending afterwards.
func (t *Tree) Settle() (passes int, settled bool) {
	passes = t.owner.Flush(t.maxPasses)
	return passes, !t.owner.HasPendingEffects()
}

// HTML returns the body rendered by the last pass.
func (t *Tree) HTML() (string, error) {
	return t.html, t.err
}

// Renders returns the number of render passes so far.
func (t *Tree) Renders() int {
	return t.renders
}

// Binding returns the binding registered under name.
func (t *Tree) Binding(name string) (Binding, bool) {
	b, ok := t.bindings[name]
	return b, ok
}

// Set writes raw to the named signal.
func (t *Tree) Set(name, raw string) error {
	b, ok := t.bindings[name]
	if !ok {
		return errors.New("D010").WithDetail(name)
	}
	return b.Set(raw)
}

// Toggle flips the named boolean signal.
func (t *Tree) Toggle(name string) error {
	b, ok := t.bindings[name]
	if !ok {
		return errors.New("D010").WithDetail(name)
	}
	return b.Toggle()
}

// Values returns every bound signal's current value.
func (t *Tree) Values() map[string]any {
	out := make(map[string]any, len(t.bindings))
	for name, b := range t.bindings {
		out[name] = b.Value()
	}
	return out
}

// Names returns the bound signal names, sorted.
func (t *Tree) Names() []string {
	return append([]string(nil), t.names...)
}

// Dispose tears the tree down.
func (t *Tree) Dispose() {
	t.owner.Dispose()
}
