package flow

import (
	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// ErrMalformedMatch matches errors returned for invalid When case lists.
var ErrMalformedMatch = errors.New("D003")

// Case is one arm of a When.
type Case[T any] struct {
	match     func(T) bool
	otherwise bool
	render    Renderer
}

// Is matches when pred returns true for the current value.
func Is[T any](pred func(T) bool, render Renderer) Case[T] {
	return Case[T]{match: pred, render: render}
}

// Equals matches when the current value equals v.
func Equals[T comparable](v T, render Renderer) Case[T] {
	return Case[T]{match: func(x T) bool { return x == v }, render: render}
}

// Otherwise matches any value. It must be the last case.
func Otherwise[T any](render Renderer) Case[T] {
	return Case[T]{otherwise: true, render: render}
}

// When renders the first case matching a reactive value. It implements
// vdom.Component.
type When[T any] struct {
	selector

	value reactive.Reader[T]
	cases []Case[T]
}

// NewWhen builds a When over value. It needs at least one case, and an
// Otherwise may only appear once, in last position; otherwise the returned
// error matches ErrMalformedMatch.
func NewWhen[T any](value reactive.Reader[T], cases []Case[T], opts ...Option) (*When[T], error) {
	if value == nil {
		return nil, errors.New("D003").WithDetail("When has no value")
	}
	if len(cases) == 0 {
		return nil, errors.New("D003").WithDetail("When needs at least one case")
	}
	for i, c := range cases {
		if c.otherwise {
			if i != len(cases)-1 {
				return nil, errors.New("D003").WithDetailf("Otherwise must be the last case, found at position %d of %d", i, len(cases))
			}
			continue
		}
		if c.match == nil {
			return nil, errors.New("D003").WithDetailf("case at position %d has no predicate", i)
		}
	}
	w := &When[T]{
		selector: newSelector(buildOptions("when", opts)),
		value:    value,
		cases:    append([]Case[T](nil), cases...),
	}
	reactive.OnCleanup(w.dropScope)
	return w, nil
}

// MustWhen is NewWhen taking cases variadically. It panics on a malformed
// case list.
func MustWhen[T any](value reactive.Reader[T], cases ...Case[T]) *When[T] {
	w, err := NewWhen(value, cases)
	if err != nil {
		panic(err)
	}
	return w
}

// Render selects the first matching case and returns its content.
func (w *When[T]) Render() *vdom.VNode {
	v := w.value.Get()

	idx := -1
	for i, c := range w.cases {
		if c.otherwise || c.match(v) {
			idx = i
			break
		}
	}

	var render Renderer
	if idx >= 0 {
		render = w.cases[idx].render
	}
	return w.pick(idx, render)
}

var _ vdom.Component = (*When[int])(nil)
