package portal

import (
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// Input publishes its children into a slot and renders nothing in place.
//
// An Input withdraws its content when the owner it was created under is
// disposed, e.g. when the branch holding it is deselected, so Outputs stop
// showing content whose Input is gone.
type Input[K comparable] struct {
	binding[K]
	key K
	e   *entry
}

// binding resolves a component's registry through the owner it was
// created under. Rendering usually happens under a different owner (the
// host's render effect), which may not see the same provider.
type binding[K comparable] struct {
	reg   *Registry[K]
	owner *reactive.Owner
}

func bindTo[K comparable](reg *Registry[K]) binding[K] {
	return binding[K]{reg: reg, owner: reactive.CurrentOwner()}
}

// registry returns the bound registry, looking it up from the creating
// owner on first use. It panics with a MissingProvider error when that
// owner has no provider.
func (b *binding[K]) registry() *Registry[K] {
	if b.reg == nil {
		reg, err := FromOwner[K](b.owner)
		if err != nil {
			panic(err)
		}
		b.reg = reg
	}
	return b.reg
}

// Input returns a component publishing children under key.
func (r *Registry[K]) Input(key K, children ...any) *Input[K] {
	return newInput(bindTo(r), key, children)
}

// NewInput returns an Input for the registry provided above the current
// owner.
func NewInput[K comparable](key K, children ...any) *Input[K] {
	return newInput(bindTo[K](nil), key, children)
}

func newInput[K comparable](b binding[K], key K, children []any) *Input[K] {
	in := &Input[K]{
		binding: b,
		key:     key,
		e: &entry{render: func() *vdom.VNode {
			return vdom.Fragment(children...)
		}},
	}
	reactive.OnCleanup(in.Withdraw)
	return in
}

// Render publishes the children and returns empty content.
func (in *Input[K]) Render() *vdom.VNode {
	in.registry().publish(in.key, in.e)
	return vdom.Empty()
}

// Withdraw clears the slot if it still holds this Input's content.
func (in *Input[K]) Withdraw() {
	if in.reg != nil {
		in.reg.withdraw(in.key, in.e)
	}
}

// Output renders the content published under its key.
type Output[K comparable] struct {
	binding[K]
	key K
}

// Output returns a component rendering the content published under key.
func (r *Registry[K]) Output(key K) *Output[K] {
	return &Output[K]{binding: bindTo(r), key: key}
}

// NewOutput returns an Output for the registry provided above the current
// owner.
func NewOutput[K comparable](key K) *Output[K] {
	return &Output[K]{binding: bindTo[K](nil), key: key}
}

// Render consumes the slot.
func (out *Output[K]) Render() *vdom.VNode {
	return out.registry().Consume(out.key)
}

var (
	_ vdom.Component = (*Input[string])(nil)
	_ vdom.Component = (*Output[string])(nil)
)
