package portal

import (
	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// ErrMissingProvider matches errors for portal use without a provider.
var ErrMissingProvider = errors.New("D001")

// providerKey is the owner value key of the registry for key type K.
type providerKey[K comparable] struct{}

// Provide creates a registry, stores it on owner for owner's descendants and
// resets it when owner is disposed. A provider on a nested owner shadows
// outer ones for the same key type.
func Provide[K comparable](owner *reactive.Owner, opts ...Option) *Registry[K] {
	reg := NewRegistry[K](opts...)
	owner.SetValue(providerKey[K]{}, reg)
	owner.OnCleanup(reg.Reset)
	return reg
}

// FromContext returns the registry provided above the current owner.
func FromContext[K comparable]() (*Registry[K], error) {
	return FromOwner[K](reactive.CurrentOwner())
}

// FromOwner returns the registry provided on owner or its nearest ancestor.
func FromOwner[K comparable](owner *reactive.Owner) (*Registry[K], error) {
	if owner == nil {
		return nil, errors.New("D001").WithDetail("no reactive owner is active")
	}
	v, ok := owner.LookupValue(providerKey[K]{})
	if !ok {
		var zero K
		return nil, errors.New("D001").WithDetailf("no registry for key type %T", zero)
	}
	return v.(*Registry[K]), nil
}

// MustFromContext is FromContext that panics when no provider is in scope.
func MustFromContext[K comparable]() *Registry[K] {
	reg, err := FromContext[K]()
	if err != nil {
		panic(err)
	}
	return reg
}

// Publish publishes into the registry provided in scope. It panics without
// a provider.
func Publish[K comparable](key K, render Renderer) {
	MustFromContext[K]().Publish(key, render)
}

// Consume consumes from the registry provided in scope. It panics without a
// provider.
func Consume[K comparable](key K) *vdom.VNode {
	return MustFromContext[K]().Consume(key)
}
