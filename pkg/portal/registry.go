package portal

import (
	"fmt"
	"sync"

	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// Renderer lazily produces portal content.
type Renderer = func() *vdom.VNode

// entry is one published piece of content. taken is set once an Output has
// rendered it.
type entry struct {
	render Renderer
	taken  bool
}

func sameEntry(a, b *entry) bool { return a == b }

// Registry maps keys to portal slots. Slots are created on first use and
// live until Reset.
type Registry[K comparable] struct {
	opts options

	mu    sync.Mutex
	slots map[K]*reactive.Signal[*entry]
	order []K
}

// NewRegistry creates an empty registry.
func NewRegistry[K comparable](opts ...Option) *Registry[K] {
	return &Registry[K]{
		opts:  buildOptions(opts),
		slots: make(map[K]*reactive.Signal[*entry]),
	}
}

// slot returns the slot for key, creating it if needed.
func (r *Registry[K]) slot(key K) *reactive.Signal[*entry] {
	r.mu.Lock()
	s, ok := r.slots[key]
	if !ok {
		s = reactive.NewSignal[*entry](nil).WithEquals(sameEntry)
		r.slots[key] = s
		r.order = append(r.order, key)
	}
	r.mu.Unlock()

	if !ok {
		name := keyString(key)
		r.opts.logger.Debug("slot created", "key", name)
		if r.opts.observer != nil {
			r.opts.observer.SlotCreated(name)
		}
	}
	return s
}

// Publish replaces the content of key's slot. Outputs that consumed the slot
// are notified.
func (r *Registry[K]) Publish(key K, render Renderer) {
	r.publish(key, &entry{render: render})
}

// publish stores e. Republishing the entry already in the slot only makes it
// available again; the content is unchanged so nobody is notified.
func (r *Registry[K]) publish(key K, e *entry) {
	s := r.slot(key)
	if s.Peek() == e {
		e.taken = false
	} else {
		e.taken = false
		s.Set(e)
	}
	if r.opts.observer != nil {
		r.opts.observer.Published(keyString(key))
	}
}

// withdraw empties key's slot if it still holds e.
func (r *Registry[K]) withdraw(key K, e *entry) {
	r.mu.Lock()
	s, ok := r.slots[key]
	r.mu.Unlock()
	if ok && s.Peek() == e {
		s.Set(nil)
		r.opts.logger.Debug("content withdrawn", "key", keyString(key))
	}
}

// Consume takes the content out of key's slot and renders it. The read is
// tracked, so the calling effect re-runs on the next publish. Consuming an
// empty slot, or one already consumed, returns empty content.
func (r *Registry[K]) Consume(key K) *vdom.VNode {
	e := r.slot(key).Get()

	hit := e != nil && !e.taken && e.render != nil
	if r.opts.observer != nil {
		r.opts.observer.Consumed(keyString(key), hit)
	}
	if !hit {
		return vdom.Empty()
	}
	e.taken = true
	if n := e.render(); n != nil {
		return n
	}
	return vdom.Empty()
}

// Has reports whether key's slot holds content not yet consumed. It does
// not create a slot.
func (r *Registry[K]) Has(key K) bool {
	r.mu.Lock()
	s, ok := r.slots[key]
	r.mu.Unlock()
	if !ok {
		return false
	}
	e := s.Peek()
	return e != nil && !e.taken
}

// Keys returns the slot keys in creation order.
func (r *Registry[K]) Keys() []K {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]K(nil), r.order...)
}

// Len returns the number of slots.
func (r *Registry[K]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Reset drops every slot. Outputs still subscribed to a dropped slot are
// notified so they re-render against fresh slots.
func (r *Registry[K]) Reset() {
	r.mu.Lock()
	slots := r.slots
	r.slots = make(map[K]*reactive.Signal[*entry])
	r.order = nil
	r.mu.Unlock()

	for _, s := range slots {
		s.Set(nil)
	}
	if len(slots) > 0 {
		r.opts.logger.Debug("slots dropped", "count", len(slots))
		if r.opts.observer != nil {
			r.opts.observer.SlotsDropped(len(slots))
		}
	}
}

func keyString[K comparable](key K) string {
	if s, ok := any(key).(string); ok {
		return s
	}
	if s, ok := any(key).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", key)
}
