package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a lazily computed, cached derived value. It tracks the reactive
// values read by its computation, is invalidated when one of them changes
// and recomputes on the next read. A Memo can itself be read by other
// listeners.
type Memo[T any] struct {
	base signalBase

	compute func() T

	value   T
	valueMu sync.RWMutex
	valid   atomic.Bool

	sources   []*signalBase
	sourcesMu sync.Mutex

	// computing guards against a memo reading itself.
	computing atomic.Bool
}

// NewMemo creates a memo. compute does not run until the first read.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		base:    signalBase{id: nextID()},
		compute: compute,
	}
}

// Get returns the memo value, recomputing if needed, and subscribes the
// current listener.
func (m *Memo[T]) Get() T {
	track(&m.base)
	return m.Peek()
}

// Peek returns the memo value without subscribing. It still recomputes an
// invalidated value.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() {
		m.recompute()
	}
	m.valueMu.RLock()
	defer m.valueMu.RUnlock()
	return m.value
}

// MarkDirty invalidates the cached value and propagates to subscribers.
func (m *Memo[T]) MarkDirty() {
	if m.valid.CompareAndSwap(true, false) {
		m.base.notify()
	}
}

// ID returns the memo id.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

// Dispose unsubscribes the memo from its sources and invalidates the cached
// value. A later read recomputes and subscribes again.
func (m *Memo[T]) Dispose() {
	m.valid.Store(false)
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]
}

func (m *Memo[T]) addSource(source *signalBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()
	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
}

func (m *Memo[T]) recompute() {
	if m.computing.Swap(true) {
		return
	}
	defer m.computing.Store(false)

	m.sourcesMu.Lock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	var next T
	WithListener(m, func() {
		next = m.compute()
	})

	m.valueMu.Lock()
	m.value = next
	m.valueMu.Unlock()
	m.valid.Store(true)
}

var _ sourceTracker = (*Memo[int])(nil)
