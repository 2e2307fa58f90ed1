package reactive

import "sync/atomic"

// Listener is anything that can be notified when a dependency changes.
// Memos and effects implement it.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier used for deduplication.
	ID() uint64
}

// Cleanup is returned by effects and runs before the effect re-runs and
// when it is disposed.
type Cleanup func()

// Reader is a readable reactive value. Get tracks the read, Peek does not.
type Reader[T any] interface {
	Get() T
	Peek() T
}

var idCounter uint64

// nextID returns a process-unique, monotonically increasing id.
func nextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}
