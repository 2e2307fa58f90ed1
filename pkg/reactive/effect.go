package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs when something it read changes.
//
// A dirty effect with an owner is queued on that owner and runs during the
// owner's next RunPendingEffects. An effect created without an owner re-runs
// synchronously when marked dirty.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sources   []*signalBase
	sourcesMu sync.Mutex

	owner *Owner

	pending  atomic.Bool
	disposed atomic.Bool
	running  atomic.Bool
}

// CreateEffect creates an effect owned by the current owner and runs it once.
func CreateEffect(fn func() Cleanup) *Effect {
	owner := CurrentOwner()
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}
	if owner != nil {
		owner.registerEffect(e)
	}
	e.run()
	return e
}

// OnCleanup registers fn to run when the current owner is disposed.
// It is a no-op without an owner.
func OnCleanup(fn func()) {
	if owner := CurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

// MarkDirty schedules the effect to re-run.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if !e.pending.CompareAndSwap(false, true) {
		return
	}
	if e.owner != nil {
		e.owner.scheduleEffect(e)
		return
	}
	e.run()
}

// ID returns the effect id.
func (e *Effect) ID() uint64 {
	return e.id
}

// Pending reports whether the effect is waiting to re-run.
func (e *Effect) Pending() bool {
	return e.pending.Load()
}

// Dispose stops the effect and runs its last cleanup.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.dropSources()
}

func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	// A write inside the body that dirties the effect itself is picked up
	// after the body returns instead of recursing.
	if e.running.Swap(true) {
		return
	}
	defer e.running.Store(false)

	for {
		e.pending.Store(false)
		e.runBody()
		if e.owner != nil || !e.pending.Load() || e.disposed.Load() {
			return
		}
	}
}

func (e *Effect) runBody() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.dropSources()

	prevOwner := setCurrentOwner(e.owner)
	defer setCurrentOwner(prevOwner)

	WithListener(e, func() {
		e.cleanup = e.fn()
	})
}

func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

func (e *Effect) dropSources() {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
}

var _ sourceTracker = (*Effect)(nil)
