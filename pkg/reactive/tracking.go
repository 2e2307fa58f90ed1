package reactive

import (
	"runtime"
	"sync"
)

// trackingState holds the reactive state for one goroutine.
type trackingState struct {
	// owner receives effects and scoped values created now.
	owner *Owner

	// listener subscribes to every signal read. nil disables tracking.
	listener Listener

	// batchDepth counts nested Batch calls.
	batchDepth int

	// pending collects listeners notified while batching.
	pending []Listener
}

var trackingStates sync.Map

// goroutineID parses the current goroutine id out of the stack header
// ("goroutine 18 [running]:").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func currentState() *trackingState {
	gid := goroutineID()
	if st, ok := trackingStates.Load(gid); ok {
		return st.(*trackingState)
	}
	st := &trackingState{}
	trackingStates.Store(gid, st)
	return st
}

func currentListener() Listener {
	return currentState().listener
}

func setCurrentListener(l Listener) Listener {
	st := currentState()
	old := st.listener
	st.listener = l
	return old
}

// CurrentOwner returns the owner active on this goroutine, or nil.
func CurrentOwner() *Owner {
	return currentState().owner
}

func setCurrentOwner(o *Owner) *Owner {
	st := currentState()
	old := st.owner
	st.owner = o
	return old
}

// WithOwner runs fn with owner as the current owner.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// WithListener runs fn with l tracking every reactive read.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}

// ReleaseGoroutine drops the tracking state of the calling goroutine.
// Long-lived event loops call it on exit.
func ReleaseGoroutine() {
	trackingStates.Delete(goroutineID())
}

// track subscribes the current listener to base and records the source on
// listeners that keep a source list.
func track(base *signalBase) {
	l := currentListener()
	if l == nil {
		return
	}
	base.subscribe(l)
	if s, ok := l.(sourceTracker); ok {
		s.addSource(base)
	}
}

// sourceTracker is implemented by listeners that unsubscribe from their
// sources before re-running.
type sourceTracker interface {
	Listener
	addSource(source *signalBase)
}
