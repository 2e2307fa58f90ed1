package reactive

// Batch defers subscriber notification until fn returns. Listeners notified
// more than once are marked dirty once. Batches nest; only the outermost
// one flushes.
func Batch(fn func()) {
	st := currentState()
	st.batchDepth++
	defer func() {
		st.batchDepth--
		if st.batchDepth == 0 {
			flushPending(st)
		}
	}()
	fn()
}

func flushPending(st *trackingState) {
	for len(st.pending) > 0 {
		updates := st.pending
		st.pending = nil

		seen := make(map[uint64]bool, len(updates))
		for _, l := range updates {
			if seen[l.ID()] {
				continue
			}
			seen[l.ID()] = true
			l.MarkDirty()
		}
	}
}

// Untracked runs fn without subscribing the current listener to anything
// fn reads.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}
