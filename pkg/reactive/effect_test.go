package reactive

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	runs := 0
	CreateEffect(func() Cleanup {
		runs++
		return nil
	})
	if runs != 1 {
		t.Errorf("expected 1 run, got %d", runs)
	}
}

func TestEffectScheduledOnOwner(t *testing.T) {
	owner := NewOwner(nil)
	count := NewSignal(0)
	seen := []int{}

	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			seen = append(seen, count.Get())
			return nil
		})
	})

	count.Set(1)
	if len(seen) != 1 {
		t.Fatalf("owned effect should wait for the update pass, got %v", seen)
	}
	if !owner.HasPendingEffects() {
		t.Error("expected pending effects")
	}
	if ran := owner.RunPendingEffects(); ran != 1 {
		t.Errorf("expected 1 effect run, got %d", ran)
	}
	if len(seen) != 2 || seen[1] != 1 {
		t.Errorf("expected [0 1], got %v", seen)
	}
}

func TestEffectWithoutOwnerRunsSynchronously(t *testing.T) {
	count := NewSignal(0)
	runs := 0
	e := CreateEffect(func() Cleanup {
		_ = count.Get()
		runs++
		return nil
	})
	defer e.Dispose()

	count.Set(1)
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
}

func TestEffectCleanup(t *testing.T) {
	owner := NewOwner(nil)
	count := NewSignal(0)
	cleanups := 0

	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			_ = count.Get()
			return func() { cleanups++ }
		})
	})

	count.Set(1)
	owner.RunPendingEffects()
	if cleanups != 1 {
		t.Errorf("expected cleanup before re-run, got %d", cleanups)
	}
	owner.Dispose()
	if cleanups != 2 {
		t.Errorf("expected cleanup on dispose, got %d", cleanups)
	}
}

func TestEffectDisposedStopsRunning(t *testing.T) {
	count := NewSignal(0)
	runs := 0
	e := CreateEffect(func() Cleanup {
		_ = count.Get()
		runs++
		return nil
	})
	e.Dispose()
	count.Set(1)
	if runs != 1 {
		t.Errorf("disposed effect ran again: %d runs", runs)
	}
}

func TestEffectSelfWriteDoesNotRecurse(t *testing.T) {
	owner := NewOwner(nil)
	count := NewSignal(0)
	runs := 0

	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			runs++
			if v := count.Get(); v < 3 {
				count.Set(v + 1)
			}
			return nil
		})
	})

	if runs != 1 {
		t.Fatalf("expected 1 run before flush, got %d", runs)
	}
	owner.Flush(10)
	if count.Peek() != 3 {
		t.Errorf("expected count 3, got %d", count.Peek())
	}
}

func TestOnCleanupRegistersOnOwner(t *testing.T) {
	owner := NewOwner(nil)
	called := false
	WithOwner(owner, func() {
		OnCleanup(func() { called = true })
	})
	owner.Dispose()
	if !called {
		t.Error("cleanup should run on dispose")
	}

	// No owner: no-op.
	OnCleanup(func() { t.Error("must not run") })
}
