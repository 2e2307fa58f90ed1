package reactive

import "testing"

func TestMemoBasic(t *testing.T) {
	computations := 0
	count := NewSignal(5)

	doubled := NewMemo(func() int {
		computations++
		return count.Get() * 2
	})

	if computations != 0 {
		t.Errorf("memo should be lazy, got %d computations", computations)
	}
	if doubled.Get() != 10 {
		t.Errorf("expected 10, got %d", doubled.Get())
	}
	if doubled.Get() != 10 {
		t.Errorf("expected 10, got %d", doubled.Get())
	}
	if computations != 1 {
		t.Errorf("expected 1 computation (cached), got %d", computations)
	}
}

func TestMemoRecomputation(t *testing.T) {
	computations := 0
	count := NewSignal(5)
	doubled := NewMemo(func() int {
		computations++
		return count.Get() * 2
	})

	_ = doubled.Get()
	count.Set(10)

	if doubled.Get() != 20 {
		t.Errorf("expected 20, got %d", doubled.Get())
	}
	if computations != 2 {
		t.Errorf("expected 2 computations, got %d", computations)
	}
}

func TestMemoPropagatesToListener(t *testing.T) {
	flag := NewSignal(false)
	negated := NewMemo(func() bool { return !flag.Get() })

	l := newTestListener()
	WithListener(l, func() { _ = negated.Get() })

	flag.Set(true)
	if l.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification through memo, got %d", l.getDirtyCount())
	}
	if negated.Get() {
		t.Error("expected false after flag set")
	}
}

func TestMemoChain(t *testing.T) {
	count := NewSignal(2)
	doubled := NewMemo(func() int { return count.Get() * 2 })
	quadrupled := NewMemo(func() int { return doubled.Get() * 2 })

	if quadrupled.Get() != 8 {
		t.Errorf("expected 8, got %d", quadrupled.Get())
	}
	count.Set(3)
	if quadrupled.Get() != 12 {
		t.Errorf("expected 12, got %d", quadrupled.Get())
	}
}

func TestMemoDropsStaleSources(t *testing.T) {
	useA := NewSignal(true)
	a := NewSignal(1)
	b := NewSignal(2)
	computations := 0
	m := NewMemo(func() int {
		computations++
		if useA.Get() {
			return a.Get()
		}
		return b.Get()
	})

	_ = m.Get()
	useA.Set(false)
	if m.Get() != 2 {
		t.Errorf("expected 2, got %d", m.Get())
	}
	before := computations
	a.Set(100)
	_ = m.Get()
	if computations != before {
		t.Errorf("stale source should not invalidate memo, computations %d -> %d", before, computations)
	}
}

func TestMemoDispose(t *testing.T) {
	count := NewSignal(1)
	computations := 0
	m := NewMemo(func() int {
		computations++
		return count.Get()
	})

	_ = m.Get()
	if n := count.base.subscriberCount(); n != 1 {
		t.Fatalf("expected 1 subscriber, got %d", n)
	}

	m.Dispose()
	if n := count.base.subscriberCount(); n != 0 {
		t.Errorf("dispose should unsubscribe, got %d subscribers", n)
	}

	count.Set(5)
	if m.Get() != 5 || computations != 2 {
		t.Errorf("expected recompute to 5, got %d after %d computations", m.Get(), computations)
	}
}
