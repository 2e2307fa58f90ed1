package reactive

// staticValue is a Reader that never changes.
type staticValue[T any] struct {
	value T
}

// Static wraps a plain value as a Reader. Reads create no dependency.
func Static[T any](v T) Reader[T] {
	return staticValue[T]{value: v}
}

func (s staticValue[T]) Get() T  { return s.value }
func (s staticValue[T]) Peek() T { return s.value }

// ReaderFunc adapts a function to a Reader. Whatever fn reads is tracked by
// Get; Peek evaluates fn untracked.
type ReaderFunc[T any] func() T

func (f ReaderFunc[T]) Get() T { return f() }

func (f ReaderFunc[T]) Peek() T {
	var v T
	Untracked(func() { v = f() })
	return v
}
