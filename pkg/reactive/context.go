package reactive

// Context is a typed, owner-scoped value. A provider stores the value on an
// owner; descendants find it by walking up the owner chain.
//
//	var Theme = reactive.CreateContext("light")
//
//	Theme.Provide(owner, "dark")
//	reactive.WithOwner(child, func() {
//	    theme := Theme.Use() // "dark"
//	})
type Context[T any] struct {
	defaultValue T
}

// contextKey keeps keys of distinct contexts distinct even for equal T.
type contextKey[T any] struct {
	ctx *Context[T]
}

// CreateContext creates a context whose Use falls back to defaultValue.
func CreateContext[T any](defaultValue T) *Context[T] {
	return &Context[T]{defaultValue: defaultValue}
}

func (c *Context[T]) key() any {
	return contextKey[T]{ctx: c}
}

// Provide stores value on owner for owner and its descendants.
func (c *Context[T]) Provide(owner *Owner, value T) {
	owner.SetValue(c.key(), value)
}

// Lookup returns the value from the nearest provider of the current owner.
// ok is false when no owner is active or no provider exists.
func (c *Context[T]) Lookup() (T, bool) {
	return c.LookupFrom(CurrentOwner())
}

// LookupFrom is Lookup starting at owner instead of the current owner.
func (c *Context[T]) LookupFrom(owner *Owner) (T, bool) {
	var zero T
	if owner == nil {
		return zero, false
	}
	v, ok := owner.LookupValue(c.key())
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Use returns the provided value or the default.
func (c *Context[T]) Use() T {
	if v, ok := c.Lookup(); ok {
		return v
	}
	return c.defaultValue
}

// Default returns the fallback value.
func (c *Context[T]) Default() T {
	return c.defaultValue
}
