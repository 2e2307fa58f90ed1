package reactive

import "testing"

func TestContextProvideAndUse(t *testing.T) {
	theme := CreateContext("light")
	root := NewOwner(nil)
	child := NewOwner(root)

	WithOwner(child, func() {
		if theme.Use() != "light" {
			t.Errorf("expected default, got %q", theme.Use())
		}
		if _, ok := theme.Lookup(); ok {
			t.Error("Lookup should report missing provider")
		}
	})

	theme.Provide(root, "dark")
	WithOwner(child, func() {
		v, ok := theme.Lookup()
		if !ok || v != "dark" {
			t.Errorf("expected dark, got %q (found=%v)", v, ok)
		}
	})
}

func TestContextDistinctKeys(t *testing.T) {
	a := CreateContext(0)
	b := CreateContext(0)
	owner := NewOwner(nil)
	a.Provide(owner, 1)

	if _, ok := b.LookupFrom(owner); ok {
		t.Error("contexts of the same type must not share values")
	}
	if v, _ := a.LookupFrom(owner); v != 1 {
		t.Errorf("expected 1, got %d", v)
	}
}

func TestContextWithoutOwner(t *testing.T) {
	c := CreateContext("x")
	if _, ok := c.Lookup(); ok {
		t.Error("no owner means no provider")
	}
	if c.Use() != "x" || c.Default() != "x" {
		t.Error("expected default value")
	}
}

func TestContextNestedProvidersInnermostWins(t *testing.T) {
	c := CreateContext("")
	outer := NewOwner(nil)
	inner := NewOwner(outer)
	c.Provide(outer, "outer")
	c.Provide(inner, "inner")

	if v, _ := c.LookupFrom(inner); v != "inner" {
		t.Errorf("expected inner, got %q", v)
	}
}
