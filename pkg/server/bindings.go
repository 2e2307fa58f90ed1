package server

import (
	"strconv"

	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/reactive"
)

// Binding exposes one signal to HTTP clients.
type Binding interface {
	Name() string

	// Value returns the current value without tracking.
	Value() any

	// Set parses raw and writes it to the signal.
	Set(raw string) error

	// Toggle flips a boolean signal. Other kinds return an error.
	Toggle() error
}

// Bool binds a boolean signal. Set accepts anything strconv.ParseBool does.
func Bool(name string, sig *reactive.Signal[bool]) Binding {
	return &boolBinding{name: name, sig: sig}
}

type boolBinding struct {
	name string
	sig  *reactive.Signal[bool]
}

func (b *boolBinding) Name() string { return b.name }
func (b *boolBinding) Value() any   { return b.sig.Peek() }

func (b *boolBinding) Set(raw string) error {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return errors.New("D011").WithDetailf("%s expects a boolean, got %q", b.name, raw)
	}
	b.sig.Set(v)
	return nil
}

func (b *boolBinding) Toggle() error {
	b.sig.Update(func(v bool) bool { return !v })
	return nil
}

// Int binds an integer signal.
func Int(name string, sig *reactive.Signal[int]) Binding {
	return &intBinding{name: name, sig: sig}
}

type intBinding struct {
	name string
	sig  *reactive.Signal[int]
}

func (b *intBinding) Name() string { return b.name }
func (b *intBinding) Value() any   { return b.sig.Peek() }

func (b *intBinding) Set(raw string) error {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return errors.New("D011").WithDetailf("%s expects an integer, got %q", b.name, raw)
	}
	b.sig.Set(v)
	return nil
}

func (b *intBinding) Toggle() error {
	return errors.New("D011").WithDetailf("%s is not a boolean", b.name)
}

// String binds a string signal. When allowed is non-empty, Set rejects any
// other value.
func String(name string, sig *reactive.Signal[string], allowed ...string) Binding {
	return &stringBinding{name: name, sig: sig, allowed: allowed}
}

type stringBinding struct {
	name    string
	sig     *reactive.Signal[string]
	allowed []string
}

func (b *stringBinding) Name() string { return b.name }
func (b *stringBinding) Value() any   { return b.sig.Peek() }

func (b *stringBinding) Set(raw string) error {
	if len(b.allowed) > 0 {
		ok := false
		for _, a := range b.allowed {
			if a == raw {
				ok = true
				break
			}
		}
		if !ok {
			return errors.New("D011").WithDetailf("%s must be one of %v, got %q", b.name, b.allowed, raw)
		}
	}
	b.sig.Set(raw)
	return nil
}

func (b *stringBinding) Toggle() error {
	return errors.New("D011").WithDetailf("%s is not a boolean", b.name)
}
