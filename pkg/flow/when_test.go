package flow

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/declarative/pkg/reactive"
)

func TestWhenFirstMatchWins(t *testing.T) {
	fruit := reactive.NewSignal("apple")
	w := MustWhen[string](fruit,
		Equals("apple", text("show this")),
		Is(func(s string) bool { return strings.HasPrefix(s, "a") }, text("starts with a")),
		Equals("oranges", text("show that")),
		Otherwise[string](text("fallback")),
	)

	tests := []struct {
		value string
		want  string
	}{
		{"apple", "show this"},
		{"apricot", "starts with a"},
		{"oranges", "show that"},
		{"kiwi", "fallback"},
	}
	for _, tt := range tests {
		fruit.Set(tt.value)
		if got := renderHTML(t, w); got != tt.want {
			t.Errorf("value %q rendered %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestWhenWithoutOtherwiseRendersEmpty(t *testing.T) {
	w := MustWhen[int](reactive.Static(3), Equals(1, text("one")))
	if got := renderHTML(t, w); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if _, ok := w.Selected(); ok {
		t.Error("nothing should be selected")
	}
}

func TestWhenReusesContentForSameCase(t *testing.T) {
	n := reactive.NewSignal(2)
	evenRender, evenCalls := counted("even")
	w := MustWhen[int](n,
		Is(func(v int) bool { return v%2 == 0 }, evenRender),
		Otherwise[int](text("odd")),
	)
	m := mount(t, w)

	n.Set(4)
	m.flush()
	if m.runs != 2 {
		t.Fatalf("expected re-evaluation, got %d runs", m.runs)
	}
	if *evenCalls != 1 {
		t.Errorf("same case should reuse content, got %d calls", *evenCalls)
	}

	n.Set(5)
	m.flush()
	if m.html() != "odd" {
		t.Errorf("got %q, want odd", m.html())
	}
}

func TestNewWhenValidation(t *testing.T) {
	v := reactive.Static(1)
	tests := []struct {
		name  string
		value reactive.Reader[int]
		cases []Case[int]
	}{
		{"no value", nil, []Case[int]{Otherwise[int](text("x"))}},
		{"no cases", v, nil},
		{"otherwise not last", v, []Case[int]{Otherwise[int](text("x")), Equals(1, text("y"))}},
		{"two otherwise", v, []Case[int]{Otherwise[int](text("x")), Otherwise[int](text("y"))}},
		{"nil predicate", v, []Case[int]{Is[int](nil, text("x"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWhen(tt.value, tt.cases)
			if !errors.Is(err, ErrMalformedMatch) {
				t.Errorf("expected ErrMalformedMatch, got %v", err)
			}
		})
	}
}

func TestMustWhenPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustWhen[int](reactive.Static(1))
}
