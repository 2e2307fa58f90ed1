package flow

import (
	"errors"
	"testing"

	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/vdom"
)

func TestIfSelectionPriority(t *testing.T) {
	tests := []struct {
		name     string
		primary  bool
		alts     []bool
		withElse bool
		want     string
		wantIdx  int
	}{
		{"primary wins over alternatives", true, []bool{true, true}, true, "then", 0},
		{"first true alternative", false, []bool{true, true}, true, "alt0", 1},
		{"second alternative over fallback", false, []bool{false, true}, true, "alt1", 2},
		{"fallback when nothing matches", false, []bool{false, false}, true, "else", 3},
		{"empty without fallback", false, []bool{false, false}, false, "", -1},
		{"then only, false", false, nil, false, "", -1},
		{"then and else only", false, nil, true, "else", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := []Block{Then(text("then"))}
			for i, a := range tt.alts {
				blocks = append(blocks, ElseIf(reactive.Static(a), text("alt"+string(rune('0'+i)))))
			}
			if tt.withElse {
				blocks = append(blocks, Else(text("else")))
			}
			b, err := NewIf(reactive.Static(tt.primary), blocks)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := renderHTML(t, b); got != tt.want {
				t.Errorf("rendered %q, want %q", got, tt.want)
			}
			idx, ok := b.Selected()
			if idx != tt.wantIdx || ok != (tt.wantIdx >= 0) {
				t.Errorf("Selected() = %d, %v, want %d", idx, ok, tt.wantIdx)
			}
		})
	}
}

func TestIfEmptyContentIsEmptyFragment(t *testing.T) {
	b := MustIf(reactive.Static(false), Then(text("x")))
	node := b.Render()
	if node == nil || !node.IsEmpty() {
		t.Errorf("expected empty content, got %+v", node)
	}
}

func TestIfReusesContentWhenSelectionUnchanged(t *testing.T) {
	cond := reactive.NewSignal(true)
	unrelated := reactive.NewSignal(0)
	thenRender, thenCalls := counted("yes")

	b := MustIf(cond, Then(thenRender), Else(text("no")))
	m := mount(t, b, unrelated)

	first := m.last
	if *thenCalls != 1 {
		t.Fatalf("expected 1 render, got %d", *thenCalls)
	}

	unrelated.Set(1)
	m.flush()
	if m.runs != 2 {
		t.Fatalf("expected host re-run, got %d runs", m.runs)
	}
	if *thenCalls != 1 {
		t.Errorf("renderer re-invoked on a no-op re-evaluation: %d calls", *thenCalls)
	}
	if m.last != first {
		t.Error("content identity should be stable")
	}
	if b.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", b.Renders())
	}
}

func TestIfSwitchesAndRerendersOnChange(t *testing.T) {
	cond := reactive.NewSignal(true)
	thenRender, thenCalls := counted("yes")
	elseRender, elseCalls := counted("no")

	m := mount(t, MustIf(cond, Then(thenRender), Else(elseRender)))
	if m.html() != "yes" {
		t.Fatalf("got %q", m.html())
	}

	cond.Set(false)
	m.flush()
	if m.html() != "no" {
		t.Errorf("got %q, want no", m.html())
	}

	cond.Set(true)
	m.flush()
	if m.html() != "yes" {
		t.Errorf("got %q, want yes", m.html())
	}
	if *thenCalls != 2 || *elseCalls != 1 {
		t.Errorf("render calls then=%d else=%d, want 2 and 1", *thenCalls, *elseCalls)
	}
}

func TestIfSubscribesToLaterAlternatives(t *testing.T) {
	primary := reactive.NewSignal(true)
	alt1 := reactive.NewSignal(false)
	alt2 := reactive.NewSignal(false)

	b := MustIf(primary,
		Then(text("p")),
		ElseIf(alt1, text("a1")),
		ElseIf(alt2, text("a2")),
	)
	m := mount(t, b)

	// Primary is selected, so the scan never reaches alt2; its change must
	// still re-run the host.
	alt2.Set(true)
	if !m.owner.HasPendingEffects() {
		t.Fatal("changing a later alternative should schedule re-evaluation")
	}
	m.flush()
	if m.runs != 2 {
		t.Errorf("expected 2 runs, got %d", m.runs)
	}
	if m.html() != "p" {
		t.Errorf("primary should stay selected, got %q", m.html())
	}

	// With alt1 selected, alt2 flipping still re-evaluates.
	primary.Set(false)
	alt1.Set(true)
	m.flush()
	if m.html() != "a1" {
		t.Fatalf("got %q, want a1", m.html())
	}
	runs := m.runs
	alt2.Set(false)
	m.flush()
	if m.runs != runs+1 {
		t.Errorf("expected re-evaluation after alt2 changed, runs %d -> %d", runs, m.runs)
	}

	// Falling through to alt2.
	alt2.Set(true)
	alt1.Set(false)
	m.flush()
	if m.html() != "a2" {
		t.Errorf("got %q, want a2", m.html())
	}
}

func TestIfScenarioSecondAlternativeBeatsFallback(t *testing.T) {
	b := MustIf(reactive.Static(false),
		Then(text("primary")),
		ElseIf(reactive.Static(false), text("alt1")),
		ElseIf(reactive.Static(true), text("alt2")),
		Else(text("fallback")),
	)
	if got := renderHTML(t, b); got != "alt2" {
		t.Errorf("got %q, want alt2", got)
	}
}

func TestIfScenarioNothingMatchesNoFallback(t *testing.T) {
	b := MustIf(reactive.Static(false),
		Then(text("primary")),
		ElseIf(reactive.Static(false), text("alt1")),
		ElseIf(reactive.Static(false), text("alt2")),
	)
	if got := renderHTML(t, b); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestNewIfValidation(t *testing.T) {
	yes := reactive.Static(true)
	tests := []struct {
		name   string
		cond   reactive.Reader[bool]
		blocks []Block
	}{
		{"no condition", nil, []Block{Then(text("x"))}},
		{"no blocks", yes, nil},
		{"else first", yes, []Block{Else(text("e")), Then(text("t"))}},
		{"elseif first", yes, []Block{ElseIf(yes, text("e")), Then(text("t"))}},
		{"two thens", yes, []Block{Then(text("a")), Then(text("b"))}},
		{"two elses", yes, []Block{Then(text("a")), Else(text("b")), Else(text("c"))}},
		{"else not last", yes, []Block{Then(text("a")), Else(text("b")), ElseIf(yes, text("c"))}},
		{"elseif without condition", yes, []Block{Then(text("a")), ElseIf(nil, text("b"))}},
		{"zero block", yes, []Block{Then(text("a")), {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewIf(tt.cond, tt.blocks)
			if err == nil {
				t.Fatal("expected error")
			}
			if b != nil {
				t.Error("expected nil If on error")
			}
			if !errors.Is(err, ErrMalformedBranchSet) {
				t.Errorf("error %v should match ErrMalformedBranchSet", err)
			}
		})
	}
}

func TestMustIfPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if err, ok := r.(error); !ok || !errors.Is(err, ErrMalformedBranchSet) {
			t.Errorf("unexpected panic value %v", r)
		}
	}()
	MustIf(reactive.Static(true), Else(text("x")))
}

func TestIfNilRendererRendersEmpty(t *testing.T) {
	b := MustIf(reactive.Static(true), Then(nil))
	if !b.Render().IsEmpty() {
		t.Error("nil renderer should produce empty content")
	}
	b2 := MustIf(reactive.Static(true), Then(func() *vdom.VNode { return nil }))
	if !b2.Render().IsEmpty() {
		t.Error("nil node should produce empty content")
	}
}

func TestShow(t *testing.T) {
	cond := reactive.NewSignal(false)
	s := Show(cond, text("on"), text("off"))
	if got := renderHTML(t, s); got != "off" {
		t.Errorf("got %q, want off", got)
	}
	cond.Set(true)
	if got := renderHTML(t, s); got != "on" {
		t.Errorf("got %q, want on", got)
	}
	if s.Name() != "show" {
		t.Errorf("Name() = %q", s.Name())
	}

	bare := Show(reactive.Static(false), text("on"), nil)
	if got := renderHTML(t, bare); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestIfObserver(t *testing.T) {
	type event struct {
		name    string
		index   int
		outcome Outcome
	}
	var events []event
	obs := ObserverFunc(func(name string, index int, outcome Outcome) {
		events = append(events, event{name, index, outcome})
	})

	cond := reactive.NewSignal(true)
	b, err := NewIf(cond, []Block{Then(text("a"))}, WithName("nav"), WithObserver(obs))
	if err != nil {
		t.Fatal(err)
	}

	b.Render()
	b.Render()
	cond.Set(false)
	b.Render()

	want := []event{
		{"nav", 0, OutcomeRendered},
		{"nav", 0, OutcomeReused},
		{"nav", -1, OutcomeEmpty},
	}
	if len(events) != len(want) {
		t.Fatalf("got %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, events[i], want[i])
		}
	}
}

func TestOutcomeString(t *testing.T) {
	for o, want := range map[Outcome]string{
		OutcomeRendered: "rendered",
		OutcomeReused:   "reused",
		OutcomeEmpty:    "empty",
		Outcome(9):      "unknown",
	} {
		if o.String() != want {
			t.Errorf("%d.String() = %q, want %q", o, o.String(), want)
		}
	}
}

func TestNestedIfIsDisposedWithOuterBlock(t *testing.T) {
	outer := reactive.NewSignal(true)
	built, cleaned := 0, 0

	b := MustIf(outer, Then(func() *vdom.VNode {
		built++
		inner := MustIf(reactive.Static(true), Then(func() *vdom.VNode {
			reactive.OnCleanup(func() { cleaned++ })
			return vdom.Text("inner")
		}))
		return vdom.Div(inner)
	}))
	owner, got := mountHTML(t, b)

	if *got != "<div>inner</div>" {
		t.Fatalf("got %q", *got)
	}
	for i := 0; i < 5; i++ {
		outer.Set(false)
		owner.Flush(4)
		if cleaned != built {
			t.Fatalf("toggle %d: built %d inner blocks, cleaned %d", i, built, cleaned)
		}
		outer.Set(true)
		owner.Flush(4)
	}
	outer.Set(false)
	owner.Flush(4)

	if built != 6 || cleaned != 6 {
		t.Errorf("expected 6 inner blocks built and cleaned, got %d and %d", built, cleaned)
	}
	if *got != "" {
		t.Errorf("expected empty content, got %q", *got)
	}
}

func TestNestedWhenInsideElse(t *testing.T) {
	loggedIn := reactive.NewSignal(false)
	role := reactive.NewSignal("guest")
	cleaned := 0

	b := MustIf(loggedIn,
		Then(text("welcome")),
		Else(func() *vdom.VNode {
			return vdom.P(MustWhen[string](role,
				Equals("guest", func() *vdom.VNode {
					reactive.OnCleanup(func() { cleaned++ })
					return vdom.Text("sign in")
				}),
				Otherwise[string](text("?")),
			))
		}),
	)
	owner, got := mountHTML(t, b)
	if *got != "<p>sign in</p>" {
		t.Fatalf("got %q", *got)
	}

	loggedIn.Set(true)
	owner.Flush(4)
	if *got != "welcome" {
		t.Errorf("got %q", *got)
	}
	if cleaned != 1 {
		t.Errorf("nested case content should be cleaned up once, got %d", cleaned)
	}
}
