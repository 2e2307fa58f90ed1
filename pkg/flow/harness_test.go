package flow

import (
	"testing"

	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/render"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// mounted renders a component inside an owned effect, the way a host
// re-renders a component whose dependencies changed.
type mounted struct {
	t     *testing.T
	owner *reactive.Owner
	runs  int
	last  *vdom.VNode
}

func mount(t *testing.T, c vdom.Component, extra ...reactive.Reader[int]) *mounted {
	t.Helper()
	m := &mounted{t: t, owner: reactive.NewOwner(nil)}
	reactive.WithOwner(m.owner, func() {
		reactive.CreateEffect(func() reactive.Cleanup {
			for _, r := range extra {
				_ = r.Get()
			}
			m.runs++
			m.last = c.Render()
			return nil
		})
	})
	t.Cleanup(m.owner.Dispose)
	return m
}

func (m *mounted) flush() {
	m.owner.RunPendingEffects()
}

func (m *mounted) html() string {
	m.t.Helper()
	out, err := render.NewRenderer(render.RendererConfig{}).RenderToString(m.last)
	if err != nil {
		m.t.Fatalf("render failed: %v", err)
	}
	return out
}

// counted returns a renderer producing text and a pointer to its call count.
func counted(text string) (Renderer, *int) {
	n := new(int)
	return func() *vdom.VNode {
		*n++
		return vdom.Text(text)
	}, n
}

func text(s string) Renderer {
	return func() *vdom.VNode { return vdom.Text(s) }
}

func renderHTML(t *testing.T, c vdom.Component) string {
	t.Helper()
	out, err := render.NewRenderer(render.RendererConfig{}).RenderComponent(c)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return out
}

// mountHTML serializes c inside the effect, so nested components expand
// while the host effect is running, as they do in a live tree.
func mountHTML(t *testing.T, c vdom.Component) (*reactive.Owner, *string) {
	t.Helper()
	owner := reactive.NewOwner(nil)
	out := new(string)
	r := render.NewRenderer(render.RendererConfig{})
	reactive.WithOwner(owner, func() {
		reactive.CreateEffect(func() reactive.Cleanup {
			s, err := r.RenderComponent(c)
			if err != nil {
				t.Errorf("render failed: %v", err)
			}
			*out = s
			return nil
		})
	})
	t.Cleanup(owner.Dispose)
	return owner, out
}
