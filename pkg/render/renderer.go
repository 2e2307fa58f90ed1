package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/vango-dev/declarative/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Development only.
	Pretty bool

	// Indent is the per-level indentation in pretty mode. Default: two spaces.
	Indent string

	// MaxDepth bounds component expansion to catch self-rendering
	// components. Default: 256.
	MaxDepth int
}

// Renderer renders VNode trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer with config, filling defaults.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = 256
	}
	return &Renderer{config: config}
}

// RenderToString renders node to a string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams node to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	ew := &errWriter{w: w}
	if err := r.renderNode(ew, node, 0, 0); err != nil {
		return err
	}
	return ew.err
}

// RenderComponent renders c to a string.
func (r *Renderer) RenderComponent(c vdom.Component) (string, error) {
	return r.RenderToString(vdom.Comp(c))
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) WriteString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (r *Renderer) renderNode(w *errWriter, node *vdom.VNode, depth, compDepth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth, compDepth)
	case vdom.KindText:
		w.WriteString(escapeHTML(node.Text))
	case vdom.KindRaw:
		w.WriteString(node.Text)
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth, compDepth); err != nil {
				return err
			}
		}
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		if compDepth >= r.config.MaxDepth {
			return fmt.Errorf("render: component nesting exceeds %d levels", r.config.MaxDepth)
		}
		return r.renderNode(w, node.Comp.Render(), depth, compDepth+1)
	default:
		return fmt.Errorf("render: unknown node kind %d", node.Kind)
	}
	return w.err
}

func (r *Renderer) renderElement(w *errWriter, node *vdom.VNode, depth, compDepth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}
	w.WriteString("<" + tag)
	r.renderAttributes(w, node)
	w.WriteString(">")

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			w.WriteString("\n")
		}
		return w.err
	}

	block := r.config.Pretty && len(node.Children) > 0 && !isInlineElement(tag)
	if block {
		w.WriteString("\n")
	}
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1, compDepth); err != nil {
			return err
		}
	}
	if block {
		r.writeIndent(w, depth)
	}

	w.WriteString("</" + tag + ">")
	if r.config.Pretty {
		w.WriteString("\n")
	}
	return w.err
}

func (r *Renderer) renderAttributes(w *errWriter, node *vdom.VNode) {
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]
		if b, ok := value.(bool); ok && isBooleanAttr(key) {
			if b {
				w.WriteString(" " + key)
			}
			continue
		}
		if s := attrToString(value); s != "" {
			w.WriteString(" " + key + `="` + escapeAttr(s) + `"`)
		}
	}
}

func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (r *Renderer) writeIndent(w *errWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}

var booleanAttrs = map[string]bool{
	"checked":  true,
	"disabled": true,
	"hidden":   true,
	"open":     true,
	"readonly": true,
	"required": true,
	"selected": true,
	"async":    true,
	"defer":    true,
}

func isBooleanAttr(key string) bool {
	return booleanAttrs[key]
}

var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"button": true,
	"em":     true,
	"i":      true,
	"span":   true,
	"strong": true,
	"title":  true,
	"li":     true,
	"p":      true,
	"h1":     true,
	"h2":     true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}
