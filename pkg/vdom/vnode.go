package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <p>, ...
	KindText                   // plain text
	KindFragment               // children without a wrapper
	KindComponent              // lazily rendered component
	KindRaw                    // unescaped HTML
)

// String returns the kind name.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a virtual DOM node.
type VNode struct {
	Kind     VKind
	Tag      string    // element tag name
	Props    Props     // attributes
	Children []*VNode  // child nodes
	Key      string    // reconciliation key
	Text     string    // for KindText and KindRaw
	Comp     Component // for KindComponent
}

// Props holds element attributes.
type Props map[string]any

// IsEmpty reports whether the node renders nothing: nil, or a fragment
// whose children are all empty.
func (v *VNode) IsEmpty() bool {
	if v == nil {
		return true
	}
	if v.Kind != KindFragment {
		return false
	}
	for _, c := range v.Children {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value any
}

// Component is anything that renders to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}
