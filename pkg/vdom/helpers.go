package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node. The content must be trusted.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Empty returns a fragment with no children.
func Empty() *VNode {
	return &VNode{Kind: KindFragment, Children: []*VNode{}}
}

// Comp wraps a component as a node.
func Comp(c Component) *VNode {
	return &VNode{Kind: KindComponent, Comp: c}
}

// Fragment groups children without a wrapper element. Children may be
// *VNode, []*VNode, Component, string or nil.
func Fragment(children ...any) *VNode {
	node := Empty()
	node.Children = appendChildren(node.Children, children)
	return node
}

// appendChildren converts child arguments to nodes. Attr values are
// ignored here; createElement handles them before delegating.
func appendChildren(dst []*VNode, children []any) []*VNode {
	for _, child := range children {
		switch v := child.(type) {
		case nil:
		case *VNode:
			if v != nil {
				dst = append(dst, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					dst = append(dst, c)
				}
			}
		case string:
			dst = append(dst, Text(v))
		case Component:
			if v != nil {
				dst = append(dst, Comp(v))
			}
		case func() *VNode:
			if v != nil {
				dst = append(dst, Comp(Func(v)))
			}
		}
	}
	return dst
}

// Range maps items to nodes.
func Range[T any](items []T, fn func(int, T) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(i, item); n != nil {
			out = append(out, n)
		}
	}
	return out
}
