package vdom

import "testing"

func TestFragmentChildren(t *testing.T) {
	comp := Func(func() *VNode { return Text("c") })
	node := Fragment(
		nil,
		Text("a"),
		[]*VNode{Text("b"), nil},
		"s",
		comp,
		func() *VNode { return Text("f") },
	)

	if node.Kind != KindFragment {
		t.Fatalf("expected fragment, got %s", node.Kind)
	}
	if len(node.Children) != 5 {
		t.Fatalf("expected 5 children, got %d", len(node.Children))
	}
	if node.Children[2].Kind != KindText || node.Children[2].Text != "s" {
		t.Error("string child should become a text node")
	}
	if node.Children[3].Kind != KindComponent || node.Children[3].Comp != comp {
		t.Error("component child should be wrapped")
	}
	if node.Children[4].Kind != KindComponent {
		t.Error("render func child should be wrapped as component")
	}
}

func TestElementAttributes(t *testing.T) {
	node := Div(ID("main"), Class("a", "b"), Key("k1"), []Attr{Data("x", "1"), {}}, P("text"))

	if node.Tag != "div" || node.Kind != KindElement {
		t.Fatalf("unexpected node %+v", node)
	}
	if node.Props["id"] != "main" {
		t.Errorf("id = %v", node.Props["id"])
	}
	if node.Props["class"] != "a b" {
		t.Errorf("class = %v", node.Props["class"])
	}
	if node.Props["data-x"] != "1" {
		t.Errorf("data-x = %v", node.Props["data-x"])
	}
	if node.Key != "k1" {
		t.Errorf("key = %q", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key must not be rendered as an attribute")
	}
	if len(node.Children) != 1 || node.Children[0].Tag != "p" {
		t.Errorf("expected one <p> child, got %d", len(node.Children))
	}
}

func TestRange(t *testing.T) {
	nodes := Range([]string{"a", "", "c"}, func(i int, s string) *VNode {
		if s == "" {
			return nil
		}
		return Li(s)
	})
	if len(nodes) != 2 {
		t.Errorf("expected 2 nodes, got %d", len(nodes))
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("br") || IsVoidElement("div") {
		t.Error("void element table mismatch")
	}
}
