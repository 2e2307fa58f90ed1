package vdom

// voidElements cannot have children.
var voidElements = map[string]bool{
	"area":  true,
	"base":  true,
	"br":    true,
	"col":   true,
	"embed": true,
	"hr":    true,
	"img":   true,
	"input": true,
	"link":  true,
	"meta":  true,
	"wbr":   true,
}

// IsVoidElement reports whether tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with an arbitrary tag. Arguments may be Attr,
// []Attr or anything Fragment accepts.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	children := make([]any, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		default:
			children = append(children, arg)
		}
	}
	node.Children = appendChildren(node.Children, children)
	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
		return
	}
	v.Props[a.Key] = a.Value
}

// Element constructors. See El for the accepted argument types.

func Html(args ...any) *VNode    { return El("html", args...) }
func Head(args ...any) *VNode    { return El("head", args...) }
func Body(args ...any) *VNode    { return El("body", args...) }
func Title(args ...any) *VNode   { return El("title", args...) }
func Meta(args ...any) *VNode    { return El("meta", args...) }
func Script(args ...any) *VNode  { return El("script", args...) }
func Div(args ...any) *VNode     { return El("div", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func P(args ...any) *VNode       { return El("p", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Header(args ...any) *VNode  { return El("header", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Ul(args ...any) *VNode      { return El("ul", args...) }
func Li(args ...any) *VNode      { return El("li", args...) }
func Button(args ...any) *VNode  { return El("button", args...) }
func Strong(args ...any) *VNode  { return El("strong", args...) }
func Hr(args ...any) *VNode      { return El("hr", args...) }
