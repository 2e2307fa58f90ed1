// Package render serializes vdom trees to HTML.
//
//	r := render.NewRenderer(render.RendererConfig{Pretty: true})
//	html, err := r.RenderToString(vdom.Div(vdom.Text("hello")))
//
// Components are expanded as they are reached, so rendering a tree that
// contains If, When or portal components evaluates them in document order.
// Attribute keys are sorted for deterministic output.
package render
