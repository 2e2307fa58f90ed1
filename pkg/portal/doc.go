// Package portal renders content declared at one place of a component tree
// at another place.
//
// A Registry holds one slot per key. An Input publishes its children into
// the slot for its key and renders nothing where it stands; the Output for
// the same key renders whatever was published. Content is taken out of the
// slot when an Output consumes it, so a slot yields its content once per
// publish:
//
//	reg := portal.NewRegistry[string]()
//
//	page := vdom.Div(
//	    vdom.Header(reg.Output("toolbar")),
//	    vdom.Main(
//	        reg.Input("toolbar", vdom.Button(vdom.Text("Save"))),
//	    ),
//	)
//
// Inputs publish on every render, so an Output rendered in the same update
// pass always finds fresh content regardless of which of the two renders
// first. Each key should have a single Input at a time; a later publish
// replaces earlier content. A Registry can also be provided on a reactive owner with Provide
// and looked up by descendants with FromContext; the nearest provider wins.
//
// A Registry is safe for concurrent use, but rendering a tree is expected
// to happen on a single goroutine like the rest of the reactive runtime.
package portal
