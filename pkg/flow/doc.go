// Package flow provides declarative control-flow components: If with
// Then/ElseIf/Else blocks, Show, and When with Is/Otherwise cases.
//
//	loggedIn := reactive.NewSignal(false)
//	admin := reactive.NewSignal(false)
//
//	nav := flow.MustIf(loggedIn,
//	    flow.Then(func() *vdom.VNode { return vdom.Text("Welcome back") }),
//	    flow.ElseIf(admin, flow.Content(vdom.Text("Admin preview"))),
//	    flow.Else(flow.Content(vdom.Text("Please sign in"))),
//	)
//
// Exactly one block is active at a time. Rendering reads every ElseIf
// condition, not only the ones the selection scan reaches, so a listener
// rendering the construct is re-run when any of them changes. When the
// selection does not change between renders the previous content is
// returned and the block's renderer is not called again.
//
// A block's renderer runs under a child of the current reactive owner. The
// child is disposed when another block is selected, which runs the
// cleanups registered by the old content.
//
// Constructs are built once and rendered many times; their selection state
// lives on the value returned by NewIf or NewWhen.
package flow
