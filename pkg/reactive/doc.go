// Package reactive is the fine-grained reactive runtime the declarative
// components are built on.
//
// Dependencies are tracked at runtime: reading a Signal or Memo while a
// listener (an Effect or a Memo computation) is active subscribes that
// listener to the value.
//
//	loggedIn := reactive.NewSignal(false)
//	label := reactive.NewMemo(func() string {
//	    if loggedIn.Get() {
//	        return "Sign out"
//	    }
//	    return "Sign in"
//	})
//
// Effects belong to an Owner. When a dependency changes the effect is
// scheduled on its owner and re-runs on the next RunPendingEffects call,
// which is the update pass of the host:
//
//	root := reactive.NewOwner(nil)
//	reactive.WithOwner(root, func() {
//	    reactive.CreateEffect(func() reactive.Cleanup {
//	        fmt.Println(label.Get())
//	        return nil
//	    })
//	})
//	loggedIn.Set(true)
//	root.RunPendingEffects()
//
// Owners also carry scoped values. Context[T] wraps the owner value map with
// a typed key and reports whether a provider was found.
//
// # Threading
//
// Tracking state is kept per goroutine. A reactive tree is expected to be
// driven from a single goroutine; the primitives are safe to touch from
// others but do not propagate tracking across goroutines.
package reactive
