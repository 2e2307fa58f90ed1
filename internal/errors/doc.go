// Package errors provides coded, structured errors for the declarative
// components, the demo server and the CLI.
//
// Each error has a code (e.g. "D001") registered with a category, a short
// message and a longer explanation:
//
//	err := errors.New("D001").
//	    WithDetail(`no portal provider for key "modal"`).
//	    WithSuggestion("Call portal.Provide on an owner above the component")
//
//	fmt.Println(err.Format())
//
// Errors with the same code match under errors.Is, and Wrap keeps an
// underlying cause reachable through errors.Unwrap.
package errors
