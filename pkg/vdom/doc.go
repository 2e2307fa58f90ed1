// Package vdom provides the virtual node tree that declarative components
// produce.
//
// VNode represents elements, text, fragments, components and raw HTML.
// Elements are built with variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// A Component renders lazily to a VNode. Fragment groups children without a
// wrapper element; an empty fragment (Empty) is the "nothing to show"
// content returned by branching and portal components.
package vdom
