package vdom

import "strings"

// A creates an attribute with the given key and value.
func A(key string, value any) Attr { return Attr{Key: key, Value: value} }

// ID sets the id attribute.
func ID(id string) Attr { return A("id", id) }

// Class sets the class attribute, joining classes with spaces.
func Class(classes ...string) Attr { return A("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return A("data-"+key, value) }

// Key sets the reconciliation key.
func Key(key string) Attr { return A("key", key) }

// Disabled sets the boolean disabled attribute.
func Disabled(disabled bool) Attr { return A("disabled", disabled) }

// Charset sets the charset attribute.
func Charset(cs string) Attr { return A("charset", cs) }

// Type sets the type attribute.
func Type(t string) Attr { return A("type", t) }
