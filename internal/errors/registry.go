package errors

import "sort"

// Template is a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

var registry = map[string]Template{
	// Portal (D001-D009)
	"D001": {
		Category:   CategoryPortal,
		Message:    "Portal provider not found",
		Suggestion: "Call portal.Provide on an owner above every portal input and output, or pass the registry explicitly",
	},

	// Flow (D002-D009)
	"D002": {
		Category:   CategoryFlow,
		Message:    "Malformed branch set",
		Suggestion: "Use exactly one Then as the first block, any number of ElseIf blocks, and at most one Else as the last block",
	},
	"D003": {
		Category:   CategoryFlow,
		Message:    "Malformed match set",
		Suggestion: "Give When at least one case and put at most one Otherwise last",
	},

	// Server (D010-D019)
	"D010": {
		Category: CategoryServer,
		Message:  "Unknown signal",
	},
	"D011": {
		Category: CategoryServer,
		Message:  "Invalid signal value",
	},
	"D012": {
		Category: CategoryServer,
		Message:  "Render failed",
	},

	// Config (D020-D029)
	"D020": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"D021": {
		Category:   CategoryConfig,
		Message:    "Configuration file unreadable",
		Suggestion: "Check that declarative.json exists and is valid JSON",
	},

	// Snapshot (D030-D039)
	"D030": {
		Category: CategorySnapshot,
		Message:  "Snapshot upload failed",
	},
}

// GetAllCodes returns the registered codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template registered for code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces a template.
func Register(code string, t Template) {
	registry[code] = t
}
