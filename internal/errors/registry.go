package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://hookrt.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (H001-H049)
	// ============================================

	"H001": {
		Category: CategoryRuntime,
		Message:  "Hook called outside a render cycle",
		Detail:   "Hook primitives read and write the slot store of the instance being rendered. They may only be called from the body of a render function passed to hooks.Render.",
		DocURL:   docBase + "H001",
	},
	"H002": {
		Category: CategoryRuntime,
		Message:  "Hook order changed between render cycles",
		Detail:   "Slots are addressed by call position. A render function must call the same hooks, of the same kinds, in the same order on every cycle. Conditional hooks or hooks in loops of varying length misalign every later slot.",
		DocURL:   docBase + "H002",
	},
	"H003": {
		Category: CategoryRuntime,
		Message:  "Slot holds a value of another type",
		Detail:   "The slot at this position was populated with a value that is not assignable to the type requested by the hook.",
		DocURL:   docBase + "H003",
	},
	"H005": {
		Category: CategoryRuntime,
		Message:  "Reentrant render",
		Detail:   "Render was called for an instance that is already rendering. Nested cycles would reset the slot cursor of the running cycle.",
		DocURL:   docBase + "H005",
	},
	"H006": {
		Category: CategoryRuntime,
		Message:  "Render cycle did not complete",
		Detail:   "The middleware chain returned without running the render function and its Render method to completion. The hook order of an incomplete cycle is not recorded.",
		DocURL:   docBase + "H006",
	},

	// ============================================
	// Dependency Errors
	// ============================================

	"H004": {
		Category: CategoryDeps,
		Message:  "Dependency list length changed",
		Detail:   "An effect was declared with a different number of dependencies than on the previous cycle. Dependency lists must have a fixed arity.",
		DocURL:   docBase + "H004",
	},

	// ============================================
	// Config Errors (H100-H119)
	// ============================================

	"H100": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed.",
		DocURL:   docBase + "H100",
	},
	"H101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No hookrt.json or hookrt.yaml was found.",
		DocURL:   docBase + "H101",
	},
	"H102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
		DocURL:   docBase + "H102",
	},

	// ============================================
	// CLI Errors (H120-H139)
	// ============================================

	"H120": {
		Category: CategoryCLI,
		Message:  "Unknown action",
		Detail:   "The requested action is not exposed by the rendered component.",
		DocURL:   docBase + "H120",
	},
	"H121": {
		Category: CategoryCLI,
		Message:  "Instance not found",
		Detail:   "No instance with this ID is registered with the inspector.",
		DocURL:   docBase + "H121",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
