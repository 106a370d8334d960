package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// Codes used by the component engine.
const (
	CodeInvalidDefinition      = "R001"
	CodeViewEmission           = "R002"
	CodeEventEmission          = "R003"
	CodeDisposal               = "R004"
	CodeDispatchDuringTeardown = "R005"
	CodeInstanceDisposed       = "R006"
	CodeConfigInvalid          = "C001"
	CodeConfigLoad             = "C002"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Definition & Runtime Errors (R001-R099)
	// ============================================

	CodeInvalidDefinition: {
		Category: CategoryDefinition,
		Message:  "Invalid component definition",
		Detail:   "A definition must return a view producer, or an Output whose View is a view producer. Unsubscribe, when set, must be a subscription, a disposer or a parameterless function.",
		DocURL:   "https://rxview.dev/docs/errors/R001",
	},
	CodeViewEmission: {
		Category: CategoryRuntime,
		Message:  "View producer failed",
		Detail:   "The component's view producer raised an error while emitting. The error is surfaced to the host instead of rendering a blank view.",
		DocURL:   "https://rxview.dev/docs/errors/R002",
	},
	CodeEventEmission: {
		Category: CategoryRuntime,
		Message:  "Event producer failed",
		Detail:   "One of the component's declared output events raised an error, or its bound listener failed.",
		DocURL:   "https://rxview.dev/docs/errors/R003",
	},
	CodeDisposal: {
		Category: CategoryTeardown,
		Message:  "Component teardown failed",
		Detail:   "A teardown step raised an error. Every other step still ran and all subscriptions were released.",
		DocURL:   "https://rxview.dev/docs/errors/R004",
	},
	CodeDispatchDuringTeardown: {
		Category: CategoryRuntime,
		Message:  "Interaction dispatched during teardown",
		Detail:   "A listener was invoked synchronously while its component was being unmounted. Dispatch from teardown code is not allowed.",
		DocURL:   "https://rxview.dev/docs/errors/R005",
	},
	CodeInstanceDisposed: {
		Category: CategoryRuntime,
		Message:  "Component instance already unmounted",
		Detail:   "The instance has been torn down and cannot receive new properties.",
		DocURL:   "https://rxview.dev/docs/errors/R006",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range or malformed.",
		DocURL:   "https://rxview.dev/docs/errors/C001",
	},
	CodeConfigLoad: {
		Category: CategoryConfig,
		Message:  "Configuration could not be loaded",
		Detail:   "The configuration file could not be read or parsed, or an environment override is malformed.",
		DocURL:   "https://rxview.dev/docs/errors/C002",
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
