package validator

import "context"

// RuleObject is an opaque rule evaluated against one attribute.
// Message is read after Passes returns false.
type RuleObject interface {
	Passes(attribute string, value any) bool
	Message() []string
}

// ContextAwareRule receives the call context, the running engine and the
// full record before Passes is called. ctx carries the message locale of the
// call (see i18n.LocaleFromContext). Nested rule builders use it to validate
// with the same engine, in the same locale, and see sibling fields.
type ContextAwareRule interface {
	BindContext(ctx context.Context, e *Engine, data map[string]any)
}

// ImplicitRule marks a rule object that must run for missing or empty values.
type ImplicitRule interface {
	Implicit() bool
}

// FailFunc records a failure message from a RuleFunc.
type FailFunc func(message string)

// RuleFunc is a closure rule. It reports failures through fail; calling fail
// more than once records several messages.
type RuleFunc func(attribute string, value any, fail FailFunc)
