package rulebuilder

import (
	"context"

	"github.com/dmitrymomot/rulebuilder/pkg/validator"
)

// Backend validates a record against a field to rules map.
type Backend interface {
	Validate(data map[string]any, rules map[string][]any) Outcome
}

// ContextBackend is implemented by backends that validate with a context.
// A Builder bound to a context prefers it over Validate.
type ContextBackend interface {
	ValidateContext(ctx context.Context, data map[string]any, rules map[string][]any) Outcome
}

// Outcome is the result of a Backend run.
type Outcome interface {
	Failed() bool
	AllMessages() []string
}

// Translator turns a message or message key into display text.
type Translator interface {
	Translate(message string) string
}

// ContextTranslator is a Translator that reads the message locale from a
// context.
type ContextTranslator interface {
	TranslateContext(ctx context.Context, message string) string
}

// TranslatorProvider is implemented by backends that expose a Translator.
// A nil Translator means messages are used as returned.
type TranslatorProvider interface {
	Translator() Translator
}

// RuleChecker reports whether a rule name is known. *validator.Engine
// satisfies it.
type RuleChecker interface {
	HasRule(name string) bool
}

// BackendFunc adapts a plain function to Backend.
type BackendFunc func(data map[string]any, rules map[string][]any) Outcome

func (f BackendFunc) Validate(data map[string]any, rules map[string][]any) Outcome {
	return f(data, rules)
}

// Engine adapts a validator.Engine to Backend. The returned value also
// implements ContextBackend, TranslatorProvider and RuleChecker.
func Engine(e *validator.Engine) Backend {
	if e == nil {
		return nil
	}
	return engineBackend{e: e}
}

type engineBackend struct {
	e *validator.Engine
}

func (b engineBackend) Validate(data map[string]any, rules map[string][]any) Outcome {
	return b.e.Validate(data, rules)
}

func (b engineBackend) ValidateContext(ctx context.Context, data map[string]any, rules map[string][]any) Outcome {
	return b.e.ValidateContext(ctx, data, rules)
}

func (b engineBackend) Translator() Translator {
	if !b.e.HasTranslator() {
		return nil
	}
	return b.e
}

func (b engineBackend) HasRule(name string) bool {
	return b.e.HasRule(name)
}
