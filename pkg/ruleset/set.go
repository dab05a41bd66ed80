package ruleset

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrymomot/rulebuilder"
	"github.com/dmitrymomot/rulebuilder/pkg/i18n"
	"github.com/dmitrymomot/rulebuilder/pkg/validator"
)

// Set is a parsed rule set. It is read-only after parsing.
type Set struct {
	locale     string
	attributes map[string]string
	rules      map[string][]string
}

// Fields returns the fields with rules in sorted order.
func (s *Set) Fields() []string {
	return slices.Sorted(maps.Keys(s.rules))
}

// Locale returns the message locale requested by the file, if any.
func (s *Set) Locale() string {
	return s.locale
}

// Attributes returns a copy of the display names.
func (s *Set) Attributes() map[string]string {
	return maps.Clone(s.attributes)
}

// Tokens returns the rule tokens of field.
func (s *Set) Tokens(field string) []string {
	return slices.Clone(s.rules[field])
}

// Rules returns the rule map in the form the validator engine takes.
func (s *Set) Rules() map[string][]any {
	out := make(map[string][]any, len(s.rules))
	for field, tokens := range s.rules {
		items := make([]any, len(tokens))
		for i, t := range tokens {
			items[i] = t
		}
		out[field] = items
	}
	return out
}

// Builder returns a rule builder for field bound to backend, or nil when
// the field has no rules.
func (s *Set) Builder(field string, backend rulebuilder.Backend) *rulebuilder.Builder {
	tokens, ok := s.rules[field]
	if !ok {
		return nil
	}
	items := make([]any, len(tokens))
	for i, t := range tokens {
		items[i] = t
	}
	return rulebuilder.NewWith(backend, items)
}

// EngineOptions returns the engine options the file asks for.
func (s *Set) EngineOptions() []validator.Option {
	var opts []validator.Option
	if s.locale != "" {
		opts = append(opts, validator.WithLocale(s.locale))
	}
	if len(s.attributes) > 0 {
		opts = append(opts, validator.WithAttributeNames(s.attributes))
	}
	return opts
}

// Linter reports unknown rule names. *validator.Engine satisfies it.
type Linter interface {
	Lint(descriptors []any) error
}

// Lint checks every field's rules with l.
func (s *Set) Lint(l Linter) error {
	rules := s.Rules()
	var errs []error
	for _, field := range s.Fields() {
		if err := l.Lint(rules[field]); err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", field, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrUnknownRules}, errs...)...)
}

// Validate runs the rule set against data. The file's locale, when set,
// applies unless ctx already carries one.
func (s *Set) Validate(ctx context.Context, e *validator.Engine, data map[string]any) *validator.Outcome {
	if _, ok := i18n.LocaleFromContext(ctx); !ok && s.locale != "" {
		ctx = i18n.WithLocale(ctx, s.locale)
	}
	return e.ValidateContext(ctx, data, s.Rules())
}

// ValidateJSON decodes raw as a JSON object and validates it.
func (s *Set) ValidateJSON(ctx context.Context, e *validator.Engine, raw []byte) (*validator.Outcome, error) {
	data, err := validator.DecodeJSON(raw)
	if err != nil {
		return nil, err
	}
	return s.Validate(ctx, e, data), nil
}
