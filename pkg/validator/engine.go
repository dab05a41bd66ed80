package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dmitrymomot/rulebuilder/pkg/i18n"
	"github.com/dmitrymomot/rulebuilder/pkg/logger"
)

// Control rules change how a field is evaluated and never fail on their own.
const (
	RuleBail      = "bail"
	RuleNullable  = "nullable"
	RuleSometimes = "sometimes"
)

var controlRules = map[string]bool{
	RuleBail:      true,
	RuleNullable:  true,
	RuleSometimes: true,
}

// Translator renders catalog keys. *i18n.Translator satisfies it.
type Translator interface {
	T(lang, key string, args ...string) string
	HasTranslation(lang, key string) bool
}

// Engine evaluates rule descriptors against a record.
// It is safe for concurrent use once configured.
type Engine struct {
	registry           *Registry
	translator         Translator
	locale             string
	logger             *slog.Logger
	strict             bool
	stopOnFirstFailure bool
	attributeNames     map[string]string
	now                func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the built-in registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithTranslator renders failure messages through t when it knows the key.
func WithTranslator(t Translator) Option {
	return func(e *Engine) {
		e.translator = t
	}
}

// WithLocale sets the default message language.
func WithLocale(lang string) Option {
	return func(e *Engine) {
		if lang = i18n.Normalize(lang); lang != "" {
			e.locale = lang
		}
	}
}

// WithLogger sets the logger used for unknown rules and failure summaries.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStrictRules makes unknown rule names fail the field instead of being skipped.
func WithStrictRules(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithStopOnFirstFailure stops evaluating further fields once one field failed.
func WithStopOnFirstFailure(stop bool) Option {
	return func(e *Engine) {
		e.stopOnFirstFailure = stop
	}
}

// WithAttributeNames sets display names used in messages instead of the field key.
func WithAttributeNames(names map[string]string) Option {
	return func(e *Engine) {
		if e.attributeNames == nil {
			e.attributeNames = make(map[string]string, len(names))
		}
		maps.Copy(e.attributeNames, names)
	}
}

// WithClock overrides the time source used by relative date rules.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Engine with the built-in rules.
func New(opts ...Option) *Engine {
	e := &Engine{
		locale: i18n.DefaultLanguage,
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	e.logger = e.logger.With(logger.Component("validator"))
	return e
}

// Register adds a custom token rule to the engine's registry.
func (e *Engine) Register(name string, fn TokenFunc) {
	e.registry.Register(name, fn)
}

// RegisterImplicit adds a custom token rule that also runs for empty values.
func (e *Engine) RegisterImplicit(name string, fn TokenFunc) {
	e.registry.RegisterImplicit(name, fn)
}

// HasRule reports whether name is a known rule or control keyword.
func (e *Engine) HasRule(name string) bool {
	name = strings.ToLower(name)
	return controlRules[name] || e.registry.Has(name)
}

// Locale returns the default message language.
func (e *Engine) Locale() string {
	return e.locale
}

// Translate renders message through the translator when it is a known key,
// otherwise returns it unchanged.
func (e *Engine) Translate(message string) string {
	return e.translate(e.locale, message)
}

// TranslateContext is Translate in the locale stored in ctx by i18n.WithLocale.
func (e *Engine) TranslateContext(ctx context.Context, message string) string {
	return e.translate(e.localeFrom(ctx), message)
}

func (e *Engine) translate(locale, message string) string {
	lang, ok := e.catalogLocale(locale, message)
	if !ok {
		return message
	}
	return e.translator.T(lang, message)
}

// catalogLocale picks the first of locale, its base language, the engine
// locale and its base language whose catalog knows key.
func (e *Engine) catalogLocale(locale, key string) (string, bool) {
	if e.translator == nil || key == "" {
		return "", false
	}
	for _, lang := range []string{locale, i18n.Base(locale), e.locale, i18n.Base(e.locale)} {
		if lang != "" && e.translator.HasTranslation(lang, key) {
			return lang, true
		}
	}
	return "", false
}

func (e *Engine) localeFrom(ctx context.Context) string {
	if l, ok := i18n.LocaleFromContext(ctx); ok {
		if l = i18n.Normalize(l); l != "" {
			return l
		}
	}
	return e.locale
}

// HasTranslator reports whether a translator is configured.
func (e *Engine) HasTranslator() bool {
	return e.translator != nil
}

// Validate evaluates rules against data. Fields are evaluated in sorted key
// order so messages are deterministic.
func (e *Engine) Validate(data map[string]any, rules map[string][]any) *Outcome {
	return e.ValidateContext(context.Background(), data, rules)
}

// ValidateContext is Validate with a context. A locale stored with
// i18n.WithLocale overrides the engine locale for this call.
func (e *Engine) ValidateContext(ctx context.Context, data map[string]any, rules map[string][]any) *Outcome {
	locale := e.localeFrom(ctx)

	out := &Outcome{}
	for _, field := range slices.Sorted(maps.Keys(rules)) {
		e.validateField(ctx, locale, data, field, rules[field], out)
		if e.stopOnFirstFailure && out.Failed() {
			break
		}
	}

	if out.Failed() {
		e.logger.DebugContext(ctx, "validation failed",
			slog.Any("fields", out.Fields()),
			logger.Failures(len(out.errors)),
		)
	}
	return out
}

// ValidateJSON decodes a JSON object and validates it.
func (e *Engine) ValidateJSON(raw []byte, rules map[string][]any) (*Outcome, error) {
	data, err := DecodeJSON(raw)
	if err != nil {
		return nil, err
	}
	return e.Validate(data, rules), nil
}

// DecodeJSON decodes a JSON object into a record. Numbers become float64.
func DecodeJSON(raw []byte) (map[string]any, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	res := gjson.ParseBytes(raw)
	if !res.IsObject() {
		return nil, ErrInvalidJSON
	}
	data, ok := res.Value().(map[string]any)
	if !ok {
		return nil, ErrInvalidJSON
	}
	return data, nil
}

// Lint reports every unknown rule name found in descriptors.
func (e *Engine) Lint(descriptors []any) error {
	var errs []error
	for _, d := range descriptors {
		for _, name := range descriptorNames(d) {
			if !e.HasRule(name) {
				errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownRule, name))
			}
		}
	}
	return errors.Join(errs...)
}

func descriptorNames(d any) []string {
	var names []string
	switch v := d.(type) {
	case string:
		for _, tok := range SplitTokens(v) {
			names = append(names, ParseToken(tok).Name)
		}
	case []string:
		for _, s := range v {
			names = append(names, descriptorNames(s)...)
		}
	case []any:
		for _, item := range v {
			names = append(names, descriptorNames(item)...)
		}
	}
	return names
}

// fieldPlan is the flattened rule list of one field plus its control flags.
type fieldPlan struct {
	items     []any
	bail      bool
	nullable  bool
	sometimes bool
	numeric   bool
}

func (e *Engine) plan(descriptors []any) fieldPlan {
	var p fieldPlan
	var add func(d any, depth int)
	add = func(d any, depth int) {
		switch v := d.(type) {
		case nil:
		case string:
			for _, s := range SplitTokens(v) {
				tok := ParseToken(s)
				switch tok.Name {
				case RuleBail:
					p.bail = true
				case RuleNullable:
					p.nullable = true
				case RuleSometimes:
					p.sometimes = true
				case "numeric", "integer":
					p.numeric = true
				}
				if !controlRules[tok.Name] {
					p.items = append(p.items, tok)
				}
			}
		case []string:
			for _, s := range v {
				add(s, depth+1)
			}
		case []any:
			if depth > 1 {
				p.items = append(p.items, v)
				return
			}
			for _, item := range v {
				add(item, depth+1)
			}
		default:
			p.items = append(p.items, v)
		}
	}
	for _, d := range descriptors {
		add(d, 0)
	}
	return p
}

// validatable decides whether a rule runs for the current value: implicit
// rules always run; others are skipped for missing keys, empty strings and
// nil values of nullable fields.
func validatable(present bool, value any, nullable, implicit bool) bool {
	if implicit {
		return true
	}
	if !present || isEmptyString(value) {
		return false
	}
	return !(nullable && value == nil)
}

func (e *Engine) displayName(field string) string {
	if name, ok := e.attributeNames[field]; ok {
		return name
	}
	return strings.ReplaceAll(field, "_", " ")
}

func (e *Engine) validateField(ctx context.Context, locale string, data map[string]any, field string, descriptors []any, out *Outcome) {
	p := e.plan(descriptors)
	value, present := lookup(data, field)
	if p.sometimes && !present {
		return
	}

	log := e.logger.With(logger.Attribute(field))
	before := len(out.errors)

	for _, item := range p.items {
		switch r := item.(type) {
		case Token:
			if e.applyToken(ctx, locale, log, r, data, field, value, present, p, out) {
				return
			}
		case Rule:
			if r.Check == nil || !r.Check() {
				verr := r.Error
				if verr.Field == "" {
					verr.Field = field
				}
				verr.Message = e.render(locale, verr)
				out.add(verr)
			}
		case RuleFunc:
			e.applyFunc(locale, field, value, present, p.nullable, r, out)
		case func(string, any, FailFunc):
			e.applyFunc(locale, field, value, present, p.nullable, r, out)
		case func(string, any, func(string)):
			e.applyFunc(locale, field, value, present, p.nullable, func(a string, v any, fail FailFunc) { r(a, v, fail) }, out)
		case RuleObject:
			e.applyObject(ctx, locale, data, field, value, present, p.nullable, r, out)
		default:
			log.WarnContext(ctx, "unsupported rule descriptor", slog.String("type", fmt.Sprintf("%T", item)))
			if e.strict {
				out.add(ValidationError{
					Field:   field,
					Rule:    "unsupported",
					Message: fmt.Sprintf("%s: %T", ErrUnsupportedDescriptor, item),
				})
			}
		}

		if p.bail && len(out.errors) > before {
			return
		}
	}
}

// applyToken evaluates one token and reports whether the field must stop:
// a failed implicit rule ends evaluation of the remaining rules.
func (e *Engine) applyToken(ctx context.Context, locale string, log *slog.Logger, tok Token, data map[string]any, field string, value any, present bool, p fieldPlan, out *Outcome) bool {
	entry, ok := e.registry.get(tok.Name)
	if !ok {
		log.WarnContext(ctx, "unknown validation rule", logger.RuleToken(tok.String()))
		if e.strict {
			verr := ValidationError{
				Field:             field,
				Rule:              tok.Name,
				Message:           fmt.Sprintf("The rule %q is not found.", tok.Name),
				TranslationKey:    "validation.rule_not_found",
				TranslationValues: map[string]any{"rule": tok.Name, "attribute": e.displayName(field)},
			}
			verr.Message = e.render(locale, verr)
			out.add(verr)
		}
		return false
	}

	if !validatable(present, value, p.nullable, entry.implicit) {
		return false
	}

	rule := entry.fn(Call{
		Field:   field,
		Name:    e.displayName(field),
		Value:   value,
		Present: present,
		Token:   tok,
		Data:    data,
		Numeric: p.numeric,
		Now:     e.now(),
	})
	if rule.Check != nil && rule.Check() {
		return false
	}
	verr := rule.Error
	verr.Message = e.render(locale, verr)
	out.add(verr)
	return entry.implicit
}

func (e *Engine) applyFunc(locale, field string, value any, present, nullable bool, fn RuleFunc, out *Outcome) {
	if !validatable(present, value, nullable, false) {
		return
	}
	fn(field, value, func(message string) {
		out.add(ValidationError{
			Field:   field,
			Rule:    "closure",
			Message: e.translate(locale, message),
		})
	})
}

func (e *Engine) applyObject(ctx context.Context, locale string, data map[string]any, field string, value any, present, nullable bool, obj RuleObject, out *Outcome) {
	implicit := false
	if ir, ok := obj.(ImplicitRule); ok {
		implicit = ir.Implicit()
	}
	if !validatable(present, value, nullable, implicit) {
		return
	}

	if ca, ok := obj.(ContextAwareRule); ok {
		ca.BindContext(i18n.WithLocale(ctx, locale), e, data)
	}
	if obj.Passes(field, value) {
		return
	}

	messages := obj.Message()
	if len(messages) == 0 {
		messages = []string{fmt.Sprintf("The %s is invalid.", e.displayName(field))}
	}
	for _, msg := range messages {
		out.add(ValidationError{
			Field:   field,
			Rule:    fmt.Sprintf("%T", obj),
			Message: e.translate(locale, msg),
		})
	}
}

// render prefers a catalog template for the error's key over its default message.
func (e *Engine) render(locale string, verr ValidationError) string {
	lang, ok := e.catalogLocale(locale, verr.TranslationKey)
	if !ok {
		return verr.Message
	}

	keys := make([]string, 0, len(verr.TranslationValues))
	for k := range verr.TranslationValues {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, paramText(verr.TranslationValues[k]))
	}
	return e.translator.T(lang, verr.TranslationKey, args...)
}
