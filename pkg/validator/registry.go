package validator

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/rulebuilder/pkg/i18n"
)

// Call carries everything a token rule needs to build its check.
type Call struct {
	Field   string // key under validation
	Name    string // display name used in messages
	Value   any
	Present bool
	Token   Token
	Data    map[string]any
	Numeric bool // the field also carries a numeric or integer rule
	Now     time.Time
}

// Param returns the i-th token parameter.
func (c Call) Param(i int) (string, bool) {
	return c.Token.Param(i)
}

// Other resolves another field of the record under validation.
func (c Call) Other(field string) (any, bool) {
	return lookup(c.Data, field)
}

// Rule builds a Rule for this call. tmpl may use %{attribute} and any of the
// given name, value pairs as placeholders; the pairs also become the
// translation values.
func (c Call) Rule(check func() bool, key, tmpl string, kv ...any) Rule {
	values := map[string]any{"attribute": c.Name}
	for i := 0; i+1 < len(kv); i += 2 {
		values[fmt.Sprint(kv[i])] = kv[i+1]
	}

	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             c.Field,
			Rule:              c.Token.Name,
			Message:           i18n.Interpolate(tmpl, stringValues(values)),
			TranslationKey:    "validation." + key,
			TranslationValues: values,
		},
	}
}

const invalidParamsKey = "validation.invalid_params"

// Invalid builds an always failing rule reporting unusable token parameters.
func (c Call) Invalid(reason string) Rule {
	return c.Rule(
		func() bool { return false },
		"invalid_params",
		"The %{rule} rule on %{attribute} is misconfigured: %{reason}.",
		"rule", c.Token.String(),
		"reason", reason,
	)
}

// TokenFunc resolves a parsed token into a Rule for one field.
type TokenFunc func(c Call) Rule

type registryEntry struct {
	fn       TokenFunc
	implicit bool
}

// Registry maps rule names to token functions.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]registryEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]registryEntry)}
}

// DefaultRegistry returns a fresh registry populated with the built-in rules.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerPresenceRules(r)
	registerTypeRules(r)
	registerSizeRules(r)
	registerFormatRules(r)
	registerPatternRules(r)
	registerChoiceRules(r)
	registerComparisonRules(r)
	registerDateRules(r)
	return r
}

// Register adds or replaces a rule. Non-implicit rules are skipped for
// missing or empty values.
func (r *Registry) Register(name string, fn TokenFunc) {
	r.register(name, fn, false)
}

// RegisterImplicit adds a rule that runs even when the value is missing or empty.
func (r *Registry) RegisterImplicit(name string, fn TokenFunc) {
	r.register(name, fn, true)
}

func (r *Registry) register(name string, fn TokenFunc, implicit bool) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[strings.ToLower(name)] = registryEntry{fn: fn, implicit: implicit}
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rules[strings.ToLower(name)]
	return ok
}

// Names returns registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.rules))
}

func (r *Registry) get(name string) (registryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rules[name]
	return e, ok
}

func stringValues(values map[string]any) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = paramText(v)
	}
	return out
}

func paramText(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ", ")
	case float64:
		return formatNumber(val)
	}
	return fmt.Sprint(v)
}
