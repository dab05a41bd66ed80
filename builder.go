package rulebuilder

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrymomot/rulebuilder/pkg/validator"
)

// Delimiter separates rules inside a single string passed to Add.
const Delimiter = "|"

// Builder accumulates rule descriptors and validates values with them.
// A Builder is not safe for concurrent use.
type Builder struct {
	rules    []any
	messages []string
	backend  Backend
	data     map[string]any
	ctx      context.Context
	checker  RuleChecker
	errs     []error
}

// New returns a Builder holding rules. Nil arguments are ignored.
func New(rules ...any) *Builder {
	return (&Builder{}).Add(rules...)
}

// NewWith returns a Builder bound to backend.
func NewWith(backend Backend, rules ...any) *Builder {
	return (&Builder{backend: backend}).Add(rules...)
}

// Add appends rules. Nil entries and empty strings are dropped, top-level
// strings are split on "|" and slices are flattened by one level. Strings inside a slice are kept
// whole, so patterns containing "|" can be passed as []any{"regex:/a|b/"}.
func (b *Builder) Add(rules ...any) *Builder {
	for _, r := range rules {
		switch v := r.(type) {
		case nil:
		case string:
			for part := range strings.SplitSeq(v, Delimiter) {
				if part = strings.TrimSpace(part); part != "" {
					b.push(part)
				}
			}
		case []string:
			for _, s := range v {
				if s != "" {
					b.push(s)
				}
			}
		case []any:
			for _, item := range v {
				if item != nil && item != "" {
					b.push(item)
				}
			}
		default:
			b.push(v)
		}
	}
	return b
}

func (b *Builder) push(rule any) {
	if s, ok := rule.(string); ok && b.checker != nil {
		for _, tok := range validator.SplitTokens(s) {
			name := validator.ParseToken(tok).Name
			if !b.checker.HasRule(name) {
				b.errs = append(b.errs, fmt.Errorf("%w: the rule %q is not found", ErrRuleNotFound, name))
				return
			}
		}
	}
	b.rules = append(b.rules, rule)
}

// Rule appends the rule called name. name is converted to snake_case and args
// are joined with "," after a ":". A nil argument renders as an empty
// parameter:
//
//	b.Rule("between", 1, 10) // "between:1,10"
//	b.Rule("fooBar")         // "foo_bar"
//
// The result is appended as a single entry and is never split on "|". An
// empty name appends nothing.
func (b *Builder) Rule(name string, args ...any) *Builder {
	rule := Snake(name)
	if len(args) > 0 {
		params := make([]string, 0, len(args))
		for _, a := range args {
			params = append(params, formatArg(a))
		}
		rule += ":" + strings.Join(params, ",")
	}
	return b.Add([]any{rule})
}

// SetValidator sets the backend used by Passes.
func (b *Builder) SetValidator(v Backend) *Builder {
	b.backend = v
	return b
}

// SetData sets the record the attribute under validation belongs to.
// Cross-field rules such as confirmed or same read their siblings from it.
func (b *Builder) SetData(data map[string]any) *Builder {
	b.data = data
	return b
}

// Strict enables rule-name checking for every rule added afterwards.
// Unknown rules are not appended and are reported by Err.
func (b *Builder) Strict(checker RuleChecker) *Builder {
	b.checker = checker
	return b
}

// Err returns the rules rejected in strict mode, joined, or nil.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// Passes validates value as attribute against the accumulated rules.
// Messages of the previous call are discarded.
func (b *Builder) Passes(attribute string, value any) bool {
	b.messages = nil

	if b.backend == nil {
		return b.fail([]string{ErrNoBackend.Error()})
	}

	record := make(map[string]any, len(b.data)+1)
	maps.Copy(record, b.data)
	record[attribute] = value

	rules := map[string][]any{attribute: b.Rules()}
	var out Outcome
	if cb, ok := b.backend.(ContextBackend); ok && b.ctx != nil {
		out = cb.ValidateContext(b.ctx, record, rules)
	} else {
		out = b.backend.Validate(record, rules)
	}
	if out != nil && out.Failed() {
		return b.fail(out.AllMessages())
	}
	return true
}

func (b *Builder) fail(messages []string) bool {
	var tr Translator
	if p, ok := b.backend.(TranslatorProvider); ok {
		tr = p.Translator()
	}
	ct, _ := tr.(ContextTranslator)
	for _, msg := range messages {
		switch {
		case ct != nil && b.ctx != nil:
			msg = ct.TranslateContext(b.ctx, msg)
		case tr != nil:
			msg = tr.Translate(msg)
		}
		b.messages = append(b.messages, msg)
	}
	return false
}

// Message returns the failure messages of the last Passes call.
func (b *Builder) Message() []string {
	return append([]string(nil), b.messages...)
}

// Rules returns a copy of the accumulated rule list.
func (b *Builder) Rules() []any {
	return append([]any(nil), b.rules...)
}

// BindContext is called by the engine when the Builder is nested inside
// another rule list. The Builder then validates with that engine, in the
// locale carried by ctx, and sees the whole record.
func (b *Builder) BindContext(ctx context.Context, e *validator.Engine, data map[string]any) {
	b.backend = Engine(e)
	b.data = data
	b.ctx = ctx
}

// Snake converts a camelCase rule name to snake_case: "digitsBetween"
// becomes "digits_between". Whitespace is removed and every character
// followed by an upper-case letter gets an underscore after it.
func Snake(name string) string {
	if strings.IndexFunc(name, func(r rune) bool { return !unicode.IsLower(r) }) < 0 {
		return name
	}

	runes := []rune(strings.Join(strings.Fields(name), ""))
	var sb strings.Builder
	sb.Grow(len(runes) + 4)
	for i, r := range runes {
		sb.WriteRune(unicode.ToLower(r))
		if i+1 < len(runes) && unicode.IsUpper(runes[i+1]) {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func formatArg(a any) string {
	switch v := a.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	case []string:
		return strings.Join(v, ",")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
