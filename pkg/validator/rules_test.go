package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rulebuilder/pkg/validator"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

type ruleCase struct {
	name  string
	rules string
	data  map[string]any
	pass  bool
}

// v builds a record holding value under "v".
func v(value any) map[string]any {
	return map[string]any{"v": value}
}

func with(value any, kv ...any) map[string]any {
	data := v(value)
	for i := 0; i+1 < len(kv); i += 2 {
		data[kv[i].(string)] = kv[i+1]
	}
	return data
}

func runRuleCases(t *testing.T, cases []ruleCase) {
	t.Helper()
	engine := validator.New(validator.WithClock(func() time.Time { return fixedNow }))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := engine.Validate(tc.data, map[string][]any{"v": {tc.rules}})
			assert.Equal(t, tc.pass, out.Passed(), "%s on %v: %v", tc.rules, tc.data, out.AllMessages())
		})
	}
}

func TestPresenceRules(t *testing.T) {
	runRuleCases(t, []ruleCase{
		{name: "required missing", rules: "required", data: map[string]any{}, pass: false},
		{name: "required empty", rules: "required", data: v(""), pass: false},
		{name: "required blank", rules: "required", data: v("   "), pass: false},
		{name: "required nil", rules: "required", data: v(nil), pass: false},
		{name: "required empty slice", rules: "required", data: v([]any{}), pass: false},
		{name: "required value", rules: "required", data: v("x"), pass: true},
		{name: "required zero", rules: "required", data: v(0), pass: true},
		{name: "required false", rules: "required", data: v(false), pass: true},

		{name: "required_if match", rules: "required_if:kind,company", data: map[string]any{"kind": "company"}, pass: false},
		{name: "required_if no match", rules: "required_if:kind,company", data: map[string]any{"kind": "person"}, pass: true},
		{name: "required_if bool", rules: "required_if:active,1", data: map[string]any{"active": true}, pass: false},
		{name: "required_if bad params", rules: "required_if:kind", data: v("x"), pass: false},
		{name: "required_unless match", rules: "required_unless:kind,person", data: map[string]any{"kind": "person"}, pass: true},
		{name: "required_unless no match", rules: "required_unless:kind,person", data: map[string]any{"kind": "company"}, pass: false},
		{name: "required_with present", rules: "required_with:a,b", data: map[string]any{"a": "x"}, pass: false},
		{name: "required_with absent", rules: "required_with:a,b", data: map[string]any{}, pass: true},
		{name: "required_without absent", rules: "required_without:a", data: map[string]any{}, pass: false},
		{name: "required_without present", rules: "required_without:a", data: map[string]any{"a": "x"}, pass: true},

		{name: "filled missing", rules: "filled", data: map[string]any{}, pass: true},
		{name: "filled empty", rules: "filled", data: v(""), pass: false},
		{name: "filled value", rules: "filled", data: v("x"), pass: true},
		{name: "present missing", rules: "present", data: map[string]any{}, pass: false},
		{name: "present nil", rules: "present", data: v(nil), pass: true},
		{name: "prohibited missing", rules: "prohibited", data: map[string]any{}, pass: true},
		{name: "prohibited empty", rules: "prohibited", data: v(""), pass: true},
		{name: "prohibited value", rules: "prohibited", data: v("x"), pass: false},

		{name: "accepted yes", rules: "accepted", data: v("yes"), pass: true},
		{name: "accepted on", rules: "accepted", data: v("ON"), pass: true},
		{name: "accepted true", rules: "accepted", data: v(true), pass: true},
		{name: "accepted no", rules: "accepted", data: v("no"), pass: false},
		{name: "accepted missing", rules: "accepted", data: map[string]any{}, pass: false},
		{name: "declined off", rules: "declined", data: v("off"), pass: true},
		{name: "declined false", rules: "declined", data: v(false), pass: true},
		{name: "declined yes", rules: "declined", data: v("yes"), pass: false},
	})
}

func TestTypeRules(t *testing.T) {
	runRuleCases(t, []ruleCase{
		{name: "string", rules: "string", data: v("x"), pass: true},
		{name: "string number", rules: "string", data: v(5), pass: false},
		{name: "integer int", rules: "integer", data: v(5), pass: true},
		{name: "integer whole float", rules: "integer", data: v(5.0), pass: true},
		{name: "integer string", rules: "integer", data: v("12"), pass: true},
		{name: "integer fraction", rules: "integer", data: v(5.5), pass: false},
		{name: "integer text", rules: "integer", data: v("a"), pass: false},
		{name: "numeric string", rules: "numeric", data: v("1.5"), pass: true},
		{name: "numeric int", rules: "numeric", data: v(3), pass: true},
		{name: "numeric text", rules: "numeric", data: v("abc"), pass: false},
		{name: "boolean true", rules: "boolean", data: v(true), pass: true},
		{name: "boolean one string", rules: "boolean", data: v("1"), pass: true},
		{name: "boolean zero", rules: "boolean", data: v(0), pass: true},
		{name: "boolean yes", rules: "boolean", data: v("yes"), pass: false},
		{name: "boolean two", rules: "boolean", data: v(2), pass: false},
		{name: "array slice", rules: "array", data: v([]any{1}), pass: true},
		{name: "array map", rules: "array", data: v(map[string]any{"a": 1}), pass: true},
		{name: "array string", rules: "array", data: v("x"), pass: false},
	})
}

func TestSizeRules(t *testing.T) {
	runRuleCases(t, []ruleCase{
		{name: "min short string", rules: "min:3", data: v("ab"), pass: false},
		{name: "min string", rules: "min:3", data: v("abc"), pass: true},
		{name: "min counts runes", rules: "min:3", data: v("äöü"), pass: true},
		{name: "min number", rules: "min:3", data: v(2), pass: false},
		{name: "min array", rules: "min:3", data: v([]any{1, 2, 3}), pass: true},
		{name: "max long string", rules: "max:3", data: v("abcd"), pass: false},
		{name: "max number", rules: "max:3", data: v(4), pass: false},
		{name: "max numeric string by value", rules: "numeric|max:5", data: v("10"), pass: false},
		{name: "max string by length", rules: "string|max:5", data: v("10"), pass: true},
		{name: "max integer string by value", rules: "integer|max:3000", data: v("1234"), pass: true},
		{name: "max bad param", rules: "max:abc", data: v("x"), pass: false},
		{name: "size string", rules: "size:2", data: v("ab"), pass: true},
		{name: "size array", rules: "size:2", data: v([]any{1}), pass: false},
		{name: "between string", rules: "between:2,4", data: v("abc"), pass: true},
		{name: "between number", rules: "between:2,4", data: v(5), pass: false},
		{name: "between bad params", rules: "between:2", data: v(3), pass: false},
		{name: "size of unmeasurable", rules: "min:1", data: v(struct{}{}), pass: false},

		{name: "gt field", rules: "gt:other", data: with(6, "other", 5), pass: true},
		{name: "gt field equal", rules: "gt:other", data: with(5, "other", 5), pass: false},
		{name: "gt literal", rules: "gt:10", data: v(11), pass: true},
		{name: "gte string field", rules: "gte:other", data: with("abc", "other", "xyz"), pass: true},
		{name: "lt literal", rules: "lt:5", data: v(4), pass: true},
		{name: "lte literal", rules: "lte:5", data: v(6), pass: false},
		{name: "gt unresolvable", rules: "gt:missing", data: v(6), pass: false},

		{name: "digits string", rules: "digits:4", data: v("1234"), pass: true},
		{name: "digits int", rules: "digits:4", data: v(1234), pass: true},
		{name: "digits letters", rules: "digits:4", data: v("12a4"), pass: false},
		{name: "digits short", rules: "digits:4", data: v("123"), pass: false},
		{name: "digits_between", rules: "digits_between:2,4", data: v("123"), pass: true},
		{name: "digits_between long", rules: "digits_between:2,4", data: v("12345"), pass: false},
		{name: "multiple_of", rules: "multiple_of:5", data: v(15), pass: true},
		{name: "multiple_of miss", rules: "multiple_of:5", data: v(16), pass: false},
		{name: "multiple_of fraction", rules: "multiple_of:0.5", data: v(1.5), pass: true},
		{name: "multiple_of zero", rules: "multiple_of:0", data: v(1), pass: false},
	})
}

func TestFormatRules(t *testing.T) {
	runRuleCases(t, []ruleCase{
		{name: "email", rules: "email", data: v("a@b.co"), pass: true},
		{name: "email invalid", rules: "email", data: v("not-an-email"), pass: false},
		{name: "email single label", rules: "email", data: v("a@localhost"), pass: true},
		{name: "email strict single label", rules: "email:strict", data: v("a@localhost"), pass: false},
		{name: "email strict trailing dot", rules: "email:strict", data: v("invalid.@example.com"), pass: false},
		{name: "email strict", rules: "email:strict", data: v("alfred@example.com"), pass: true},
		{name: "email display name", rules: "email", data: v("Alfred <alfred@example.com>"), pass: false},

		{name: "url", rules: "url", data: v("https://example.com/x"), pass: true},
		{name: "url no scheme", rules: "url", data: v("example.com"), pass: false},
		{name: "url scheme filter", rules: "url:https", data: v("http://example.com"), pass: false},

		{name: "ip v4", rules: "ip", data: v("192.168.0.1"), pass: true},
		{name: "ip v6", rules: "ip", data: v("::1"), pass: true},
		{name: "ip invalid", rules: "ip", data: v("999.1.1.1"), pass: false},
		{name: "ipv4 rejects v6", rules: "ipv4", data: v("::1"), pass: false},
		{name: "ipv6", rules: "ipv6", data: v("::1"), pass: true},
		{name: "ipv6 rejects v4", rules: "ipv6", data: v("10.0.0.1"), pass: false},
		{name: "mac", rules: "mac_address", data: v("00:1A:2B:3C:4D:5E"), pass: true},
		{name: "mac short", rules: "mac_address", data: v("00:1A"), pass: false},

		{name: "uuid", rules: "uuid", data: v("550e8400-e29b-41d4-a716-446655440000"), pass: true},
		{name: "uuid braced", rules: "uuid", data: v("{550e8400-e29b-41d4-a716-446655440000}"), pass: false},
		{name: "uuid garbage", rules: "uuid", data: v("not-a-uuid"), pass: false},
		{name: "json", rules: "json", data: v(`{"a":1}`), pass: true},
		{name: "json invalid", rules: "json", data: v(`{a:1}`), pass: false},
		{name: "json non string", rules: "json", data: v(5), pass: false},

		{name: "alpha", rules: "alpha", data: v("abcÄ"), pass: true},
		{name: "alpha digits", rules: "alpha", data: v("ab1"), pass: false},
		{name: "alpha_num", rules: "alpha_num", data: v("ab1"), pass: true},
		{name: "alpha_num dash", rules: "alpha_num", data: v("ab-1"), pass: false},
		{name: "alpha_dash", rules: "alpha_dash", data: v("ab-1_c"), pass: true},
		{name: "alpha_dash space", rules: "alpha_dash", data: v("ab 1"), pass: false},
		{name: "lowercase", rules: "lowercase", data: v("abc"), pass: true},
		{name: "lowercase mixed", rules: "lowercase", data: v("aBc"), pass: false},
		{name: "uppercase", rules: "uppercase", data: v("ABC"), pass: true},
	})
}

func TestPatternRules(t *testing.T) {
	runRuleCases(t, []ruleCase{
		{name: "regex flags", rules: "regex:/^[a-z]+$/i", data: v("AbC"), pass: true},
		{name: "regex miss", rules: "regex:/^[a-z]+$/i", data: v("ab1"), pass: false},
		{name: "regex alternation", rules: "regex:/^(foo|bar)$/", data: v("bar"), pass: true},
		{name: "regex alternation miss", rules: "regex:/^(foo|bar)$/", data: v("baz"), pass: false},
		{name: "regex plain", rules: `regex:^\d+$`, data: v(42), pass: true},
		{name: "regex broken", rules: "regex:/[/", data: v("x"), pass: false},
		{name: "not_regex", rules: `not_regex:/\d/`, data: v("abc"), pass: true},
		{name: "not_regex hit", rules: `not_regex:/\d/`, data: v("a1"), pass: false},

		{name: "starts_with", rules: "starts_with:foo,bar", data: v("barista"), pass: true},
		{name: "starts_with miss", rules: "starts_with:foo,bar", data: v("baz"), pass: false},
		{name: "ends_with", rules: "ends_with:.go", data: v("main.go"), pass: true},
		{name: "doesnt_start_with", rules: "doesnt_start_with:tmp", data: v("tmpfile"), pass: false},
		{name: "doesnt_end_with", rules: "doesnt_end_with:.exe", data: v("a.exe"), pass: false},
		{name: "doesnt_end_with ok", rules: "doesnt_end_with:.exe", data: v("a.go"), pass: true},
	})
}

func TestChoiceAndComparisonRules(t *testing.T) {
	runRuleCases(t, []ruleCase{
		{name: "in", rules: "in:a,b", data: v("a"), pass: true},
		{name: "in miss", rules: "in:a,b", data: v("c"), pass: false},
		{name: "in slice", rules: "in:a,b", data: v([]any{"a", "b"}), pass: true},
		{name: "in slice miss", rules: "in:a,b", data: v([]any{"a", "c"}), pass: false},
		{name: "in int", rules: "in:1,2", data: v(1), pass: true},
		{name: "in json number", rules: "in:1,2", data: v(2.0), pass: true},
		{name: "not_in", rules: "not_in:a,b", data: v("c"), pass: true},
		{name: "not_in hit", rules: "not_in:a,b", data: v("a"), pass: false},

		{name: "confirmed", rules: "confirmed", data: with("x", "v_confirmation", "x"), pass: true},
		{name: "confirmed mismatch", rules: "confirmed", data: with("x", "v_confirmation", "y"), pass: false},
		{name: "confirmed missing", rules: "confirmed", data: v("x"), pass: false},
		{name: "same", rules: "same:other", data: with("x", "other", "x"), pass: true},
		{name: "same mismatch", rules: "same:other", data: with("x", "other", "y"), pass: false},
		{name: "different", rules: "different:other", data: with("x", "other", "y"), pass: true},
		{name: "different equal", rules: "different:other", data: with("x", "other", "x"), pass: false},
	})
}

func TestDateRules(t *testing.T) {
	runRuleCases(t, []ruleCase{
		{name: "date", rules: "date", data: v("2024-01-02"), pass: true},
		{name: "date time", rules: "date", data: v("2024-01-02 10:30:00"), pass: true},
		{name: "date invalid", rules: "date", data: v("2024-13-01"), pass: false},
		{name: "date value", rules: "date", data: v(fixedNow), pass: true},
		{name: "date_format", rules: "date_format:2006-01-02", data: v("2024-01-02"), pass: true},
		{name: "date_format miss", rules: "date_format:2006-01-02", data: v("02/01/2024"), pass: false},

		{name: "before today", rules: "before:today", data: v("2024-06-14"), pass: true},
		{name: "before today same day", rules: "before:today", data: v("2024-06-15"), pass: false},
		{name: "before_or_equal today", rules: "before_or_equal:today", data: v("2024-06-15"), pass: true},
		{name: "before now", rules: "before:now", data: v("2024-06-15T11:00:00Z"), pass: true},
		{name: "after tomorrow", rules: "after:tomorrow", data: v("2024-06-17"), pass: true},
		{name: "after tomorrow miss", rules: "after:tomorrow", data: v("2024-06-16"), pass: false},
		{name: "after yesterday", rules: "after:yesterday", data: v("2024-06-15"), pass: true},
		{name: "after_or_equal literal", rules: "after_or_equal:2024-01-01", data: v("2024-01-01"), pass: true},
		{name: "after field", rules: "after:start", data: with("2024-02-01", "start", "2024-01-01"), pass: true},
		{name: "after field miss", rules: "after:start", data: with("2023-12-31", "start", "2024-01-01"), pass: false},
		{name: "after unparseable field", rules: "after:start", data: with("2024-02-01", "start", "garbage"), pass: false},
		{name: "before unresolvable", rules: "before:someday", data: v("2024-01-01"), pass: false},
	})
}
