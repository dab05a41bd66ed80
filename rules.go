package rulebuilder

import "github.com/dmitrymomot/rulebuilder/pkg/validator"

// Presence rules.

func (b *Builder) Required() *Builder   { return b.Rule("required") }
func (b *Builder) Filled() *Builder     { return b.Rule("filled") }
func (b *Builder) Present() *Builder    { return b.Rule("present") }
func (b *Builder) Prohibited() *Builder { return b.Rule("prohibited") }
func (b *Builder) Accepted() *Builder   { return b.Rule("accepted") }
func (b *Builder) Declined() *Builder   { return b.Rule("declined") }

// RequiredIf requires the attribute when field equals one of values.
func (b *Builder) RequiredIf(field string, values ...any) *Builder {
	return b.Rule("requiredIf", append([]any{field}, values...)...)
}

// RequiredUnless requires the attribute unless field equals one of values.
func (b *Builder) RequiredUnless(field string, values ...any) *Builder {
	return b.Rule("requiredUnless", append([]any{field}, values...)...)
}

// RequiredWith requires the attribute when any of fields is present.
func (b *Builder) RequiredWith(fields ...string) *Builder {
	return b.Rule("requiredWith", anys(fields)...)
}

// RequiredWithout requires the attribute when any of fields is missing.
func (b *Builder) RequiredWithout(fields ...string) *Builder {
	return b.Rule("requiredWithout", anys(fields)...)
}

// Control rules.

func (b *Builder) Bail() *Builder      { return b.Rule(validator.RuleBail) }
func (b *Builder) Nullable() *Builder  { return b.Rule(validator.RuleNullable) }
func (b *Builder) Sometimes() *Builder { return b.Rule(validator.RuleSometimes) }

// Type rules.

func (b *Builder) String() *Builder  { return b.Rule("string") }
func (b *Builder) Integer() *Builder { return b.Rule("integer") }
func (b *Builder) Numeric() *Builder { return b.Rule("numeric") }
func (b *Builder) Boolean() *Builder { return b.Rule("boolean") }
func (b *Builder) Array() *Builder   { return b.Rule("array") }

// Size rules. Strings are measured by length, numbers by value and
// collections by element count.

func (b *Builder) Min(n any) *Builder            { return b.Rule("min", n) }
func (b *Builder) Max(n any) *Builder            { return b.Rule("max", n) }
func (b *Builder) Size(n any) *Builder           { return b.Rule("size", n) }
func (b *Builder) Between(min, max any) *Builder { return b.Rule("between", min, max) }

// Gt, Gte, Lt and Lte take another field name or a number.
func (b *Builder) Gt(fieldOrValue any) *Builder  { return b.Rule("gt", fieldOrValue) }
func (b *Builder) Gte(fieldOrValue any) *Builder { return b.Rule("gte", fieldOrValue) }
func (b *Builder) Lt(fieldOrValue any) *Builder  { return b.Rule("lt", fieldOrValue) }
func (b *Builder) Lte(fieldOrValue any) *Builder { return b.Rule("lte", fieldOrValue) }

func (b *Builder) Digits(n int) *Builder               { return b.Rule("digits", n) }
func (b *Builder) DigitsBetween(min, max int) *Builder { return b.Rule("digitsBetween", min, max) }
func (b *Builder) MultipleOf(n any) *Builder           { return b.Rule("multipleOf", n) }

// Format rules.

// Email accepts optional modes; "strict" rejects addresses without a dotted
// domain.
func (b *Builder) Email(modes ...string) *Builder { return b.Rule("email", anys(modes)...) }

// URL accepts optional allowed schemes, "http" and "https" by default.
func (b *Builder) URL(schemes ...string) *Builder { return b.Rule("url", anys(schemes)...) }

func (b *Builder) IP() *Builder         { return b.Rule("ip") }
func (b *Builder) IPv4() *Builder       { return b.Rule("ipv4") }
func (b *Builder) IPv6() *Builder       { return b.Rule("ipv6") }
func (b *Builder) MACAddress() *Builder { return b.Rule("mac_address") }
func (b *Builder) UUID() *Builder       { return b.Rule("uuid") }
func (b *Builder) JSON() *Builder       { return b.Rule("json") }
func (b *Builder) Alpha() *Builder      { return b.Rule("alpha") }
func (b *Builder) AlphaNum() *Builder   { return b.Rule("alphaNum") }
func (b *Builder) AlphaDash() *Builder  { return b.Rule("alphaDash") }
func (b *Builder) Lowercase() *Builder  { return b.Rule("lowercase") }
func (b *Builder) Uppercase() *Builder  { return b.Rule("uppercase") }

// Pattern rules.

// Regex adds a regex rule. Patterns may be written with delimiters and
// flags, "/^[a-z]+$/i", and may contain "|".
func (b *Builder) Regex(pattern string) *Builder    { return b.Rule("regex", pattern) }
func (b *Builder) NotRegex(pattern string) *Builder { return b.Rule("notRegex", pattern) }

func (b *Builder) StartsWith(prefixes ...string) *Builder {
	return b.Rule("startsWith", anys(prefixes)...)
}

func (b *Builder) EndsWith(suffixes ...string) *Builder {
	return b.Rule("endsWith", anys(suffixes)...)
}

func (b *Builder) DoesntStartWith(prefixes ...string) *Builder {
	return b.Rule("doesntStartWith", anys(prefixes)...)
}

func (b *Builder) DoesntEndWith(suffixes ...string) *Builder {
	return b.Rule("doesntEndWith", anys(suffixes)...)
}

// Choice rules.

func (b *Builder) In(values ...any) *Builder    { return b.Rule("in", values...) }
func (b *Builder) NotIn(values ...any) *Builder { return b.Rule("notIn", values...) }

// Comparison rules.

// Confirmed requires a matching "<attribute>_confirmation" field in the data.
func (b *Builder) Confirmed() *Builder             { return b.Rule("confirmed") }
func (b *Builder) Same(field string) *Builder      { return b.Rule("same", field) }
func (b *Builder) Different(field string) *Builder { return b.Rule("different", field) }

// Date rules. Bounds may be another field, a date literal or one of now,
// today, tomorrow and yesterday.

func (b *Builder) Date() *Builder                    { return b.Rule("date") }
func (b *Builder) DateFormat(layout string) *Builder { return b.Rule("dateFormat", layout) }
func (b *Builder) Before(bound any) *Builder         { return b.Rule("before", bound) }
func (b *Builder) BeforeOrEqual(bound any) *Builder  { return b.Rule("beforeOrEqual", bound) }
func (b *Builder) After(bound any) *Builder          { return b.Rule("after", bound) }
func (b *Builder) AfterOrEqual(bound any) *Builder   { return b.Rule("afterOrEqual", bound) }

// Object rules.

// Password appends a password rule object requiring at least min characters.
// Use Add with validator.Password to configure further requirements.
func (b *Builder) Password(min int) *Builder {
	return b.Add(validator.Password(min))
}

// Func appends a closure rule.
func (b *Builder) Func(fn validator.RuleFunc) *Builder {
	if fn == nil {
		return b
	}
	return b.Add(fn)
}

func anys(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
