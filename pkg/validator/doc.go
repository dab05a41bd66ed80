// Package validator is a rule-token validation engine.
//
// Rules are plain strings such as "required", "max:255" or
// "in:draft,published", optionally joined with "|". Each token is resolved
// through a Registry into a Rule (a Check func plus a translation friendly
// ValidationError) and evaluated against one field of a record. Besides
// tokens the engine accepts Rule values, RuleFunc closures and RuleObject
// implementations, so richer checks such as Password can sit next to plain
// tokens.
//
// # Usage
//
//	engine := validator.New(validator.WithLocale("en"))
//	out := engine.Validate(
//	    map[string]any{"name": "alfred", "email": "alfred@example"},
//	    map[string][]any{
//	        "name":  {"required|string|max:255"},
//	        "email": {"required", "email:strict"},
//	    },
//	)
//	if out.Failed() {
//	    for _, msg := range out.AllMessages() {
//	        fmt.Println(msg)
//	    }
//	}
//
// # Evaluation
//
// Implicit rules (required, required_if, required_with, filled, present,
// prohibited, accepted, declined) always run, and a failing implicit rule
// ends evaluation of the field. Every other rule is skipped
// when the field is missing or holds a blank string, and for nil values
// when the field is marked "nullable". "bail" stops a field at its first
// failure and "sometimes" skips the field entirely when it is missing.
// Size rules (min, max, size, between, gt, gte, lt, lte) measure strings by
// character count, numbers by value and collections by length; a string is
// measured by value when the field also carries "numeric" or "integer".
//
// Unknown rule names are skipped with a warning unless WithStrictRules is
// set, in which case they fail the field.
//
// # Messages
//
// Every failure carries a default English message and a translation key
// ("validation.min.string"). When a Translator knowing the key is
// configured, the key's template is rendered instead, with %{attribute}
// and rule specific placeholders.
package validator
