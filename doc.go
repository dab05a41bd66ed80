// Package rulebuilder composes validation rule lists fluently and hands them
// to a validation backend.
//
// A Builder accumulates an ordered list of rule descriptors: delimited
// strings ("required|string|max:255"), single tokens, rule objects and
// closures. It does not interpret the tokens itself. When Passes is called
// the list is validated by the configured Backend and the failure messages
// are kept for Message.
//
// # Usage
//
//	engine := validator.New()
//
//	title := rulebuilder.NewWith(rulebuilder.Engine(engine), "required|string").
//	    Min(3).
//	    Max(255)
//
//	if !title.Passes("title", "hi") {
//	    fmt.Println(title.Message()) // [The title must be at least 3 characters.]
//	}
//
// Rules can be added by name with Rule, which converts camelCase names to
// snake_case and joins arguments with commas:
//
//	b.Rule("digitsBetween", 2, 4) // "digits_between:2,4"
//
// Typed wrappers (Required, Email, Between, In, ...) exist for every rule
// of the bundled engine.
//
// # Nesting
//
// A Builder satisfies validator.RuleObject and validator.ContextAwareRule,
// so it can be used as a rule inside another rule list. The engine binds
// itself and the full record before calling Passes.
//
// # Strict mode
//
// By default any rule name is accepted. Strict enables name checking against
// a RuleChecker such as *validator.Engine; unknown rules are dropped and
// reported through Err.
package rulebuilder
