package rulebuilder

import "errors"

var (
	// ErrNoBackend is reported by Passes when no validation backend is set.
	ErrNoBackend = errors.New("no validation backend configured")

	// ErrRuleNotFound wraps rule names rejected in strict mode.
	ErrRuleNotFound = errors.New("rule not found")
)
