package ruleserver

import "errors"

var (
	ErrNoRuleSets    = errors.New("no rule sets to serve")
	ErrRuleSetEngine = errors.New("failed to build engine for rule set")
)
