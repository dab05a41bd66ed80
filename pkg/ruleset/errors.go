package ruleset

import "errors"

var (
	ErrFailedToReadFile      = errors.New("failed to read rule set file")
	ErrFailedToParse         = errors.New("failed to parse rule set")
	ErrUnsupportedFormat     = errors.New("unsupported rule set format")
	ErrInvalidRuleDefinition = errors.New("invalid rule definition")
	ErrUnknownRules          = errors.New("rule set references unknown rules")
	ErrNoRuleSets            = errors.New("no rule set files found")
	ErrDuplicateName         = errors.New("duplicate rule set name")
)
