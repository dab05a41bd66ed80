package validator

import "errors"

var (
	// ErrValidationFailed is returned by Outcome.Err when at least one rule failed.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownRule is reported for rule names missing from the registry.
	ErrUnknownRule = errors.New("rule not found")

	// ErrInvalidRuleParams is reported when a token carries unusable parameters.
	ErrInvalidRuleParams = errors.New("invalid rule parameters")

	// ErrInvalidJSON is returned by ValidateJSON for input that is not a JSON object.
	ErrInvalidJSON = errors.New("input is not a valid JSON object")

	// ErrUnsupportedDescriptor is reported for rule descriptors of an unknown type.
	ErrUnsupportedDescriptor = errors.New("unsupported rule descriptor")
)
