package validator

import (
	"errors"
	"slices"
)

// Outcome is the result of one Validate call.
type Outcome struct {
	errors ValidationErrors
}

func (o *Outcome) add(err ValidationError) {
	o.errors.Add(err)
}

// Failed reports whether any rule failed.
func (o *Outcome) Failed() bool {
	return o != nil && len(o.errors) > 0
}

// Passed reports whether every rule passed. A nil Outcome has passed.
func (o *Outcome) Passed() bool {
	return !o.Failed()
}

// AllMessages returns every failure message in evaluation order.
func (o *Outcome) AllMessages() []string {
	if o == nil {
		return nil
	}
	return o.errors.Messages()
}

// Errors returns a copy of the collected failures.
func (o *Outcome) Errors() ValidationErrors {
	if o == nil || len(o.errors) == 0 {
		return nil
	}
	return append(ValidationErrors(nil), o.errors...)
}

// Has reports whether field has at least one failure.
func (o *Outcome) Has(field string) bool {
	return o != nil && o.errors.Has(field)
}

// Get returns the failure messages of field in evaluation order.
func (o *Outcome) Get(field string) []string {
	if o == nil {
		return nil
	}
	return o.errors.Get(field)
}

// Fields returns the failing fields in first-failure order.
func (o *Outcome) Fields() []string {
	if o == nil {
		return nil
	}
	return o.errors.Fields()
}

// Err returns nil on success, otherwise ErrValidationFailed joined with the
// ValidationErrors so both errors.Is and ExtractValidationErrors work.
// ErrInvalidRuleParams is added when a failure came from a misconfigured rule.
func (o *Outcome) Err() error {
	if !o.Failed() {
		return nil
	}
	errs := []error{ErrValidationFailed}
	if slices.ContainsFunc(o.errors, func(e ValidationError) bool { return e.TranslationKey == invalidParamsKey }) {
		errs = append(errs, ErrInvalidRuleParams)
	}
	return errors.Join(append(errs, o.Errors())...)
}
