package validator

import "reflect"

// ConfirmationSuffix names the companion field checked by "confirmed".
const ConfirmationSuffix = "_confirmation"

func registerComparisonRules(r *Registry) {
	r.Register("confirmed", confirmedRule)
	r.Register("same", sameRule)
	r.Register("different", differentRule)
}

func confirmedRule(c Call) Rule {
	other, found := c.Other(c.Field + ConfirmationSuffix)
	return c.Rule(
		func() bool { return found && reflect.DeepEqual(c.Value, other) },
		"confirmed",
		"The %{attribute} confirmation does not match.",
	)
}

func sameRule(c Call) Rule {
	field, ok := c.Param(0)
	if !ok {
		return c.Invalid("expected another field")
	}
	other, found := c.Other(field)
	return c.Rule(
		func() bool { return found && reflect.DeepEqual(c.Value, other) },
		"same",
		"The %{attribute} and %{other} must match.",
		"other", field,
	)
}

func differentRule(c Call) Rule {
	field, ok := c.Param(0)
	if !ok {
		return c.Invalid("expected another field")
	}
	other, found := c.Other(field)
	return c.Rule(
		func() bool { return !found || !reflect.DeepEqual(c.Value, other) },
		"different",
		"The %{attribute} and %{other} must be different.",
		"other", field,
	)
}
