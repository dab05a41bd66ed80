package validator

import (
	"slices"
	"strings"
)

var (
	acceptedValues = []string{"yes", "on", "1", "true"}
	declinedValues = []string{"no", "off", "0", "false"}
)

func registerPresenceRules(r *Registry) {
	r.RegisterImplicit("required", required)
	r.RegisterImplicit("required_if", requiredIf)
	r.RegisterImplicit("required_unless", requiredUnless)
	r.RegisterImplicit("required_with", requiredWith)
	r.RegisterImplicit("required_without", requiredWithout)
	r.RegisterImplicit("filled", filled)
	r.RegisterImplicit("present", present)
	r.RegisterImplicit("prohibited", prohibited)
	r.RegisterImplicit("accepted", accepted)
	r.RegisterImplicit("declined", declined)
}

func required(c Call) Rule {
	return c.Rule(
		func() bool { return c.Present && !isBlank(c.Value) },
		"required",
		"The %{attribute} field is required.",
	)
}

// requiredIf: required_if:other,value1,value2
func requiredIf(c Call) Rule {
	other, ok := c.Param(0)
	if !ok || len(c.Token.Params) < 2 {
		return c.Invalid("expected another field and at least one value")
	}
	values := c.Token.Params[1:]
	v, _ := c.Other(other)

	return c.Rule(
		func() bool {
			if !slices.Contains(values, toText(v)) {
				return true
			}
			return c.Present && !isBlank(c.Value)
		},
		"required_if",
		"The %{attribute} field is required when %{other} is %{value}.",
		"other", other,
		"value", strings.Join(values, ", "),
	)
}

// requiredUnless: required_unless:other,value1,value2
func requiredUnless(c Call) Rule {
	other, ok := c.Param(0)
	if !ok || len(c.Token.Params) < 2 {
		return c.Invalid("expected another field and at least one value")
	}
	values := c.Token.Params[1:]
	v, _ := c.Other(other)

	return c.Rule(
		func() bool {
			if slices.Contains(values, toText(v)) {
				return true
			}
			return c.Present && !isBlank(c.Value)
		},
		"required_unless",
		"The %{attribute} field is required unless %{other} is in %{values}.",
		"other", other,
		"values", strings.Join(values, ", "),
	)
}

// requiredWith: required when any of the listed fields is filled.
func requiredWith(c Call) Rule {
	if len(c.Token.Params) == 0 {
		return c.Invalid("expected at least one field")
	}

	return c.Rule(
		func() bool {
			for _, f := range c.Token.Params {
				if v, ok := c.Other(f); ok && !isBlank(v) {
					return c.Present && !isBlank(c.Value)
				}
			}
			return true
		},
		"required_with",
		"The %{attribute} field is required when %{values} is present.",
		"values", strings.Join(c.Token.Params, " / "),
	)
}

// requiredWithout: required when any of the listed fields is missing or blank.
func requiredWithout(c Call) Rule {
	if len(c.Token.Params) == 0 {
		return c.Invalid("expected at least one field")
	}

	return c.Rule(
		func() bool {
			for _, f := range c.Token.Params {
				if v, ok := c.Other(f); !ok || isBlank(v) {
					return c.Present && !isBlank(c.Value)
				}
			}
			return true
		},
		"required_without",
		"The %{attribute} field is required when %{values} is not present.",
		"values", strings.Join(c.Token.Params, " / "),
	)
}

func filled(c Call) Rule {
	return c.Rule(
		func() bool { return !c.Present || !isBlank(c.Value) },
		"filled",
		"The %{attribute} field must have a value.",
	)
}

func present(c Call) Rule {
	return c.Rule(
		func() bool { return c.Present },
		"present",
		"The %{attribute} field must be present.",
	)
}

func prohibited(c Call) Rule {
	return c.Rule(
		func() bool { return !c.Present || isBlank(c.Value) },
		"prohibited",
		"The %{attribute} field is prohibited.",
	)
}

func accepted(c Call) Rule {
	return c.Rule(
		func() bool {
			return c.Present && slices.Contains(acceptedValues, strings.ToLower(toText(c.Value)))
		},
		"accepted",
		"The %{attribute} must be accepted.",
	)
}

func declined(c Call) Rule {
	return c.Rule(
		func() bool {
			return c.Present && slices.Contains(declinedValues, strings.ToLower(toText(c.Value)))
		},
		"declined",
		"The %{attribute} must be declined.",
	)
}
