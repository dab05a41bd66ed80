package validator

import "slices"

func registerChoiceRules(r *Registry) {
	r.Register("in", inRule)
	r.Register("not_in", notInRule)
}

// choiceValues flattens a collection value so every element is checked.
func choiceValues(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, toText(item))
		}
		return out
	case []string:
		return val
	}
	return []string{toText(v)}
}

func inRule(c Call) Rule {
	return c.Rule(
		func() bool {
			for _, v := range choiceValues(c.Value) {
				if !slices.Contains(c.Token.Params, v) {
					return false
				}
			}
			return true
		},
		"in",
		"The selected %{attribute} is invalid.",
		"values", c.Token.Params,
	)
}

func notInRule(c Call) Rule {
	return c.Rule(
		func() bool {
			for _, v := range choiceValues(c.Value) {
				if slices.Contains(c.Token.Params, v) {
					return false
				}
			}
			return true
		},
		"not_in",
		"The selected %{attribute} is invalid.",
		"values", c.Token.Params,
	)
}
