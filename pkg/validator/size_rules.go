package validator

import (
	"math"
	"strconv"
	"unicode"
)

func registerSizeRules(r *Registry) {
	r.Register("min", minRule)
	r.Register("max", maxRule)
	r.Register("size", sizeRule)
	r.Register("between", betweenRule)
	r.Register("gt", compareRule("gt", "greater than", func(a, b float64) bool { return a > b }))
	r.Register("gte", compareRule("gte", "greater than or equal to", func(a, b float64) bool { return a >= b }))
	r.Register("lt", compareRule("lt", "less than", func(a, b float64) bool { return a < b }))
	r.Register("lte", compareRule("lte", "less than or equal to", func(a, b float64) bool { return a <= b }))
	r.Register("digits", digitsRule)
	r.Register("digits_between", digitsBetweenRule)
	r.Register("multiple_of", multipleOfRule)
}

var sizeTemplates = map[string]map[sizeKind]string{
	"min": {
		sizeString:  "The %{attribute} must be at least %{min} characters.",
		sizeNumeric: "The %{attribute} must be at least %{min}.",
		sizeArray:   "The %{attribute} must have at least %{min} items.",
	},
	"max": {
		sizeString:  "The %{attribute} must not be greater than %{max} characters.",
		sizeNumeric: "The %{attribute} must not be greater than %{max}.",
		sizeArray:   "The %{attribute} must not have more than %{max} items.",
	},
	"size": {
		sizeString:  "The %{attribute} must be %{size} characters.",
		sizeNumeric: "The %{attribute} must be %{size}.",
		sizeArray:   "The %{attribute} must contain %{size} items.",
	},
	"between": {
		sizeString:  "The %{attribute} must be between %{min} and %{max} characters.",
		sizeNumeric: "The %{attribute} must be between %{min} and %{max}.",
		sizeArray:   "The %{attribute} must have between %{min} and %{max} items.",
	},
}

// numberParam parses the i-th token param as a number.
func numberParam(c Call, i int) (float64, bool) {
	p, ok := c.Param(i)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(p, 64)
	return f, err == nil
}

// measure sizes the value, defaulting the kind to string for unmeasurable values
// so the message still reads naturally.
func measure(c Call) (float64, sizeKind, bool) {
	size, kind, ok := sizeOf(c.Value, c.Numeric)
	if !ok {
		kind = sizeString
	}
	return size, kind, ok
}

func minRule(c Call) Rule {
	limit, ok := numberParam(c, 0)
	if !ok {
		return c.Invalid("expected a numeric minimum")
	}
	size, kind, measurable := measure(c)
	return c.Rule(
		func() bool { return measurable && size >= limit },
		"min."+string(kind),
		sizeTemplates["min"][kind],
		"min", formatNumber(limit),
	)
}

func maxRule(c Call) Rule {
	limit, ok := numberParam(c, 0)
	if !ok {
		return c.Invalid("expected a numeric maximum")
	}
	size, kind, measurable := measure(c)
	return c.Rule(
		func() bool { return measurable && size <= limit },
		"max."+string(kind),
		sizeTemplates["max"][kind],
		"max", formatNumber(limit),
	)
}

func sizeRule(c Call) Rule {
	want, ok := numberParam(c, 0)
	if !ok {
		return c.Invalid("expected a numeric size")
	}
	size, kind, measurable := measure(c)
	return c.Rule(
		func() bool { return measurable && size == want },
		"size."+string(kind),
		sizeTemplates["size"][kind],
		"size", formatNumber(want),
	)
}

func betweenRule(c Call) Rule {
	lo, ok1 := numberParam(c, 0)
	hi, ok2 := numberParam(c, 1)
	if !ok1 || !ok2 {
		return c.Invalid("expected numeric minimum and maximum")
	}
	size, kind, measurable := measure(c)
	return c.Rule(
		func() bool { return measurable && size >= lo && size <= hi },
		"between."+string(kind),
		sizeTemplates["between"][kind],
		"min", formatNumber(lo),
		"max", formatNumber(hi),
	)
}

// compareRule builds gt/gte/lt/lte. The param is either another field, whose
// size is compared, or a literal number.
func compareRule(name, phrase string, cmp func(a, b float64) bool) TokenFunc {
	return func(c Call) Rule {
		param, ok := c.Param(0)
		if !ok {
			return c.Invalid("expected a field or a number")
		}

		var (
			limit   float64
			haveLim bool
		)
		if other, found := c.Other(param); found {
			limit, _, haveLim = sizeOf(other, c.Numeric || isNumber(other))
		} else if f, err := strconv.ParseFloat(param, 64); err == nil {
			limit, haveLim = f, true
		}

		size, kind, measurable := measure(c)
		tmpl := "The %{attribute} must be " + phrase + " %{value}"
		switch kind {
		case sizeString:
			tmpl += " characters."
		case sizeArray:
			tmpl += " items."
		default:
			tmpl += "."
		}

		return c.Rule(
			func() bool { return haveLim && measurable && cmp(size, limit) },
			name+"."+string(kind),
			tmpl,
			"value", formatNumber(limit),
		)
	}
}

func digitsRule(c Call) Rule {
	n, ok := numberParam(c, 0)
	if !ok {
		return c.Invalid("expected a digit count")
	}
	return c.Rule(
		func() bool {
			d, ok := digitCount(c.Value)
			return ok && float64(d) == n
		},
		"digits",
		"The %{attribute} must be %{digits} digits.",
		"digits", formatNumber(n),
	)
}

func digitsBetweenRule(c Call) Rule {
	lo, ok1 := numberParam(c, 0)
	hi, ok2 := numberParam(c, 1)
	if !ok1 || !ok2 {
		return c.Invalid("expected minimum and maximum digit counts")
	}
	return c.Rule(
		func() bool {
			d, ok := digitCount(c.Value)
			return ok && float64(d) >= lo && float64(d) <= hi
		},
		"digits_between",
		"The %{attribute} must be between %{min} and %{max} digits.",
		"min", formatNumber(lo),
		"max", formatNumber(hi),
	)
}

func multipleOfRule(c Call) Rule {
	step, ok := numberParam(c, 0)
	if !ok || step == 0 {
		return c.Invalid("expected a non-zero number")
	}
	return c.Rule(
		func() bool {
			f, ok := toFloat(c.Value)
			if !ok {
				return false
			}
			q := f / step
			return math.Abs(q-math.Round(q)) < 1e-9
		},
		"multiple_of",
		"The %{attribute} must be a multiple of %{value}.",
		"value", formatNumber(step),
	)
}

// digitCount counts digits of an integer value; any non-digit rejects it.
func digitCount(v any) (int, bool) {
	s := toText(v)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, false
		}
	}
	return len(s), true
}
