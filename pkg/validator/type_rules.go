package validator

import (
	"math"
	"strconv"
	"strings"
)

func registerTypeRules(r *Registry) {
	r.Register("string", stringRule)
	r.Register("integer", integerRule)
	r.Register("numeric", numericRule)
	r.Register("boolean", booleanRule)
	r.Register("array", arrayRule)
}

func stringRule(c Call) Rule {
	return c.Rule(
		func() bool {
			_, ok := c.Value.(string)
			return ok
		},
		"string",
		"The %{attribute} must be a string.",
	)
}

func integerRule(c Call) Rule {
	return c.Rule(
		func() bool { return isInteger(c.Value) },
		"integer",
		"The %{attribute} must be an integer.",
	)
}

func numericRule(c Call) Rule {
	return c.Rule(
		func() bool {
			_, ok := toFloat(c.Value)
			return ok
		},
		"numeric",
		"The %{attribute} must be a number.",
	)
}

func booleanRule(c Call) Rule {
	return c.Rule(
		func() bool {
			switch v := c.Value.(type) {
			case bool:
				return true
			case string:
				return v == "0" || v == "1"
			}
			f, ok := toFloat(c.Value)
			return ok && isNumber(c.Value) && (f == 0 || f == 1)
		},
		"boolean",
		"The %{attribute} field must be true or false.",
	)
}

func arrayRule(c Call) Rule {
	return c.Rule(
		func() bool {
			_, ok := collectionLen(c.Value)
			return ok
		},
		"array",
		"The %{attribute} must be an array.",
	)
}

// isInteger accepts Go integers, whole floats (JSON numbers) and integer strings.
func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return n == float32(math.Trunc(float64(n)))
	case float64:
		return n == math.Trunc(n) && !math.IsInf(n, 0)
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return err == nil
	}
	return false
}
