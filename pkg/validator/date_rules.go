package validator

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when a string is parsed as a date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

func registerDateRules(r *Registry) {
	r.Register("date", dateRule)
	r.Register("date_format", dateFormatRule)
	r.Register("before", dateCompareRule("before", "a date before", func(a, b time.Time) bool { return a.Before(b) }))
	r.Register("before_or_equal", dateCompareRule("before_or_equal", "a date before or equal to", func(a, b time.Time) bool { return !a.After(b) }))
	r.Register("after", dateCompareRule("after", "a date after", func(a, b time.Time) bool { return a.After(b) }))
	r.Register("after_or_equal", dateCompareRule("after_or_equal", "a date after or equal to", func(a, b time.Time) bool { return !a.Before(b) }))
}

func parseDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, !val.IsZero()
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}
		return *val, !val.IsZero()
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// resolveDate interprets a date param: another field, a relative keyword
// (now, today, tomorrow, yesterday) or a literal date.
func resolveDate(c Call, param string) (time.Time, bool) {
	if other, ok := c.Other(param); ok {
		return parseDate(other)
	}

	today := time.Date(c.Now.Year(), c.Now.Month(), c.Now.Day(), 0, 0, 0, 0, c.Now.Location())
	switch strings.ToLower(param) {
	case "now":
		return c.Now, true
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	case "yesterday":
		return today.AddDate(0, 0, -1), true
	}
	return parseDate(param)
}

func dateRule(c Call) Rule {
	return c.Rule(
		func() bool {
			_, ok := parseDate(c.Value)
			return ok
		},
		"date",
		"The %{attribute} is not a valid date.",
	)
}

// dateFormatRule takes a Go reference layout, e.g. date_format:2006-01-02.
func dateFormatRule(c Call) Rule {
	layout, ok := c.Param(0)
	if !ok || layout == "" {
		return c.Invalid("expected a layout")
	}
	return c.Rule(
		func() bool {
			s, ok := c.Value.(string)
			if !ok {
				return false
			}
			_, err := time.Parse(layout, s)
			return err == nil
		},
		"date_format",
		"The %{attribute} does not match the format %{format}.",
		"format", layout,
	)
}

func dateCompareRule(name, phrase string, cmp func(a, b time.Time) bool) TokenFunc {
	return func(c Call) Rule {
		param, ok := c.Param(0)
		if !ok || param == "" {
			return c.Invalid("expected a date or a field")
		}
		limit, resolved := resolveDate(c, param)
		if _, isField := c.Other(param); !resolved && !isField {
			return c.Invalid("cannot resolve date " + param)
		}
		return c.Rule(
			func() bool {
				t, ok := parseDate(c.Value)
				return ok && resolved && cmp(t, limit)
			},
			name,
			"The %{attribute} must be "+phrase+" %{date}.",
			"date", param,
		)
	}
}
