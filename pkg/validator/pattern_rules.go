package validator

import (
	"regexp"
	"strings"
)

func registerPatternRules(r *Registry) {
	r.Register("regex", regexRule("regex", true))
	r.Register("not_regex", regexRule("not_regex", false))
	r.Register("starts_with", affixRule("starts_with", "The %{attribute} must start with one of the following: %{values}.", strings.HasPrefix, true))
	r.Register("ends_with", affixRule("ends_with", "The %{attribute} must end with one of the following: %{values}.", strings.HasSuffix, true))
	r.Register("doesnt_start_with", affixRule("doesnt_start_with", "The %{attribute} may not start with one of the following: %{values}.", strings.HasPrefix, false))
	r.Register("doesnt_end_with", affixRule("doesnt_end_with", "The %{attribute} may not end with one of the following: %{values}.", strings.HasSuffix, false))
}

var patternCache = newRegexCache(maxCachedPatterns)

// compilePattern accepts plain Go patterns and delimited ones such as
// "/^[a-z]+$/i"; the trailing flags i, m and s are mapped to inline flags.
func compilePattern(p string) (*regexp.Regexp, error) {
	if re, ok := patternCache.get(p); ok {
		return re, nil
	}

	expr := p
	if len(p) >= 2 && p[0] == '/' {
		if end := strings.LastIndex(p, "/"); end > 0 {
			expr = p[1:end]
			var flags strings.Builder
			for _, f := range p[end+1:] {
				if strings.ContainsRune("ims", f) {
					flags.WriteRune(f)
				}
			}
			if flags.Len() > 0 {
				expr = "(?" + flags.String() + ")" + expr
			}
		}
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	patternCache.put(p, re)
	return re, nil
}

func regexRule(name string, mustMatch bool) TokenFunc {
	return func(c Call) Rule {
		p, ok := c.Param(0)
		if !ok || p == "" {
			return c.Invalid("expected a pattern")
		}
		re, err := compilePattern(p)
		if err != nil {
			return c.Invalid(err.Error())
		}
		return c.Rule(
			func() bool {
				s, ok := c.Value.(string)
				if !ok {
					if !isNumber(c.Value) {
						return false
					}
					s = toText(c.Value)
				}
				return re.MatchString(s) == mustMatch
			},
			name,
			"The %{attribute} format is invalid.",
		)
	}
}

func affixRule(name, tmpl string, has func(s, affix string) bool, want bool) TokenFunc {
	return func(c Call) Rule {
		if len(c.Token.Params) == 0 {
			return c.Invalid("expected at least one value")
		}
		return c.Rule(
			func() bool {
				s := toText(c.Value)
				for _, p := range c.Token.Params {
					if has(s, p) {
						return want
					}
				}
				return !want
			},
			name,
			tmpl,
			"values", c.Token.Params,
		)
	}
}
