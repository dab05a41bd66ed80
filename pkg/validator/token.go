package validator

import "strings"

// Delimiter separates rule tokens inside a single descriptor string.
const Delimiter = "|"

// Token is a parsed rule directive such as "max:255" or "in:a,b,c".
type Token struct {
	Name   string
	Params []string
}

// rawParamRules keep their whole parameter string, since patterns may contain commas.
var rawParamRules = map[string]bool{
	"regex":       true,
	"not_regex":   true,
	"date_format": true,
}

// ParseToken splits s on the first ':' into a name and comma separated params.
func ParseToken(s string) Token {
	s = strings.TrimSpace(s)
	name, params, found := strings.Cut(s, ":")
	name = strings.ToLower(strings.TrimSpace(name))

	t := Token{Name: name}
	if !found {
		return t
	}
	if rawParamRules[name] {
		t.Params = []string{params}
		return t
	}
	for p := range strings.SplitSeq(params, ",") {
		t.Params = append(t.Params, strings.TrimSpace(p))
	}
	return t
}

// SplitTokens splits a delimited descriptor into non-empty tokens.
// Strings starting with a regex rule are kept whole, because a pattern
// may legitimately contain the delimiter.
func SplitTokens(s string) []string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "regex:") || strings.HasPrefix(trimmed, "not_regex:") {
		return []string{trimmed}
	}

	var tokens []string
	for part := range strings.SplitSeq(s, Delimiter) {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

func (t Token) String() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	return t.Name + ":" + strings.Join(t.Params, ",")
}

// Param returns the i-th parameter.
func (t Token) Param(i int) (string, bool) {
	if i < 0 || i >= len(t.Params) {
		return "", false
	}
	return t.Params[i], true
}
