package validator

import (
	"net"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

func registerFormatRules(r *Registry) {
	r.Register("email", emailRule)
	r.Register("url", urlRule)
	r.Register("ip", ipRule("ip", "a valid IP address", func(ip net.IP) bool { return true }))
	r.Register("ipv4", ipRule("ipv4", "a valid IPv4 address", func(ip net.IP) bool { return ip.To4() != nil }))
	r.Register("ipv6", ipRule("ipv6", "a valid IPv6 address", func(ip net.IP) bool { return ip.To4() == nil }))
	r.Register("mac_address", macRule)
	r.Register("uuid", uuidRule)
	r.Register("json", jsonRule)
	r.Register("alpha", charsetRule("alpha", "The %{attribute} must only contain letters.", isAlpha))
	r.Register("alpha_num", charsetRule("alpha_num", "The %{attribute} must only contain letters and numbers.", isAlphaNum))
	r.Register("alpha_dash", charsetRule("alpha_dash", "The %{attribute} must only contain letters, numbers, dashes and underscores.", isAlphaDash))
	r.Register("lowercase", caseRule("lowercase", "The %{attribute} must be lowercase.", strings.ToLower))
	r.Register("uppercase", caseRule("uppercase", "The %{attribute} must be uppercase.", strings.ToUpper))
}

// emailRule accepts "email" and "email:strict"; strict additionally rejects
// dot-atom violations in the local part and single-label domains.
func emailRule(c Call) Rule {
	strict := slices.Contains(c.Token.Params, "strict")
	return c.Rule(
		func() bool {
			s, ok := c.Value.(string)
			return ok && isEmail(s, strict)
		},
		"email",
		"The %{attribute} must be a valid email address.",
	)
}

func isEmail(value string, strict bool) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	if !strict {
		return true
	}

	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

func urlRule(c Call) Rule {
	return c.Rule(
		func() bool {
			s, ok := c.Value.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return false
			}
			u, err := url.ParseRequestURI(s)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return false
			}
			if len(c.Token.Params) > 0 {
				return slices.Contains(c.Token.Params, u.Scheme)
			}
			return true
		},
		"url",
		"The %{attribute} must be a valid URL.",
	)
}

func ipRule(name, what string, accept func(net.IP) bool) TokenFunc {
	return func(c Call) Rule {
		return c.Rule(
			func() bool {
				s, ok := c.Value.(string)
				if !ok {
					return false
				}
				ip := net.ParseIP(strings.TrimSpace(s))
				return ip != nil && accept(ip)
			},
			name,
			"The %{attribute} must be "+what+".",
		)
	}
}

func macRule(c Call) Rule {
	return c.Rule(
		func() bool {
			s, ok := c.Value.(string)
			if !ok {
				return false
			}
			_, err := net.ParseMAC(s)
			return err == nil
		},
		"mac_address",
		"The %{attribute} must be a valid MAC address.",
	)
}

// uuidRule checks the canonical 36-char form before parsing; uuid.Parse also
// accepts braced and URN forms which are not wanted here.
func uuidRule(c Call) Rule {
	return c.Rule(
		func() bool {
			s, ok := c.Value.(string)
			if !ok || len(s) != 36 {
				return false
			}
			if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
				return false
			}
			_, err := uuid.Parse(s)
			return err == nil
		},
		"uuid",
		"The %{attribute} must be a valid UUID.",
	)
}

func jsonRule(c Call) Rule {
	return c.Rule(
		func() bool {
			switch v := c.Value.(type) {
			case string:
				return gjson.Valid(v)
			case []byte:
				return gjson.ValidBytes(v)
			}
			return false
		},
		"json",
		"The %{attribute} must be a valid JSON string.",
	)
}

func charsetRule(name, tmpl string, accept func(rune) bool) TokenFunc {
	return func(c Call) Rule {
		return c.Rule(
			func() bool {
				s := toText(c.Value)
				if s == "" {
					return false
				}
				for _, r := range s {
					if !accept(r) {
						return false
					}
				}
				return true
			},
			name,
			tmpl,
		)
	}
}

func isAlpha(r rune) bool     { return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r) }
func isAlphaNum(r rune) bool  { return isAlpha(r) || unicode.IsNumber(r) }
func isAlphaDash(r rune) bool { return isAlphaNum(r) || r == '-' || r == '_' }

func caseRule(name, tmpl string, conv func(string) string) TokenFunc {
	return func(c Call) Rule {
		return c.Rule(
			func() bool {
				s, ok := c.Value.(string)
				return ok && conv(s) == s
			},
			name,
			tmpl,
		)
	}
}
