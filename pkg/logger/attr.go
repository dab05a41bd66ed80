package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors", keyed by position.
// It returns an empty Attr when every error is nil.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error", or returns an empty Attr for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Attribute records the field under validation. Empty names are dropped.
func Attribute(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("attribute", name)
}

// RuleToken records a rule token such as "max:255". Empty tokens are dropped.
func RuleToken(token string) slog.Attr {
	if token == "" {
		return slog.Attr{}
	}
	return slog.String("rule", token)
}

// Locale records the locale messages are rendered in.
func Locale(locale string) slog.Attr {
	if locale == "" {
		return slog.Attr{}
	}
	return slog.String("locale", locale)
}

// Path records a file or directory path.
func Path(p string) slog.Attr {
	if p == "" {
		return slog.Attr{}
	}
	return slog.String("path", p)
}

// Failures records the number of failed rules of a validation run.
func Failures(n int) slog.Attr {
	return slog.Int("failures", n)
}
