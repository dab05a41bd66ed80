package i18n

import "context"

type localeContextKey struct{}

// WithLocale stores the locale in the context.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// LocaleFromContext returns the locale stored in ctx and whether one was set.
func LocaleFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	locale, ok := ctx.Value(localeContextKey{}).(string)
	return locale, ok && locale != ""
}
