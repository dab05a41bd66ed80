package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrymomot/rulebuilder/pkg/logger"
)

// Translator renders catalog entries for a language.
type Translator struct {
	mu            sync.RWMutex
	catalog       map[string]map[string]any
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger
}

// New loads the catalog from src and returns a ready Translator.
func New(ctx context.Context, src Source, opts ...Option) (*Translator, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	catalog, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	normalized := make(map[string]map[string]any, len(catalog))
	for lang, entries := range catalog {
		if strings.TrimSpace(lang) == "" {
			return nil, ErrEmptyLanguageCode
		}
		if entries == nil {
			return nil, fmt.Errorf("%w: nil entries for %q", ErrInvalidCatalog, lang)
		}
		normalized[Normalize(lang)] = entries
	}
	t.catalog = normalized

	t.logger.DebugContext(ctx, "translations loaded", slog.Any("languages", t.languages()))
	return t, nil
}

// Languages returns the sorted list of languages with a catalog.
func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.languages()
}

func (t *Translator) languages() []string {
	langs := make([]string, 0, len(t.catalog))
	for lang := range t.catalog {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Merge adds entries for lang. Nested maps are merged, leaves are overridden.
func (t *Translator) Merge(lang string, entries map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	lang = Normalize(lang)
	if t.catalog[lang] == nil {
		t.catalog[lang] = make(map[string]any, len(entries))
	}
	deepMerge(t.catalog[lang], entries)
}

// HasTranslation reports whether key resolves to a string for lang or its base language.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.lookup(lang, key)
	return ok
}

// T renders key for lang, substituting %{name} placeholders from args given
// as name, value pairs. A trailing unpaired arg is ignored.
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	tmpl, ok := t.lookup(lang, key)
	t.mu.RUnlock()

	if !ok {
		if t.logMissing {
			t.logger.Warn("translation not found", logger.Locale(lang), slog.String("key", key))
		}
		if !t.fallbackToKey {
			return ""
		}
		tmpl = key
	}

	return Interpolate(tmpl, pairs(args))
}

// Tc is T with the language taken from ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	lang, ok := LocaleFromContext(ctx)
	if !ok {
		lang = t.defaultLang
	}
	return t.T(lang, key, args...)
}

// lookup resolves key in lang, then in the base language of lang.
func (t *Translator) lookup(lang, key string) (string, bool) {
	lang = Normalize(lang)
	candidates := []string{lang}
	if base := Base(lang); base != lang {
		candidates = append(candidates, base)
	}

	for _, l := range candidates {
		entries, ok := t.catalog[l]
		if !ok {
			continue
		}
		if s, ok := resolve(entries, key); ok {
			return s, true
		}
	}
	return "", false
}

// resolve walks nested maps using dot-separated keys. A literal key
// containing dots is tried first so flat catalogs work too.
func resolve(m map[string]any, key string) (string, bool) {
	if v, ok := m[key]; ok {
		s, ok := v.(string)
		return s, ok
	}

	var current any = m
	for part := range strings.SplitSeq(key, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return "", false
			}
			current = next
		case map[any]any:
			next, ok := node[part]
			if !ok {
				return "", false
			}
			current = next
		default:
			return "", false
		}
	}

	switch v := current.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

func pairs(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

var placeholderRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Interpolate replaces %{name} placeholders with values from params.
// Unknown placeholders are left untouched.
func Interpolate(tmpl string, params map[string]string) string {
	if !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := params[match[2:len(match)-1]]; ok {
			return v
		}
		return match
	})
}
