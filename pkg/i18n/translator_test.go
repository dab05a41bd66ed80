package i18n_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulebuilder/pkg/i18n"
	"github.com/dmitrymomot/rulebuilder/pkg/logger"
)

func newMapTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()

	tr, err := i18n.New(context.Background(), i18n.MapSource{
		"en": {
			"validation": map[string]any{
				"required": "The %{attribute} field is required.",
				"min": map[string]any{
					"string": "The %{attribute} must be at least %{min} characters.",
				},
			},
			"flat.key": "Flat %{value}",
		},
		"pt_BR": {
			"validation": map[string]any{
				"required": "O campo %{attribute} é obrigatório.",
			},
		},
	}, opts...)
	require.NoError(t, err)
	return tr
}

func TestTranslator_T(t *testing.T) {
	tr := newMapTranslator(t)

	t.Run("renders nested key with params", func(t *testing.T) {
		msg := tr.T("en", "validation.min.string", "attribute", "title", "min", "5")
		assert.Equal(t, "The title must be at least 5 characters.", msg)
	})

	t.Run("renders flat dotted key", func(t *testing.T) {
		assert.Equal(t, "Flat yes", tr.T("en", "flat.key", "value", "yes"))
	})

	t.Run("ignores unpaired trailing arg", func(t *testing.T) {
		assert.Equal(t, "The name field is required.", tr.T("en", "validation.required", "attribute", "name", "dangling"))
	})

	t.Run("keeps unknown placeholders", func(t *testing.T) {
		assert.Equal(t, "The %{attribute} field is required.", tr.T("en", "validation.required"))
	})

	t.Run("falls back to base language", func(t *testing.T) {
		assert.Equal(t, "The name field is required.", tr.T("en-GB", "validation.required", "attribute", "name"))
	})

	t.Run("normalizes language codes", func(t *testing.T) {
		assert.Equal(t, "O campo nome é obrigatório.", tr.T("pt-br", "validation.required", "attribute", "nome"))
	})

	t.Run("falls back to key", func(t *testing.T) {
		assert.Equal(t, "validation.unknown", tr.T("en", "validation.unknown"))
		assert.Equal(t, "validation.required", tr.T("ja", "validation.required"))
	})

	t.Run("non-string node is not a translation", func(t *testing.T) {
		assert.Equal(t, "validation.min", tr.T("en", "validation.min"))
	})
}

func TestTranslator_NoFallbackToKey(t *testing.T) {
	tr := newMapTranslator(t, i18n.WithFallbackToKey(false))
	assert.Empty(t, tr.T("en", "missing.key"))
}

func TestTranslator_MissingTranslationsLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithTextFormatter())

	t.Run("disabled by default", func(t *testing.T) {
		tr := newMapTranslator(t, i18n.WithLogger(log))
		tr.T("en", "missing.key")
		assert.Empty(t, buf.String())
	})

	t.Run("warns when enabled", func(t *testing.T) {
		buf.Reset()
		tr := newMapTranslator(t, i18n.WithLogger(log), i18n.WithMissingTranslationsLogging(true))
		tr.T("en", "missing.key")
		tr.T("en", "validation.required")

		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, `msg="translation not found"`)
		assert.Contains(t, out, "locale=en")
		assert.Contains(t, out, "key=missing.key")
		assert.NotContains(t, out, "validation.required")
	})
}

func TestTranslator_HasTranslation(t *testing.T) {
	tr := newMapTranslator(t)

	assert.True(t, tr.HasTranslation("en", "validation.required"))
	assert.True(t, tr.HasTranslation("en-US", "validation.min.string"))
	assert.False(t, tr.HasTranslation("en", "validation.min"))
	assert.False(t, tr.HasTranslation("de", "validation.required"))
	assert.False(t, tr.HasTranslation("en", "The name field is required."))
}

func TestTranslator_Languages(t *testing.T) {
	tr := newMapTranslator(t)
	assert.Equal(t, []string{"en", "pt-BR"}, tr.Languages())
}

func TestTranslator_Merge(t *testing.T) {
	tr := newMapTranslator(t)

	tr.Merge("en", map[string]any{
		"validation": map[string]any{"email": "The %{attribute} must be a valid email address."},
	})
	tr.Merge("de", map[string]any{"validation": map[string]any{"required": "Pflichtfeld"}})

	assert.Equal(t, "The email must be a valid email address.", tr.T("en", "validation.email", "attribute", "email"))
	assert.True(t, tr.HasTranslation("en", "validation.required"), "merge must keep sibling keys")
	assert.Equal(t, "Pflichtfeld", tr.T("de", "validation.required"))
}

func TestTranslator_Tc(t *testing.T) {
	tr := newMapTranslator(t, i18n.WithDefaultLanguage("pt-BR"))

	ctx := i18n.WithLocale(context.Background(), "en")
	assert.Equal(t, "The name field is required.", tr.Tc(ctx, "validation.required", "attribute", "name"))
	assert.Equal(t, "O campo nome é obrigatório.", tr.Tc(context.Background(), "validation.required", "attribute", "nome"))
}

func TestNew_Errors(t *testing.T) {
	t.Run("nil source", func(t *testing.T) {
		_, err := i18n.New(context.Background(), nil)
		require.ErrorIs(t, err, i18n.ErrNilSource)
	})

	t.Run("empty language code", func(t *testing.T) {
		_, err := i18n.New(context.Background(), i18n.MapSource{" ": {"a": "b"}})
		require.ErrorIs(t, err, i18n.ErrEmptyLanguageCode)
	})

	t.Run("nil entries", func(t *testing.T) {
		_, err := i18n.New(context.Background(), i18n.MapSource{"en": nil})
		require.ErrorIs(t, err, i18n.ErrInvalidCatalog)
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want, base string
	}{
		{"en", "en", "en"},
		{"EN", "en", "en"},
		{"en_us", "en-US", "en"},
		{"pt-br", "pt-BR", "pt"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.Normalize(tt.in))
			if tt.in != "" {
				assert.Equal(t, tt.base, i18n.Base(tt.in))
			}
		})
	}
}

func TestInterpolate(t *testing.T) {
	assert.Equal(t, "a 1 b %{missing}", i18n.Interpolate("a %{x} b %{missing}", map[string]string{"x": "1"}))
	assert.Equal(t, "plain", i18n.Interpolate("plain", nil))
}
