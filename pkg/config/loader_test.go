package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulebuilder/pkg/config"
)

type engineSettings struct {
	Locale string `env:"LOCALE" envDefault:"en"`
	Strict bool   `env:"STRICT" envDefault:"false"`
	Depth  int    `env:"DEPTH" envDefault:"3"`
}

type requiredSettings struct {
	Path string `env:"RULECHECK_REQUIRED_PATH,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.Reset()

		var cfg engineSettings
		require.NoError(t, config.Load(&cfg, config.WithPrefix("CFGTEST_DEFAULTS_")))
		assert.Equal(t, "en", cfg.Locale)
		assert.False(t, cfg.Strict)
		assert.Equal(t, 3, cfg.Depth)
	})

	t.Run("prefixed values", func(t *testing.T) {
		config.Reset()
		t.Setenv("CFGTEST_VALUES_LOCALE", "fr")
		t.Setenv("CFGTEST_VALUES_STRICT", "true")
		t.Setenv("CFGTEST_VALUES_DEPTH", "7")

		var cfg engineSettings
		require.NoError(t, config.Load(&cfg, config.WithPrefix("CFGTEST_VALUES_")))
		assert.Equal(t, engineSettings{Locale: "fr", Strict: true, Depth: 7}, cfg)
	})

	t.Run("cached per prefix", func(t *testing.T) {
		config.Reset()
		t.Setenv("CFGTEST_CACHE_LOCALE", "de")

		var first engineSettings
		require.NoError(t, config.Load(&first, config.WithPrefix("CFGTEST_CACHE_")))

		t.Setenv("CFGTEST_CACHE_LOCALE", "es")
		var second engineSettings
		require.NoError(t, config.Load(&second, config.WithPrefix("CFGTEST_CACHE_")))
		assert.Equal(t, "de", second.Locale)

		var fresh engineSettings
		require.NoError(t, config.Load(&fresh, config.WithPrefix("CFGTEST_CACHE_"), config.WithoutCache()))
		assert.Equal(t, "es", fresh.Locale)

		config.Reset()
		var reloaded engineSettings
		require.NoError(t, config.Load(&reloaded, config.WithPrefix("CFGTEST_CACHE_")))
		assert.Equal(t, "es", reloaded.Locale)
	})

	t.Run("missing required", func(t *testing.T) {
		config.Reset()
		os.Unsetenv("RULECHECK_REQUIRED_PATH")

		var cfg requiredSettings
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *engineSettings
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	config.Reset()
	os.Unsetenv("RULECHECK_REQUIRED_PATH")

	var cfg requiredSettings
	assert.Panics(t, func() { config.MustLoad(&cfg) })

	var ok engineSettings
	assert.NotPanics(t, func() { config.MustLoad(&ok, config.WithPrefix("CFGTEST_MUST_")) })
}
