package validator

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/rulebuilder/pkg/config"
	"github.com/dmitrymomot/rulebuilder/pkg/i18n"
)

// EnvPrefix is prepended to every Config variable name.
const EnvPrefix = "VALIDATION_"

// Config holds environment driven engine settings.
type Config struct {
	Locale             string `env:"LOCALE" envDefault:"en"`
	Strict             bool   `env:"STRICT" envDefault:"false"`
	StopOnFirstFailure bool   `env:"STOP_ON_FIRST_FAILURE" envDefault:"false"`
	// TranslationsPath is a catalog file or a directory of catalog files.
	TranslationsPath string `env:"TRANSLATIONS_PATH"`
}

// LoadConfig reads Config from VALIDATION_* variables, including those
// loaded from .env files via config.LoadEnv.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFromConfig builds an Engine from cfg. Explicit opts are applied last.
func NewFromConfig(ctx context.Context, cfg Config, opts ...Option) (*Engine, error) {
	base := []Option{
		WithLocale(cfg.Locale),
		WithStrictRules(cfg.Strict),
		WithStopOnFirstFailure(cfg.StopOnFirstFailure),
	}

	if cfg.TranslationsPath != "" {
		src, err := i18n.SourceFor(cfg.TranslationsPath)
		if err != nil {
			return nil, fmt.Errorf("validator: translations: %w", err)
		}
		tr, err := i18n.New(ctx, src, i18n.WithDefaultLanguage(cfg.Locale))
		if err != nil {
			return nil, fmt.Errorf("validator: translations: %w", err)
		}
		base = append(base, WithTranslator(tr))
	}

	return New(append(base, opts...)...), nil
}
