// Package config loads typed settings from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct parsing. Each (type, prefix) pair is
// parsed once and served from an in-process cache afterwards; Reset drops
// the cache, which is mostly useful in tests.
//
// # Usage
//
//	type Settings struct {
//	    Locale string `env:"LOCALE" envDefault:"en"`
//	    Strict bool   `env:"STRICT"`
//	}
//
//	if err := config.LoadEnv("./.env.local"); err != nil {
//	    log.Fatal(err)
//	}
//
//	var s Settings
//	if err := config.Load(&s, config.WithPrefix("VALIDATION_")); err != nil {
//	    log.Fatal(err)
//	}
//
// Load reads the default .env file on first use when it exists. Variables
// already present in the process environment are never overwritten.
package config
