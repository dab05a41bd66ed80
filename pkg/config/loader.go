package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load on first use when present.
const DefaultEnvFile = ".env"

type cache struct {
	mu     sync.Mutex
	values map[string]any
}

var (
	store            = &cache{values: make(map[string]any)}
	defaultEnvLoaded sync.Once
)

// Option tunes a single Load call.
type Option func(*options)

type options struct {
	prefix  string
	noCache bool
}

// WithPrefix prepends prefix to every env tag of the target struct.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithoutCache parses the environment even when a cached value exists and
// leaves the cache untouched.
func WithoutCache() Option {
	return func(o *options) { o.noCache = true }
}

// Load fills v from the environment using its env struct tags.
// The first successful result per type and prefix is cached.
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		if _, err := os.Stat(DefaultEnvFile); err == nil {
			_ = godotenv.Load(DefaultEnvFile)
		}
	})

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	key := cacheKey[T](o.prefix)
	if !o.noCache {
		store.mu.Lock()
		defer store.mu.Unlock()
		if cached, ok := store.values[key]; ok {
			*v = cached.(T)
			return nil
		}
	}

	var parsed T
	if err := env.ParseWithOptions(&parsed, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if !o.noCache {
		store.values[key] = parsed
	}
	*v = parsed
	return nil
}

// MustLoad is Load that panics on failure.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv loads the given .env files into the process environment. Earlier
// files win over later ones and existing variables are kept. With no paths
// the default .env is loaded if it exists.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		paths = []string{DefaultEnvFile}
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

// Reset empties the cache so the next Load parses the environment again.
func Reset() {
	store.mu.Lock()
	defer store.mu.Unlock()
	clear(store.values)
}

func cacheKey[T any](prefix string) string {
	return reflect.TypeFor[T]().String() + "|" + prefix
}
