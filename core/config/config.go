package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// dotenvOnce applies a .env file from the working directory before the
	// first parse. A missing file is not an error.
	dotenvOnce sync.Once

	// cache holds one parsed value per concrete config type.
	cache sync.Map
)

// Load parses environment variables into cfg. The first call for each
// concrete type reads the environment; subsequent calls for the same type
// return the cached value, so two loads of one type always agree.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config: nil target")
	}

	dotenvOnce.Do(func() { _ = godotenv.Load() })

	key := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	parsed, err := env.ParseAs[T]()
	if err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", key, err)
	}

	actual, _ := cache.LoadOrStore(key, parsed)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on failure. Intended for application startup
// where a missing required variable should stop the process immediately.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
