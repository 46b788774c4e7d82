package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/core/config"
)

// Each test uses its own config type because the cache is keyed by type and
// shared across the package.

func TestLoad(t *testing.T) {
	type serverConfig struct {
		Host string `env:"TEST_CONFIG_HOST" envDefault:"localhost"`
		Port int    `env:"TEST_CONFIG_PORT" envDefault:"8080"`
	}

	t.Setenv("TEST_CONFIG_HOST", "example.com")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "example.com", cfg.Host)
	assert.Equal(t, 8080, cfg.Port, "default applies when the variable is unset")
}

func TestLoad_CachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CONFIG_CACHED" envDefault:"first"`
	}

	t.Setenv("TEST_CONFIG_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	// The environment changes but the cached value wins.
	t.Setenv("TEST_CONFIG_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second)
	assert.Equal(t, "first", second.Value)
}

func TestLoad_RequiredMissing(t *testing.T) {
	type strictConfig struct {
		Secret string `env:"TEST_CONFIG_ABSENT_SECRET,required"`
	}

	var cfg strictConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_CONFIG_ABSENT_SECRET")
}

func TestLoad_NilTarget(t *testing.T) {
	var cfg *struct{}
	assert.Error(t, config.Load(cfg))
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	type panicConfig struct {
		Token string `env:"TEST_CONFIG_ABSENT_TOKEN,required"`
	}

	assert.Panics(t, func() {
		var cfg panicConfig
		config.MustLoad(&cfg)
	})
}
