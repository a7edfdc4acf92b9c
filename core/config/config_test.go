package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftkerja/shiftclient/core/config"
)

type loginConfig struct {
	URL     string        `env:"CFGTEST_LOGIN_URL" envDefault:"http://localhost:8080/login"`
	Timeout time.Duration `env:"CFGTEST_LOGIN_TIMEOUT" envDefault:"10s"`
}

type requiredConfig struct {
	Secret string `env:"CFGTEST_REQUIRED_SECRET,required"`
}

type cachedConfig struct {
	Name string `env:"CFGTEST_CACHED_NAME" envDefault:"first"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults and environment", func(t *testing.T) {
		t.Setenv("CFGTEST_LOGIN_TIMEOUT", "3s")
		config.Reset()

		var cfg loginConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "http://localhost:8080/login", cfg.URL)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
	})

	t.Run("missing required variable", func(t *testing.T) {
		config.Reset()

		var cfg requiredConfig
		err := config.Load(&cfg)

		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParse)
	})

	t.Run("caches per type", func(t *testing.T) {
		config.Reset()

		t.Setenv("CFGTEST_CACHED_NAME", "first")
		var a cachedConfig
		require.NoError(t, config.Load(&a))

		t.Setenv("CFGTEST_CACHED_NAME", "second")
		var b cachedConfig
		require.NoError(t, config.Load(&b))

		assert.Equal(t, "first", b.Name)

		config.Reset()
		var c cachedConfig
		require.NoError(t, config.Load(&c))
		assert.Equal(t, "second", c.Name)
	})
}

func TestMustLoad(t *testing.T) {
	config.Reset()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
