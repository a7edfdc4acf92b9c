// Package config fills struct fields from environment variables using
// caarlos0/env tags. A .env file in the working directory, if present, is
// loaded once before the first parse.
//
//	type LoginConfig struct {
//		URL     string        `env:"LOGIN_URL" envDefault:"http://localhost:8080/login"`
//		Timeout time.Duration `env:"LOGIN_TIMEOUT" envDefault:"10s"`
//	}
//
//	var lc LoginConfig
//	if err := config.Load(&lc); err != nil {
//		return err
//	}
//
// The parsed value is cached per type, so later Load calls for the same type
// copy the first result without reading the environment again. Reset drops
// the cache.
package config
