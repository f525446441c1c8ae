// Package config loads runtime configuration from the environment.
//
// Runtime knobs only: ports, timeouts, cache tuning, file paths. Domain
// data (patterns, companies, offsets) is declarative JSON loaded through
// the factory, never environment variables.
package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server struct {
		Port            string `env:"PORT" envDefault:"8080"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"15"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"`
	} `envPrefix:"SERVER_"`

	// ConfigPath points at the declarative JSON document. Empty means the
	// built-in presets, which is what dev and demo environments run on.
	ConfigPath string `env:"ENGINE_CONFIG_PATH"`

	Cache struct {
		// Backend selects "memory", "redis" or "none".
		Backend    string `env:"BACKEND" envDefault:"memory"`
		TTLSeconds int    `env:"TTL_SECONDS" envDefault:"3600"`
	} `envPrefix:"CACHE_"`

	Redis struct {
		Addr     string `env:"ADDR" envDefault:"localhost:6379"`
		Password string `env:"PASSWORD"`
		DB       int    `env:"DB" envDefault:"0"`
	} `envPrefix:"REDIS_"`

	Store struct {
		Path string `env:"PATH" envDefault:"engine.db"`
	} `envPrefix:"STORE_"`

	Sweep struct {
		Enabled         bool `env:"ENABLED" envDefault:"true"`
		IntervalSeconds int  `env:"INTERVAL_SECONDS" envDefault:"3600"`
		WindowDays      int  `env:"WINDOW_DAYS" envDefault:"365"`
	} `envPrefix:"SWEEP_"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) {
			// Only the first error keeps startup logs readable.
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	return cfg, nil
}
