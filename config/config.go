// Package config loads the settings shared by every component from
// defaults, a TOML file and FLYWEIGHT_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-flyweight/cache"
	"github.com/goliatone/go-flyweight/internal/logging"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "FLYWEIGHT_"

// Settings groups component configuration.
type Settings struct {
	Cache   cache.Config   `toml:"cache" envPrefix:"CACHE_"`
	Log     logging.Config `toml:"log" envPrefix:"LOG_"`
	Metrics Metrics        `toml:"metrics" envPrefix:"METRICS_"`
}

// Metrics toggles prometheus collectors.
type Metrics struct {
	Enabled bool `toml:"enabled" env:"ENABLED"`
}

// Default returns settings that pass Validate.
func Default() Settings {
	return Settings{
		Cache: cache.DefaultConfig(),
		Log:   logging.DefaultConfig(),
	}
}

// Validate checks every section.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Cache),
		validation.Field(&s.Log),
	)
}

// FromFile decodes a TOML file over the defaults. Keys that do not map to a
// setting are rejected.
func FromFile(path string) (Settings, error) {
	s := Default()
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("config: unknown keys in %s: %v", path, undecoded)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// FromEnv applies environment variables over base. Files are loaded with
// godotenv first without overriding variables already set; with no files a
// .env in the working directory is used when present.
func FromEnv(base Settings, files ...string) (Settings, error) {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("config: load .env: %w", err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return Settings{}, fmt.Errorf("config: load env files: %w", err)
	}

	s := base
	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return Settings{}, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// Load reads path when it is not empty, then applies the environment.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		var err error
		if s, err = FromFile(path); err != nil {
			return Settings{}, err
		}
	}
	return FromEnv(s)
}
