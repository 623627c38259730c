package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ConfigurationError is fatal: a process with broken thresholds or
// capital settings must never start the pipeline.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Field, e.Reason)
}

// Load reads one yaml config file into an immutable snapshot, fills
// defaults and validates it. Any validation failure surfaces as a
// *ConfigurationError.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, &ConfigurationError{Field: "path", Reason: "config path cannot be empty"}
	}
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	cfg.applyDefaults()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration, already validated.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
