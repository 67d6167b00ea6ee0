// Package config loads engine configuration from an optional YAML file
// and LEXIS_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Detectors DetectorsConfig `mapstructure:"detectors"`
	Cache     CacheConfig     `mapstructure:"cache"`
	History   HistoryConfig   `mapstructure:"history"`
	Store     StoreConfig     `mapstructure:"store"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DetectorsConfig configures the external detector adapters. Empty URLs
// disable the corresponding HTTP detector; the pipeline then runs with
// the local fallback from the start.
type DetectorsConfig struct {
	GrammarURL string        `mapstructure:"grammar_url"`
	SpellerURL string        `mapstructure:"speller_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Enabled    bool          `mapstructure:"enabled"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// HistoryConfig tunes historical smoothing.
type HistoryConfig struct {
	// DecayFactor scales the historical weight (0 disables decay).
	DecayFactor float64 `mapstructure:"decay_factor"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads lexis.yaml from the working directory or ~/.config/lexis,
// then applies LEXIS_ environment overrides (LEXIS_DETECTORS_GRAMMAR_URL
// and so on).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("lexis")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/lexis")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("LEXIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration without touching files or
// the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("default config: %v", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("detectors.grammar_url", "")
	v.SetDefault("detectors.speller_url", "")
	v.SetDefault("detectors.timeout", "5s")
	v.SetDefault("detectors.enabled", true)

	v.SetDefault("cache.ttl", "5m")

	v.SetDefault("history.decay_factor", 0.0)

	v.SetDefault("store.path", "lexis.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", true)
}
