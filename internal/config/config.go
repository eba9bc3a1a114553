// Package config loads classlens settings from defaults, an optional .env
// file, CLASSLENS_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. CLASSLENS_LOG_LEVEL.
const EnvPrefix = "CLASSLENS"

// Config is the resolved application configuration.
type Config struct {
	Seed    int64         `mapstructure:"seed" validate:"gte=0"`
	Log     LogConfig     `mapstructure:"log"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Chat    ChatConfig    `mapstructure:"chat"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn warning error"`
	File  string `mapstructure:"file"`
}

type CatalogConfig struct {
	// Path overrides the embedded catalog when set.
	Path string `mapstructure:"path"`
}

type ChatConfig struct {
	MinDelay  time.Duration `mapstructure:"min_delay" validate:"gte=0"`
	MaxJitter time.Duration `mapstructure:"max_jitter" validate:"gte=0"`
}

var validate = validator.New()

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("catalog.path", "")
	v.SetDefault("chat.min_delay", time.Second)
	v.SetDefault("chat.max_jitter", time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads path into the process environment. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ResolveSeed returns the configured seed, or one derived from now when
// the seed is zero.
func (c *Config) ResolveSeed(now time.Time) uint64 {
	if c.Seed != 0 {
		return uint64(c.Seed)
	}
	return uint64(now.UnixNano())
}
