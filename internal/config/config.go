package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete patrol configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Enumerator EnumeratorConfig `mapstructure:"enumerator"`
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Render     RenderConfig     `mapstructure:"render"`
}

// LogConfig controls the process logger
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format is text or json
	Format string `mapstructure:"format"`
}

// EnumeratorConfig controls the obstruction search
type EnumeratorConfig struct {
	// Strategy is "path" (only cells on the unobstructed route) or "brute"
	// (every open cell). Both yield the same count.
	Strategy string `mapstructure:"strategy"`
	// Workers caps parallel trials; 0 uses GOMAXPROCS
	Workers int `mapstructure:"workers"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
}

// StorageConfig controls where saved reports live
type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

// RenderConfig controls map drawing
type RenderConfig struct {
	// Color is auto, always or never
	Color string `mapstructure:"color"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Enumerator: EnumeratorConfig{
			Strategy: "path",
			Workers:  0,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
		},
		Storage: StorageConfig{
			Dir: "./data",
		},
		Render: RenderConfig{
			Color: "auto",
		},
	}
}

// SetDefaults registers every default with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.format", defaults.Log.Format)

	viper.SetDefault("enumerator.strategy", defaults.Enumerator.Strategy)
	viper.SetDefault("enumerator.workers", defaults.Enumerator.Workers)

	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.read_header_timeout", defaults.Server.ReadHeaderTimeout)

	viper.SetDefault("storage.dir", defaults.Storage.Dir)

	viper.SetDefault("render.color", defaults.Render.Color)
}

// Load unmarshals and validates the current viper state
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "patrol")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".patrol"
	}
	return filepath.Join(home, ".config", "patrol")
}
