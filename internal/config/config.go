// Package config handles configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

// Output formats understood by the report renderer.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config represents the application configuration
type Config struct {
	// Display is the socket name or path; empty means WAYLAND_DISPLAY.
	Display string `mapstructure:"display"`

	// Roundtrips is how many times the event queue is pumped before the
	// report is taken. Binding needs one, events of bound objects a second.
	Roundtrips int `mapstructure:"roundtrips"`

	// Track lists the interfaces to bind when advertised.
	Track []string `mapstructure:"track"`

	Output string `mapstructure:"output"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Display:    "",
		Roundtrips: 2,
		Track:      []string{"wl_compositor", "wl_shm", "wl_seat", "xdg_wm_base"},
		Output:     OutputText,
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("wlhandle")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "wlhandle"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	viper.SetEnvPrefix("WLHANDLE")
	viper.AutomaticEnv()

	viper.SetDefault("display", DefaultConfig.Display)
	viper.SetDefault("roundtrips", DefaultConfig.Roundtrips)
	viper.SetDefault("track", DefaultConfig.Track)
	viper.SetDefault("output", DefaultConfig.Output)
	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Validate rejects settings the probe cannot run with.
func (c *Config) Validate() error {
	if c.Roundtrips < 1 {
		return fmt.Errorf("roundtrips must be at least 1, got %d", c.Roundtrips)
	}
	if !slices.Contains([]string{OutputText, OutputJSON}, c.Output) {
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Output, OutputText, OutputJSON)
	}
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "wlhandle.toml"
	}
	return filepath.Join(dir, "wlhandle", "wlhandle.toml")
}
