package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SLIDESHOW"

// Config defines the slideshow source folder, timing, and overlay appearance.
type Config struct {
	Dir           string  `mapstructure:"dir"`
	FrameDelay    int     `mapstructure:"delay"`
	ShowSeconds   bool    `mapstructure:"seconds"`
	SortFiles     bool    `mapstructure:"sort"`
	DecodeWorkers int     `mapstructure:"workers"`
	FontSize      float32 `mapstructure:"font_size"`
	Margin        float32 `mapstructure:"margin"`
	LogLevel      string  `mapstructure:"log-level"`
	ConfigFile    string  `mapstructure:"config"`
}

// DefaultConfig returns a configuration reading from ~/Pictures/LaptopSlideshow with sorted file order.
// FrameDelay is left at zero so that the interactive prompt asks for it.
func DefaultConfig() *Config {
	return &Config{
		Dir:           DefaultDir(),
		FrameDelay:    0,
		ShowSeconds:   false,
		SortFiles:     true,
		DecodeWorkers: 4,
		FontSize:      72,
		Margin:        32,
		LogLevel:      "info",
	}
}

// DefaultDir returns the Pictures/LaptopSlideshow folder under the user's home directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Pictures", "LaptopSlideshow")
}

// Parse layers defaults, an optional YAML config file, SLIDESHOW_* environment
// variables and command line flags, in increasing order of precedence.
func Parse(args []string) (*Config, error) {
	def := DefaultConfig()

	fs := pflag.NewFlagSet("laptop-slideshow", pflag.ContinueOnError)
	fs.String("config", "", "Config file location (YAML)")
	fs.String("dir", def.Dir, "Folder containing the slideshow images")
	fs.Int("delay", def.FrameDelay, "Seconds between frames (prompted for when unset)")
	fs.Bool("seconds", def.ShowSeconds, "Show seconds in the clock")
	fs.Bool("sort", def.SortFiles, "Sort images by file name")
	fs.Int("workers", def.DecodeWorkers, "Number of images decoded in parallel at startup")
	fs.String("log-level", def.LogLevel, "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	v := viper.New()
	v.SetDefault("font_size", def.FontSize)
	v.SetDefault("margin", def.Margin)
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// NeedsPrompt reports whether the frame delay still has to be asked for interactively.
func (c *Config) NeedsPrompt() bool {
	return c.FrameDelay == 0
}

// FrameInterval is the period of the advance action.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameDelay) * time.Second
}

// Validate checks values that would otherwise make the scheduler or loader misbehave.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("image directory cannot be empty")
	}
	if c.FrameDelay < 1 {
		return fmt.Errorf("frame delay must be at least 1 second, got %d", c.FrameDelay)
	}
	if c.DecodeWorkers < 1 {
		return fmt.Errorf("decode workers must be at least 1, got %d", c.DecodeWorkers)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.FontSize)
	}
	return nil
}
