// Package config loads gateway settings from an optional YAML file,
// falling back to built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level gateway configuration.
type Config struct {
	// Listen is the HTTP listen address, e.g. ":3000".
	Listen string `yaml:"listen"`

	Capture CaptureConfig `yaml:"capture"`
	Stream  StreamConfig  `yaml:"stream"`
}

// CaptureConfig tunes still-image encoding.
type CaptureConfig struct {
	// JPEGQuality applies to on-demand jpg/jpeg stills (1-100).
	JPEGQuality int `yaml:"jpeg_quality"`
}

// StreamConfig tunes live streaming sessions.
type StreamConfig struct {
	// DefaultFPS is used when a start request carries no frame rate.
	DefaultFPS float64 `yaml:"default_fps"`

	// MaxFPS caps requested frame rates. Requests above it are clamped so
	// a pathological rate cannot starve the input-device critical section.
	MaxFPS float64 `yaml:"max_fps"`

	// JPEGQuality applies to streamed frames; lower than still quality
	// since frames are transient.
	JPEGQuality int `yaml:"jpeg_quality"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Listen: ":3000",
		Capture: CaptureConfig{
			JPEGQuality: 85,
		},
		Stream: StreamConfig{
			DefaultFPS:  1,
			MaxFPS:      30,
			JPEGQuality: 60,
		},
	}
}

// Load reads path and overlays it on the defaults. A missing file is not
// an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Listen == "" {
		return fmt.Errorf("config: listen address is empty")
	}
	if c.Capture.JPEGQuality < 1 || c.Capture.JPEGQuality > 100 {
		return fmt.Errorf("config: capture jpeg_quality %d out of range 1-100", c.Capture.JPEGQuality)
	}
	if c.Stream.JPEGQuality < 1 || c.Stream.JPEGQuality > 100 {
		return fmt.Errorf("config: stream jpeg_quality %d out of range 1-100", c.Stream.JPEGQuality)
	}
	if c.Stream.DefaultFPS <= 0 {
		return fmt.Errorf("config: stream default_fps must be positive")
	}
	if c.Stream.MaxFPS < c.Stream.DefaultFPS {
		return fmt.Errorf("config: stream max_fps below default_fps")
	}
	return nil
}
