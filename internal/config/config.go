// Package config loads the optional YAML configuration file that overrides
// external tool commands and a handful of tunables. It follows the
// teacher's config package almost exactly: Unmarshal pre-populates
// defaults, LoadFile wraps I/O and parse errors with context,
// and validate() runs once after parsing.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// DefaultMaxConsecutivePatches is the patch-chain bound of spec.md §4.1.
const DefaultMaxConsecutivePatches = 7

// DefaultPreviewMaxDimension is the downscale-only bound of spec.md §4.4.
const DefaultPreviewMaxDimension = 1024

// Config holds the tool overrides and tunables described in SPEC_FULL.md §6.
type Config struct {
	// XDelta3Command overrides the external binary-delta tool invocation,
	// e.g. "xdelta3" or "xdelta3 -q" (tokenised with shlex before exec).
	XDelta3Command string `yaml:"xdelta3_command"`

	// ImageMagickCommand overrides the external image-processing tool
	// invocation, e.g. "magick" or "/opt/imagemagick/bin/convert".
	ImageMagickCommand string `yaml:"imagemagick_command"`

	// MaxConsecutivePatches bounds the patch chain (spec.md §4.1).
	MaxConsecutivePatches int `yaml:"max_consecutive_patches"`

	// PreviewMaxDimension bounds the preview's longest edge in pixels.
	PreviewMaxDimension int `yaml:"preview_max_dimension"`
}

// Unmarshal parses config with defaults pre-populated, matching the
// teacher's Unmarshal function.
func Unmarshal(data []byte) (*Config, error) {
	cfg := &Config{
		XDelta3Command:        "xdelta3",
		ImageMagickCommand:    "magick",
		MaxConsecutivePatches: DefaultMaxConsecutivePatches,
		PreviewMaxDimension:   DefaultPreviewMaxDimension,
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration that applies when no config file is
// present.
func Default() *Config {
	cfg, err := Unmarshal(nil)
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadFile loads and parses a YAML config file.
func LoadFile(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	cfg, err := Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxConsecutivePatches < 1 {
		return fmt.Errorf("max_consecutive_patches must be at least 1, got %d", c.MaxConsecutivePatches)
	}
	if c.PreviewMaxDimension < 1 {
		return fmt.Errorf("preview_max_dimension must be at least 1, got %d", c.PreviewMaxDimension)
	}
	if c.XDelta3Command == "" {
		return fmt.Errorf("xdelta3_command must not be empty")
	}
	if c.ImageMagickCommand == "" {
		return fmt.Errorf("imagemagick_command must not be empty")
	}
	return nil
}
