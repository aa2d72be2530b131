// Package config provides configuration loading and management for
// cavityscan. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Scan parameters
	Scan struct {
		// Rays is the number of evenly spaced rays cast per layer
		Rays int `yaml:"rays"`

		// MaxSkip is the consecutive out-of-range tolerance of a ray march
		MaxSkip int `yaml:"maxSkip"`

		// ToleranceUp widens the probe acceptance interval above the seed value
		ToleranceUp float64 `yaml:"toleranceUp"`

		// ToleranceDown widens the probe acceptance interval below the seed value
		ToleranceDown float64 `yaml:"toleranceDown"`

		// StopOnMiss terminates a traversal direction at the first
		// out-of-range layer instead of carrying the center forward
		StopOnMiss bool `yaml:"stopOnMiss"`

		// Workers bounds the parallelism of the volume reduction
		Workers int `yaml:"workers"`
	} `yaml:"scan"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`

		// RecordDebugPoints enables raw boundary-hit recording in the
		// accumulator for diagnostic runs
		RecordDebugPoints bool `yaml:"recordDebugPoints"`
	} `yaml:"output"`

	// Phantom parameters for the built-in demo volume
	Phantom struct {
		// Width, Height and Depth are the demo grid dimensions in voxels
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
		Depth  int `yaml:"depth"`

		// Radius is the demo cylinder radius in voxels
		Radius int `yaml:"radius"`

		// InsideDensity and OutsideDensity are the two demo density levels
		InsideDensity  uint16 `yaml:"insideDensity"`
		OutsideDensity uint16 `yaml:"outsideDensity"`
	} `yaml:"phantom"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default scan parameters
	cfg.Scan.Rays = 360
	cfg.Scan.MaxSkip = 6
	cfg.Scan.ToleranceUp = 5.0
	cfg.Scan.ToleranceDown = 5.0
	cfg.Scan.StopOnMiss = false
	cfg.Scan.Workers = runtime.NumCPU() // Use all available cores by default

	// Set default output parameters
	cfg.Output.Verbose = true
	cfg.Output.RecordDebugPoints = false

	// Set default phantom parameters
	cfg.Phantom.Width = 128
	cfg.Phantom.Height = 128
	cfg.Phantom.Depth = 64
	cfg.Phantom.Radius = 30
	cfg.Phantom.InsideDensity = 100
	cfg.Phantom.OutsideDensity = 1000

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
