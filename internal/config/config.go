package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete splitter configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Split    SplitConfig    `yaml:"split"`
	Assembly AssemblyConfig `yaml:"assembly"`
	Batch    BatchConfig    `yaml:"batch"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PathsConfig contains the input and output locations.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
}

// SplitConfig contains the silence-segmentation and quiet-point-split
// parameters.
type SplitConfig struct {
	MinSilenceLen int     `yaml:"min_silence_len"` // ms
	SilenceThresh float64 `yaml:"silence_thresh"`  // dBFS
	FadeMs        int     `yaml:"fade_ms"`
	SearchRangeMs int     `yaml:"search_range_ms"`
	SearchStepMs  int     `yaml:"search_step_ms"`
}

// AssemblyConfig contains the chunk-assembly parameters.
type AssemblyConfig struct {
	MinSec      float64 `yaml:"min_sec"`
	MaxSec      float64 `yaml:"max_sec"`
	IdealPadSec float64 `yaml:"ideal_pad_sec"`
	GapMs       int     `yaml:"gap_ms"`
}

// BatchConfig contains the file-level scheduler parameters.
type BatchConfig struct {
	Workers int `yaml:"workers"` // 0 sizes the pool to available CPUs
}

// MetricsConfig contains the optional Prometheus endpoint configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the configuration used when no config file is given.
// The silence threshold matches the flag-driven entry point; the
// interactive command applies its own -60 dBFS default on top.
func Default() *Config {
	return &Config{
		Split: SplitConfig{
			MinSilenceLen: 300,
			SilenceThresh: -40,
			FadeMs:        10,
			SearchRangeMs: 1000,
			SearchStepMs:  50,
		},
		Assembly: AssemblyConfig{
			MinSec:      1,
			MaxSec:      5,
			IdealPadSec: 4,
			GapMs:       100,
		},
		Batch: BatchConfig{
			Workers: 0,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: "0.0.0.0",
			Port:    9090,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// Load reads and parses the configuration file, layering it over the
// defaults so partial files stay valid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate performs validation of the full configuration.
func (c *Config) Validate() error {
	if err := c.Paths.Validate(); err != nil {
		return fmt.Errorf("paths config: %w", err)
	}

	if err := c.Split.Validate(); err != nil {
		return fmt.Errorf("split config: %w", err)
	}

	if err := c.Assembly.Validate(); err != nil {
		return fmt.Errorf("assembly config: %w", err)
	}

	if err := c.Batch.Validate(); err != nil {
		return fmt.Errorf("batch config: %w", err)
	}

	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates the input and output locations.
func (p *PathsConfig) Validate() error {
	if p.InputDir == "" {
		return fmt.Errorf("input_dir cannot be empty")
	}

	if p.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	return nil
}

// Validate validates the segmentation parameters.
func (s *SplitConfig) Validate() error {
	if s.MinSilenceLen < 1 {
		return fmt.Errorf("min_silence_len must be at least 1 ms, got %d", s.MinSilenceLen)
	}

	if s.SilenceThresh >= 0 {
		return fmt.Errorf("silence_thresh must be below 0 dBFS, got %g", s.SilenceThresh)
	}

	if s.FadeMs < 0 {
		return fmt.Errorf("fade_ms cannot be negative, got %d", s.FadeMs)
	}

	if s.SearchRangeMs < 1 {
		return fmt.Errorf("search_range_ms must be at least 1, got %d", s.SearchRangeMs)
	}

	if s.SearchStepMs < 1 || s.SearchStepMs > s.SearchRangeMs {
		return fmt.Errorf("search_step_ms must be between 1 and search_range_ms (%d), got %d",
			s.SearchRangeMs, s.SearchStepMs)
	}

	return nil
}

// Validate validates the assembly parameters.
func (a *AssemblyConfig) Validate() error {
	if a.MinSec <= 0 {
		return fmt.Errorf("min_sec must be positive, got %g", a.MinSec)
	}

	if a.MaxSec <= a.MinSec {
		return fmt.Errorf("max_sec (%g) must be greater than min_sec (%g)", a.MaxSec, a.MinSec)
	}

	if a.IdealPadSec < a.MinSec {
		return fmt.Errorf("ideal_pad_sec (%g) must be at least min_sec (%g)", a.IdealPadSec, a.MinSec)
	}

	if a.GapMs < 0 {
		return fmt.Errorf("gap_ms cannot be negative, got %d", a.GapMs)
	}

	return nil
}

// Validate validates the scheduler parameters.
func (b *BatchConfig) Validate() error {
	if b.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", b.Workers)
	}

	return nil
}

// Validate validates the metrics endpoint configuration.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.Port < 1 || m.Port > 65535 {
			return fmt.Errorf("port must be between 1 and 65535, got %d", m.Port)
		}

		if m.Address == "" {
			return fmt.Errorf("address cannot be empty when metrics are enabled")
		}
	}

	return nil
}

// Validate validates logging configuration.
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	return nil
}

// MinChunkMS returns the minimum chunk duration in milliseconds.
func (a *AssemblyConfig) MinChunkMS() int {
	return int(a.MinSec * 1000)
}

// MaxChunkMS returns the maximum chunk duration in milliseconds.
func (a *AssemblyConfig) MaxChunkMS() int {
	return int(a.MaxSec * 1000)
}

// PadTargetMS returns the padding target in milliseconds.
func (a *AssemblyConfig) PadTargetMS() int {
	return int(a.IdealPadSec * 1000)
}
