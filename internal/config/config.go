package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultBatchSize is the per-file record limit for batched ads
// output. Earlier revisions of the conversion tooling disagreed on the
// value (100 vs 10); this constant is the single source of truth, and
// operators can override it per run.
const DefaultBatchSize = 100

// Config represents the top-level payoutconv.yaml configuration.
type Config struct {
	Conversion ConversionConfig `yaml:"conversion"`
	Log        LogConfig        `yaml:"log"`
}

// ConversionConfig controls the conversion pipeline.
type ConversionConfig struct {
	// BatchSize is the maximum records per batched output file.
	BatchSize int `yaml:"batch_size"`
	// Rounding is the rule for providers that require fixed-precision
	// amounts: "half-even" or "half-up".
	Rounding string `yaml:"rounding"`
}

// LogConfig controls console logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a payoutconv.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Conversion.BatchSize == 0 {
		cfg.Conversion.BatchSize = DefaultBatchSize
	}
	if cfg.Conversion.BatchSize < 0 {
		return nil, fmt.Errorf("batch_size must be positive, got %d", cfg.Conversion.BatchSize)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration used when no payoutconv.yaml is
// present.
func Default() *Config {
	return &Config{
		Conversion: ConversionConfig{
			BatchSize: DefaultBatchSize,
			Rounding:  "half-even",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
