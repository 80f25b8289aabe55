// Package config loads lexisent settings from an optional YAML file with
// LEXISENT_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/japaniel/lexisent/pkg/corpus"
)

// Default file names, relative to the working directory.
const (
	DefaultLexiconPath = "MPQA.csv"
	DefaultOutputPath  = "Sentiments.csv"
)

// Config is the top-level configuration.
type Config struct {
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// LexiconConfig locates the sentiment word list.
type LexiconConfig struct {
	Path string `yaml:"path"`
}

// InputConfig controls how input files are decoded.
type InputConfig struct {
	Encoding string `yaml:"encoding"` // latin1, utf-8 or auto
}

// OutputConfig controls the result sinks.
type OutputConfig struct {
	Path     string `yaml:"path"`
	Metadata bool   `yaml:"metadata"`
	Database string `yaml:"database"` // SQLite archive; empty disables it
}

// AnalysisConfig sizes the worker pool. Zero means one worker per CPU.
type AnalysisConfig struct {
	Workers int `yaml:"workers"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig names the Prometheus textfile written after a run.
type MetricsConfig struct {
	File string `yaml:"file"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if _, err := corpus.ParseEncoding(c.Input.Encoding); err != nil {
		return err
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must not be negative, got %d", c.Analysis.Workers)
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return fmt.Errorf("output.path must be set")
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Encoding: corpus.EncodingLatin1,
		},
		Output: OutputConfig{
			Path: DefaultOutputPath,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnvOverrides reads LEXISENT_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LEXISENT_LEXICON"); v != "" {
		cfg.Lexicon.Path = v
	}
	if v := os.Getenv("LEXISENT_ENCODING"); v != "" {
		cfg.Input.Encoding = v
	}
	if v := os.Getenv("LEXISENT_OUTPUT"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("LEXISENT_OUTPUT_METADATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LEXISENT_OUTPUT_METADATA: %w", err)
		}
		cfg.Output.Metadata = b
	}
	if v := os.Getenv("LEXISENT_DATABASE"); v != "" {
		cfg.Output.Database = v
	}
	if v := os.Getenv("LEXISENT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LEXISENT_WORKERS: %w", err)
		}
		cfg.Analysis.Workers = n
	}
	if v := os.Getenv("LEXISENT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LEXISENT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("LEXISENT_METRICS_FILE"); v != "" {
		cfg.Metrics.File = v
	}
	return nil
}
