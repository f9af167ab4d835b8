package configs

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/RyanBlaney/digit-formants/pkg/audio/analysis"
	"github.com/RyanBlaney/digit-formants/pkg/dataset"
	"github.com/RyanBlaney/digit-formants/pkg/render"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`
	ConfigDir    string `mapstructure:"config_dir"`
	DataDir      string `mapstructure:"data_dir"`

	// Formant analysis parameters
	Analysis analysis.Config `mapstructure:"analysis"`

	// Corpus location and loading
	Dataset DatasetConfig `mapstructure:"dataset"`

	// Time-marked transcripts
	Transcript TranscriptConfig `mapstructure:"transcript"`

	// Figure sizes
	Render render.Config `mapstructure:"render"`

	// Batch job execution
	Batch BatchConfig `mapstructure:"batch"`

	// Metrics emission
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// DatasetConfig contains corpus settings. The corpus root is DataDir.
type DatasetConfig struct {
	AudioDir    string `mapstructure:"audio_dir"`
	Concurrency int    `mapstructure:"concurrency"`
	ContentType string `mapstructure:"content_type"`
}

// TranscriptConfig locates the CTM files
type TranscriptConfig struct {
	Dir   string `mapstructure:"dir"` // defaults to DataDir
	Model string `mapstructure:"model"`
}

// BatchConfig contains batch execution settings
type BatchConfig struct {
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// MetricsConfig contains metric logging settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	LogFile string `mapstructure:"log_file"`
	Prefix  string `mapstructure:"prefix"`
}

var (
	validOutputFormats = []string{"json", "yaml", "csv", "table"}
	validLogLevels     = []string{"debug", "info", "warn", "error"}
)

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.GetViper())
}

// LoadConfigFrom fills unset keys of v with defaults and decodes it
func LoadConfigFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if !slices.Contains(validOutputFormats, strings.ToLower(config.OutputFormat)) {
		return fmt.Errorf("output format must be one of %v, got %q", validOutputFormats, config.OutputFormat)
	}

	if !slices.Contains(validLogLevels, strings.ToLower(config.LogLevel)) {
		return fmt.Errorf("log level must be one of %v, got %q", validLogLevels, config.LogLevel)
	}

	if err := config.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	if config.Dataset.Concurrency <= 0 {
		return fmt.Errorf("dataset concurrency must be positive")
	}

	if config.Transcript.Model == "" {
		return fmt.Errorf("transcript model is required")
	}

	if err := config.Render.Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if config.Batch.MaxConcurrency <= 0 {
		return fmt.Errorf("batch max concurrency must be positive")
	}

	if config.Batch.Timeout < 0 {
		return fmt.Errorf("batch timeout cannot be negative")
	}

	return nil
}

// DatasetSettings builds the dataset config rooted at DataDir
func (c *Config) DatasetSettings() dataset.Config {
	return dataset.Config{
		Root:        c.DataDir,
		AudioDir:    c.Dataset.AudioDir,
		SampleRate:  c.Analysis.SampleRate,
		Concurrency: c.Dataset.Concurrency,
		ContentType: c.Dataset.ContentType,
	}
}

// TranscriptDir is the directory holding the CTM files
func (c *Config) TranscriptDir() string {
	if c.Transcript.Dir != "" {
		return c.Transcript.Dir
	}
	return c.DataDir
}

// LoggingLevel maps LogLevel onto the logger levels. Unknown values fall back
// to info.
func (c *Config) LoggingLevel() logging.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return logging.DebugLevel
	case "warn":
		return logging.WarnLevel
	case "error":
		return logging.ErrorLevel
	default:
		return logging.InfoLevel
	}
}
