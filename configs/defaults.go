package configs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/RyanBlaney/digit-formants/pkg/audio/analysis"
	"github.com/RyanBlaney/digit-formants/pkg/dataset"
	"github.com/RyanBlaney/digit-formants/pkg/render"
	"github.com/spf13/viper"
)

// setDefaults sets default configuration values for all components
func setDefaults(v *viper.Viper) {
	// Analysis defaults
	if !v.IsSet("analysis.sample_rate") {
		v.Set("analysis.sample_rate", analysis.DefaultSampleRate)
	}
	if !v.IsSet("analysis.lpc_order") {
		v.Set("analysis.lpc_order", analysis.DefaultLPCOrder)
	}
	if !v.IsSet("analysis.eps") {
		v.Set("analysis.eps", analysis.DefaultEps)
	}
	if !v.IsSet("analysis.pre_emphasis") {
		v.Set("analysis.pre_emphasis", analysis.DefaultPreEmphasis)
	}
	if !v.IsSet("analysis.min_formant_bin") {
		v.Set("analysis.min_formant_bin", analysis.DefaultMinFormantBin)
	}
	if !v.IsSet("analysis.max_formants") {
		v.Set("analysis.max_formants", analysis.DefaultMaxFormants)
	}
	if !v.IsSet("analysis.floor_db") {
		v.Set("analysis.floor_db", analysis.DefaultFloorDB)
	}
	if !v.IsSet("analysis.track_steps") {
		v.Set("analysis.track_steps", analysis.DefaultTrackSteps)
	}

	// Dataset defaults
	if !v.IsSet("dataset.audio_dir") {
		v.Set("dataset.audio_dir", dataset.DefaultAudioDir)
	}
	if !v.IsSet("dataset.concurrency") {
		v.Set("dataset.concurrency", dataset.DefaultConcurrency)
	}
	if !v.IsSet("dataset.content_type") {
		v.Set("dataset.content_type", dataset.DefaultContentType)
	}

	// Transcript defaults
	if !v.IsSet("transcript.model") {
		v.Set("transcript.model", "mono")
	}

	// Render defaults
	if !v.IsSet("render.width_in") {
		v.Set("render.width_in", render.DefaultWidthIn)
	}
	if !v.IsSet("render.panel_height_in") {
		v.Set("render.panel_height_in", render.DefaultPanelHeightIn)
	}

	// Batch defaults
	if !v.IsSet("batch.max_concurrency") {
		v.Set("batch.max_concurrency", 4)
	}
	if !v.IsSet("batch.timeout") {
		v.Set("batch.timeout", 5*time.Minute)
	}

	// Metrics defaults
	if !v.IsSet("metrics.enabled") {
		v.Set("metrics.enabled", false)
	}
	if !v.IsSet("metrics.prefix") {
		v.Set("metrics.prefix", "digit_formants")
	}

	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "table")
	}
}

// GetDefaultConfig returns a Config struct with all default values set
func GetDefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Verbose:      false,
		LogLevel:     "info",
		OutputFormat: "table",
		ConfigDir:    filepath.Join(home, ".config", "digit-formants"),
		DataDir:      filepath.Join(home, ".local", "share", "digit-formants"),

		Analysis:   analysis.DefaultConfig(),
		Dataset:    GetDefaultDatasetConfig(),
		Transcript: GetDefaultTranscriptConfig(),
		Render:     render.DefaultConfig(),
		Batch:      GetDefaultBatchConfig(),
		Metrics:    GetDefaultMetricsConfig(),
	}
}

// GetDefaultDatasetConfig returns default corpus settings
func GetDefaultDatasetConfig() DatasetConfig {
	return DatasetConfig{
		AudioDir:    dataset.DefaultAudioDir,
		Concurrency: dataset.DefaultConcurrency,
		ContentType: dataset.DefaultContentType,
	}
}

// GetDefaultTranscriptConfig returns default transcript settings
func GetDefaultTranscriptConfig() TranscriptConfig {
	return TranscriptConfig{
		Model: "mono",
	}
}

// GetDefaultBatchConfig returns default batch execution settings
func GetDefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxConcurrency: 4,
		Timeout:        5 * time.Minute,
	}
}

// GetDefaultMetricsConfig returns default metric settings
func GetDefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled: false,
		Prefix:  "digit_formants",
	}
}
