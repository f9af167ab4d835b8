package dataset

import (
	"fmt"
	"path/filepath"
)

const (
	DefaultAudioDir    = "digits_audio"
	DefaultSampleRate  = 8000
	DefaultConcurrency = 4
	DefaultContentType = "talk"
)

// Config locates the corpus on disk. Files live at
// <Root>/<AudioDir>/<split>/<speaker>/<file>.
type Config struct {
	Root        string `json:"root" mapstructure:"root"`
	AudioDir    string `json:"audio_dir" mapstructure:"audio_dir"`
	SampleRate  int    `json:"sample_rate" mapstructure:"sample_rate"`
	Concurrency int    `json:"concurrency" mapstructure:"concurrency"`
	// ContentType selects the normalisation profile of the transcode fallback
	ContentType string `json:"content_type" mapstructure:"content_type"`
}

func DefaultConfig(root string) Config {
	return Config{
		Root:        root,
		AudioDir:    DefaultAudioDir,
		SampleRate:  DefaultSampleRate,
		Concurrency: DefaultConcurrency,
		ContentType: DefaultContentType,
	}
}

func (c Config) Validate() error {
	if c.Root == "" {
		return NewDatasetError("", ErrCodeInvalidConfig, "root directory is required", ErrInvalidConfig)
	}
	if c.AudioDir == "" {
		return NewDatasetError(c.Root, ErrCodeInvalidConfig, "audio_dir is required", ErrInvalidConfig)
	}
	if c.SampleRate <= 0 {
		return NewDatasetError(c.Root, ErrCodeInvalidConfig, fmt.Sprintf("sample_rate=%d", c.SampleRate), ErrInvalidConfig)
	}
	if c.Concurrency <= 0 {
		return NewDatasetError(c.Root, ErrCodeInvalidConfig, fmt.Sprintf("concurrency=%d", c.Concurrency), ErrInvalidConfig)
	}
	return nil
}

// AudioRoot is the directory holding the split directories
func (c Config) AudioRoot() string {
	return filepath.Join(c.Root, c.AudioDir)
}
