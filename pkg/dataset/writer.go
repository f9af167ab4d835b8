package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes mono samples as 16-bit PCM, clamping to [-1, 1]
func WriteWAV(path string, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return NewDatasetError(path, ErrCodeInvalidConfig, fmt.Sprintf("sample_rate=%d", sampleRate), ErrInvalidConfig)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	data := make([]int, len(samples))
	for i, s := range samples {
		s = max(-1, min(1, s))
		data[i] = int(s * 32767.0)
	}

	encoder := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write wav data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalise wav file: %w", err)
	}
	return nil
}
