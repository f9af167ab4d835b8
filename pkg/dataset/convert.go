package dataset

import (
	"fmt"
	"math"

	resampling "github.com/tphakala/go-audio-resampling"
)

// toMono averages interleaved frames into one channel
func toMono(pcm []float64, channels int) []float64 {
	if channels <= 1 {
		return pcm
	}

	frames := len(pcm) / channels
	mono := make([]float64, frames)
	for i := range mono {
		var sum float64
		for c := range channels {
			sum += pcm[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}

// resample converts mono samples between rates. The result always holds
// round(len(samples)*to/from) samples.
func resample(samples []float64, from, to int) ([]float64, error) {
	if from == to || len(samples) == 0 {
		return samples, nil
	}

	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	out, err := rs.Process(samples)
	if err != nil {
		return nil, fmt.Errorf("resample error: %w", err)
	}
	tail, err := rs.Flush()
	if err != nil {
		return nil, fmt.Errorf("resample flush error: %w", err)
	}
	out = append(out, tail...)

	want := int(math.Round(float64(len(samples)) * float64(to) / float64(from)))
	if len(out) >= want {
		return out[:want], nil
	}
	return append(out, make([]float64, want-len(out))...), nil
}
