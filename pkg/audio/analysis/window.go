package analysis

import (
	"fmt"

	"github.com/mjibson/go-dsp/window"
)

// Extract returns a copy of samples over r. A range running past the end of
// the buffer is truncated; one starting past the end yields an empty slice.
func Extract(samples []float64, r TimeRange, sampleRate int) ([]float64, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	i0, iEnd := r.Indices(sampleRate)
	i0 = min(i0, len(samples))
	iEnd = min(iEnd, len(samples))

	segment := make([]float64, iEnd-i0)
	copy(segment, samples[i0:iEnd])
	return segment, nil
}

// PreemphasizeAndWindow applies a symmetric Hamming taper and then the
// one-pole filter y[n] = x[n] - coeff*y[n-1]. The input is not modified.
func PreemphasizeAndWindow(segment []float64, coeff float64) []float64 {
	out := make([]float64, len(segment))
	if len(segment) == 0 {
		return out
	}

	taper := window.Hamming(len(segment))
	prev := 0.0
	for i, x := range segment {
		y := x*taper[i] - coeff*prev
		out[i] = y
		prev = y
	}
	return out
}

// ExtractWindowed combines Extract and PreemphasizeAndWindow
func ExtractWindowed(samples []float64, r TimeRange, sampleRate int, coeff float64) ([]float64, error) {
	segment, err := Extract(samples, r, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to extract segment: %w", err)
	}
	return PreemphasizeAndWindow(segment, coeff), nil
}
