package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// TimeRange selects [Start, End) of a buffer, in seconds
type TimeRange struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Duration returns End - Start
func (r TimeRange) Duration() float64 {
	return r.End - r.Start
}

// Validate rejects reversed, empty, negative or non-finite ranges
func (r TimeRange) Validate() error {
	if math.IsNaN(r.Start) || math.IsNaN(r.End) || math.IsInf(r.Start, 0) || math.IsInf(r.End, 0) {
		return NewAnalysisError("validate range", ErrCodeInvalidRange, "non-finite bound", ErrInvalidRange)
	}
	if r.Start < 0 {
		return NewAnalysisError("validate range", ErrCodeInvalidRange, "negative start", ErrInvalidRange)
	}
	if r.End <= r.Start {
		return NewAnalysisError("validate range", ErrCodeInvalidRange, "end must be after start", ErrInvalidRange)
	}
	return nil
}

// Indices converts the range to sample indices [i0, iEnd) at sampleRate.
// The bounds are not clamped to any buffer.
func (r TimeRange) Indices(sampleRate int) (int, int) {
	return SampleIndex(r.Start, sampleRate), SampleIndex(r.End, sampleRate)
}

// SampleIndex maps a time in seconds to the nearest sample index, rounding
// halves to even.
func SampleIndex(t float64, sampleRate int) int {
	dt := 1 / float64(sampleRate)
	return int(math.RoundToEven(t / dt))
}

// Duration returns the length of a buffer in seconds
func Duration(samples []float64, sampleRate int) float64 {
	return float64(len(samples)) / float64(sampleRate)
}

// Timestamps returns the time of every sample: N values i/R spanning
// [0, (N-1)/R].
func Timestamps(samples []float64, sampleRate int) []float64 {
	n := len(samples)
	switch n {
	case 0:
		return []float64{}
	case 1:
		return []float64{0}
	}
	return floats.Span(make([]float64, n), 0, float64(n-1)/float64(sampleRate))
}
