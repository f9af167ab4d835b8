package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
)

// Analyzer bundles the analysis functions behind a validated Config. It holds
// no mutable state and is safe for concurrent use.
type Analyzer struct {
	config Config
	logger logging.Logger
}

// FormantResult holds the envelope of a range and the formants found in it
type FormantResult struct {
	Range      TimeRange  `json:"range"`
	SampleRate int        `json:"sample_rate"`
	Envelope   Envelope   `json:"envelope,omitempty"`
	Formants   FormantSet `json:"formants"`
	// Complete is false when fewer than MaxFormants peaks qualified
	Complete bool `json:"complete"`
}

// Frequencies returns the formant frequencies in Hz, in set order
func (r *FormantResult) Frequencies() []float64 {
	freqs := make([]float64, len(r.Formants))
	for i, f := range r.Formants {
		freqs[i] = r.Envelope.BinFrequency(f.Bin, r.SampleRate)
	}
	return freqs
}

// NewAnalyzer validates cfg and creates an analyzer
func NewAnalyzer(cfg Config, logger logging.Logger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Analyzer{
		config: cfg,
		logger: logger,
	}, nil
}

// Config returns the analyzer configuration
func (a *Analyzer) Config() Config {
	return a.config
}

// Timestamps returns the time axis of samples
func (a *Analyzer) Timestamps(samples []float64) []float64 {
	return Timestamps(samples, a.config.SampleRate)
}

// Extract returns the raw samples of r
func (a *Analyzer) Extract(samples []float64, r TimeRange) ([]float64, error) {
	return Extract(samples, r, a.config.SampleRate)
}

// Window extracts r and applies the Hamming taper and pre-emphasis filter
func (a *Analyzer) Window(samples []float64, r TimeRange) ([]float64, error) {
	return ExtractWindowed(samples, r, a.config.SampleRate, a.config.PreEmphasis)
}

// Envelope computes the LPC spectral envelope of r
func (a *Analyzer) Envelope(samples []float64, r TimeRange) (Envelope, error) {
	return ComputeEnvelope(samples, r, a.config)
}

// Formants computes the envelope of r and its formants. A shortfall of peaks
// is reported through Complete rather than as an error.
func (a *Analyzer) Formants(samples []float64, r TimeRange) (*FormantResult, error) {
	env, err := ComputeEnvelope(samples, r, a.config)
	if err != nil {
		return nil, fmt.Errorf("failed to compute envelope: %w", err)
	}

	formants, err := FindFormants(env, a.config.MinFormantBin, a.config.MaxFormants)
	complete := err == nil
	if err != nil && !errors.Is(err, ErrInsufficientPeaks) {
		return nil, err
	}

	if !complete {
		a.logger.Debug("Fewer formant peaks than requested", logging.Fields{
			"start":    r.Start,
			"end":      r.End,
			"found":    len(formants),
			"expected": a.config.MaxFormants,
		})
	}

	return &FormantResult{
		Range:      r,
		SampleRate: a.config.SampleRate,
		Envelope:   env,
		Formants:   formants,
		Complete:   complete,
	}, nil
}

// FormantTrack computes formants over Config.TrackSteps equal sub-ranges of r
func (a *Analyzer) FormantTrack(ctx context.Context, samples []float64, r TimeRange) ([]TrackPoint, error) {
	return a.FormantTrackSteps(ctx, samples, r, a.config.TrackSteps)
}

// FormantTrackSteps computes formants over steps equal sub-ranges of r
func (a *Analyzer) FormantTrackSteps(ctx context.Context, samples []float64, r TimeRange, steps int) ([]TrackPoint, error) {
	a.logger.Debug("Computing formant track", logging.Fields{
		"start": r.Start,
		"end":   r.End,
		"steps": steps,
	})

	points, err := formantTrack(ctx, samples, r, steps, a.config)
	if err != nil {
		return nil, fmt.Errorf("formant track failed: %w", err)
	}
	return points, nil
}

// Spectrogram computes the power spectrogram of the whole buffer
func (a *Analyzer) Spectrogram(samples []float64) (*SpectrogramResult, error) {
	return Spectrogram(samples, a.config.SampleRate, DefaultSpectrogramNFFT, DefaultSpectrogramOverlap)
}

// MagnitudeSpectrum computes the magnitude spectrum of a windowed segment
func (a *Analyzer) MagnitudeSpectrum(segment []float64) (*SpectrumResult, error) {
	return MagnitudeSpectrum(segment, a.config.SampleRate)
}

// ReferenceFormants cross-checks r with an autocorrelation-method estimate
func (a *Analyzer) ReferenceFormants(samples []float64, r TimeRange) ([]float64, error) {
	return ReferenceFormants(samples, r, a.config)
}
