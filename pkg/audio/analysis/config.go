package analysis

import (
	"fmt"
	"math"
)

const (
	DefaultSampleRate    = 8000
	DefaultLPCOrder      = 10
	DefaultEps           = 10.0
	DefaultPreEmphasis   = 0.63
	DefaultMinFormantBin = 90
	DefaultMaxFormants   = 3
	DefaultFloorDB       = -120.0
	DefaultTrackSteps    = 40
)

// Config holds the analysis parameters. The zero value of a field means the
// parameter is missing; start from DefaultConfig and override.
type Config struct {
	SampleRate    int     `json:"sample_rate" mapstructure:"sample_rate"`
	LPCOrder      int     `json:"lpc_order" mapstructure:"lpc_order"`
	Eps           float64 `json:"eps" mapstructure:"eps"`                       // envelope scale factor
	PreEmphasis   float64 `json:"pre_emphasis" mapstructure:"pre_emphasis"`     // one-pole filter coefficient
	MinFormantBin int     `json:"min_formant_bin" mapstructure:"min_formant_bin"` // peaks at or below are dropped
	MaxFormants   int     `json:"max_formants" mapstructure:"max_formants"`
	FloorDB       float64 `json:"floor_db" mapstructure:"floor_db"`
	TrackSteps    int     `json:"track_steps" mapstructure:"track_steps"`
}

// DefaultConfig returns the reference analysis parameters
func DefaultConfig() Config {
	return Config{
		SampleRate:    DefaultSampleRate,
		LPCOrder:      DefaultLPCOrder,
		Eps:           DefaultEps,
		PreEmphasis:   DefaultPreEmphasis,
		MinFormantBin: DefaultMinFormantBin,
		MaxFormants:   DefaultMaxFormants,
		FloorDB:       DefaultFloorDB,
		TrackSteps:    DefaultTrackSteps,
	}
}

// Validate checks every parameter before any computation starts and names the
// first offending field.
func (c Config) Validate() error {
	missing := func(field string) error {
		return NewAnalysisError("validate config", ErrCodeMissingParameter, field, ErrMissingParameter)
	}
	invalid := func(field string, value any) error {
		return NewAnalysisError("validate config", ErrCodeInvalidParameter,
			fmt.Sprintf("%s=%v", field, value), ErrInvalidParameter)
	}

	switch {
	case c.SampleRate == 0:
		return missing("sample_rate")
	case c.LPCOrder == 0:
		return missing("lpc_order")
	case c.Eps == 0:
		return missing("eps")
	case c.MaxFormants == 0:
		return missing("max_formants")
	case c.FloorDB == 0:
		return missing("floor_db")
	case c.TrackSteps == 0:
		return missing("track_steps")
	}

	if c.SampleRate < 2 {
		return invalid("sample_rate", c.SampleRate)
	}
	if c.LPCOrder < 1 || c.LPCOrder >= c.SampleRate {
		return invalid("lpc_order", c.LPCOrder)
	}
	if c.Eps < 0 || math.IsInf(c.Eps, 0) || math.IsNaN(c.Eps) {
		return invalid("eps", c.Eps)
	}
	if math.Abs(c.PreEmphasis) >= 1 || math.IsNaN(c.PreEmphasis) {
		return invalid("pre_emphasis", c.PreEmphasis)
	}
	if c.MinFormantBin < 0 || c.MinFormantBin >= c.SampleRate/2 {
		return invalid("min_formant_bin", c.MinFormantBin)
	}
	if c.MaxFormants < 0 {
		return invalid("max_formants", c.MaxFormants)
	}
	if c.FloorDB > 0 || math.IsInf(c.FloorDB, 0) || math.IsNaN(c.FloorDB) {
		return invalid("floor_db", c.FloorDB)
	}
	if c.TrackSteps < 0 {
		return invalid("track_steps", c.TrackSteps)
	}

	return nil
}

// Bins is the number of envelope bins (worN), one per Hz up to Nyquist.
func (c Config) Bins() int {
	return c.SampleRate / 2
}
