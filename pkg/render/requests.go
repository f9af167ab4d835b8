package render

import (
	"fmt"

	"github.com/RyanBlaney/digit-formants/pkg/audio/analysis"
	"github.com/RyanBlaney/digit-formants/pkg/transcript"
)

// Shared with the analysis package so errors.Is matches either source
var (
	ErrMissingParameter = analysis.ErrMissingParameter
	ErrInvalidParameter = analysis.ErrInvalidParameter
)

func missing(plot, field string) error {
	return analysis.NewAnalysisError(plot, analysis.ErrCodeMissingParameter, field, ErrMissingParameter)
}

func invalid(plot, field string, value any) error {
	return analysis.NewAnalysisError(plot, analysis.ErrCodeInvalidParameter,
		fmt.Sprintf("%s=%v", field, value), ErrInvalidParameter)
}

// Overlay draws transcript segments as horizontal bars above the waveform.
// Depth 0 sits at half the axis height and each further level halves it.
type Overlay struct {
	Kind     transcript.Kind
	Segments []transcript.Segment
	Depth    int
}

// WaveformRequest plots the raw wave of one recording
type WaveformRequest struct {
	Samples  []float64
	Title    string
	Overlays []Overlay
}

func (r *WaveformRequest) Validate() error {
	if r.Samples == nil {
		return missing("waveform", "samples")
	}
	for i, o := range r.Overlays {
		if o.Depth < 0 {
			return invalid("waveform", fmt.Sprintf("overlays[%d].depth", i), o.Depth)
		}
	}
	return nil
}

// SpectrogramRequest plots the spectrogram of a buffer restricted to Range,
// optionally with the formant track of Range over Steps sub-ranges.
type SpectrogramRequest struct {
	Samples  []float64
	Range    analysis.TimeRange
	Formants bool
	Steps    int // 0 uses the analyzer default
}

func (r *SpectrogramRequest) Validate() error {
	if r.Samples == nil {
		return missing("spectrogram", "samples")
	}
	if r.Range == (analysis.TimeRange{}) {
		return missing("spectrogram", "range")
	}
	if r.Steps < 0 {
		return invalid("spectrogram", "steps", r.Steps)
	}
	return r.Range.Validate()
}

// WindowedSamplesRequest plots the tapered, pre-emphasised samples of Range
type WindowedSamplesRequest struct {
	Samples []float64
	Range   analysis.TimeRange
}

func (r *WindowedSamplesRequest) Validate() error {
	if r.Samples == nil {
		return missing("windowed samples", "samples")
	}
	if r.Range == (analysis.TimeRange{}) {
		return missing("windowed samples", "range")
	}
	return r.Range.Validate()
}

// MagnitudeSpectrumRequest plots the spectrum of the windowed samples of
// Range with the LPC envelope and its formants.
type MagnitudeSpectrumRequest struct {
	Samples []float64
	Range   analysis.TimeRange
	Eps     float64 // 0 uses the analyzer default
}

func (r *MagnitudeSpectrumRequest) Validate() error {
	if r.Samples == nil {
		return missing("magnitude spectrum", "samples")
	}
	if r.Range == (analysis.TimeRange{}) {
		return missing("magnitude spectrum", "range")
	}
	if r.Eps < 0 {
		return invalid("magnitude spectrum", "eps", r.Eps)
	}
	return r.Range.Validate()
}
