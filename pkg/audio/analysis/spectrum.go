package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

const (
	DefaultSpectrogramNFFT    = 256
	DefaultSpectrogramOverlap = 128

	spectrumFloorDB = -200.0
)

// SpectrogramResult holds a one-sided power spectral density per frame
type SpectrogramResult struct {
	Times      []float64   `json:"times"`       // frame centres (s)
	Freqs      []float64   `json:"freqs"`       // bin frequencies (Hz)
	PowerDB    [][]float64 `json:"power_db"`    // [frame][bin]
	NFFT       int         `json:"nfft"`
	Overlap    int         `json:"overlap"`
	SampleRate int         `json:"sample_rate"`
}

// SpectrumResult holds the magnitude spectrum of one segment
type SpectrumResult struct {
	Freqs       []float64 `json:"freqs"`
	MagnitudeDB []float64 `json:"magnitude_db"`
}

// Spectrogram computes a Hann-windowed STFT power spectrogram in dB with nfft
// points and overlap samples shared between frames. Inputs shorter than nfft
// are zero-padded to one frame.
func Spectrogram(samples []float64, sampleRate, nfft, overlap int) (*SpectrogramResult, error) {
	if nfft < 2 {
		return nil, NewAnalysisError("spectrogram", ErrCodeInvalidParameter, fmt.Sprintf("nfft=%d", nfft), ErrInvalidParameter)
	}
	if overlap < 0 || overlap >= nfft {
		return nil, NewAnalysisError("spectrogram", ErrCodeInvalidParameter, fmt.Sprintf("overlap=%d", overlap), ErrInvalidParameter)
	}
	if len(samples) == 0 {
		return nil, NewAnalysisError("spectrogram", ErrCodeInsufficientSamples, "empty buffer", ErrInsufficientSamples)
	}

	x := samples
	if len(x) < nfft {
		x = make([]float64, nfft)
		copy(x, samples)
	}

	hop := nfft - overlap
	frames := 1 + (len(x)-nfft)/hop
	bins := nfft/2 + 1

	taper := window.Hann(nfft)
	norm := float64(sampleRate) * floats.Dot(taper, taper)

	result := &SpectrogramResult{
		Times:      make([]float64, frames),
		Freqs:      make([]float64, bins),
		PowerDB:    make([][]float64, frames),
		NFFT:       nfft,
		Overlap:    overlap,
		SampleRate: sampleRate,
	}
	for k := range bins {
		result.Freqs[k] = float64(k) * float64(sampleRate) / float64(nfft)
	}

	frame := make([]float64, nfft)
	for t := range frames {
		start := t * hop
		floats.MulTo(frame, x[start:start+nfft], taper)
		spectrum := fft.FFTReal(frame)

		row := make([]float64, bins)
		for k := range bins {
			mag := cmplx.Abs(spectrum[k])
			psd := mag * mag / norm
			// one-sided: fold negative frequencies except DC and Nyquist
			if k != 0 && !(nfft%2 == 0 && k == bins-1) {
				psd *= 2
			}
			row[k] = powerToDB(psd)
		}
		result.PowerDB[t] = row
		result.Times[t] = float64(start+nfft/2) / float64(sampleRate)
	}

	return result, nil
}

// MagnitudeSpectrum returns the Hann-windowed magnitude spectrum of segment in
// dB, normalised by the window sum.
func MagnitudeSpectrum(segment []float64, sampleRate int) (*SpectrumResult, error) {
	if len(segment) == 0 {
		return nil, NewAnalysisError("magnitude spectrum", ErrCodeInsufficientSamples, "empty segment", ErrInsufficientSamples)
	}

	n := len(segment)
	taper := window.Hann(n)
	scale := floats.Sum(taper)
	if scale == 0 {
		// Hann of length 2 is all zeros
		scale = 1
	}

	windowed := make([]float64, n)
	floats.MulTo(windowed, segment, taper)
	spectrum := fft.FFTReal(windowed)

	bins := n/2 + 1
	result := &SpectrumResult{
		Freqs:       make([]float64, bins),
		MagnitudeDB: make([]float64, bins),
	}
	for k := range bins {
		result.Freqs[k] = float64(k) * float64(sampleRate) / float64(n)
		result.MagnitudeDB[k] = amplitudeToDB(cmplx.Abs(spectrum[k]) / scale)
	}
	return result, nil
}

func powerToDB(p float64) float64 {
	if p <= 0 {
		return spectrumFloorDB
	}
	return math.Max(10*math.Log10(p), spectrumFloorDB)
}

func amplitudeToDB(a float64) float64 {
	if a <= 0 {
		return spectrumFloorDB
	}
	return math.Max(20*math.Log10(a), spectrumFloorDB)
}
