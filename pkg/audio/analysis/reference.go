package analysis

import (
	"fmt"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

// whiteNoiseCorrection lifts the zero-lag autocorrelation so near-periodic
// segments keep a positive-definite Toeplitz system.
const whiteNoiseCorrection = 1e-9

// ReferenceFormants estimates formant frequencies (Hz, ascending) over r with
// the autocorrelation method: a Hamming-tapered segment, Levinson-Durbin at
// cfg.LPCOrder and the same peak rules as FindFormants. It shares no model
// fitting with FitLPC and serves as a cross-check of Formants.
//
// When fewer than cfg.MaxFormants peaks qualify, the partial estimate is
// returned with an error wrapping ErrInsufficientPeaks.
func ReferenceFormants(samples []float64, r TimeRange, cfg Config) ([]float64, error) {
	segment, err := Extract(samples, r, cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	if len(segment) < cfg.LPCOrder+1 {
		return nil, NewAnalysisError("reference formants", ErrCodeInsufficientSamples,
			fmt.Sprintf("need at least %d samples for order %d, got %d", cfg.LPCOrder+1, cfg.LPCOrder, len(segment)),
			ErrInsufficientSamples)
	}

	tapered := make([]float64, len(segment))
	floats.MulTo(tapered, segment, window.Hamming(len(segment)))

	coeffs, err := levinsonDurbin(autocorrelation(tapered, cfg.LPCOrder))
	if err != nil {
		return []float64{}, err
	}

	env := allPoleDecibels(denominatorResponse(coeffs, cfg.Bins()), cfg.Eps, cfg.FloorDB)
	formants, err := FindFormants(env, cfg.MinFormantBin, cfg.MaxFormants)

	byFreq := formants.ByFrequency()
	freqs := make([]float64, len(byFreq))
	for i, f := range byFreq {
		freqs[i] = env.BinFrequency(f.Bin, cfg.SampleRate)
	}
	return freqs, err
}

// autocorrelation returns the biased autocorrelation of x for lags 0..maxLag
func autocorrelation(x []float64, maxLag int) []float64 {
	acf := make([]float64, maxLag+1)
	for k := range acf {
		if k < len(x) {
			acf[k] = floats.Dot(x[:len(x)-k], x[k:])
		}
	}
	return acf
}

// levinsonDurbin solves the Yule-Walker equations for acf. The returned
// coefficients have a[0] = 1 and denote A(z) = 1 + sum a[i] z^-i.
func levinsonDurbin(acf []float64) ([]float64, error) {
	order := len(acf) - 1
	if acf[0] <= 0 {
		return nil, NewAnalysisError("reference formants", ErrCodeInsufficientPeaks,
			"segment has no energy", ErrInsufficientPeaks)
	}

	a := make([]float64, order+1)
	prev := make([]float64, order+1)
	a[0] = 1

	energy := acf[0] * (1 + whiteNoiseCorrection)
	for i := 1; i <= order; i++ {
		acc := acf[i]
		for j := 1; j < i; j++ {
			acc += a[j] * acf[i-j]
		}
		k := -acc / energy

		copy(prev, a)
		for j := 1; j < i; j++ {
			a[j] = prev[j] + k*prev[i-j]
		}
		a[i] = k

		energy *= 1 - k*k
		if energy <= 0 {
			break
		}
	}
	return a, nil
}
