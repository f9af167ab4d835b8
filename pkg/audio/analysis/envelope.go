package analysis

import (
	"math"

	"github.com/RyanBlaney/sonido-sonar/algorithms/speech"
	"gonum.org/v1/gonum/floats"
)

// Envelope is an LPC spectral envelope in dB, one bin per sampleRate/2/len Hz
// starting at 0 Hz.
type Envelope []float64

// BinFrequency returns the frequency in Hz of bin for an envelope computed at
// sampleRate.
func (e Envelope) BinFrequency(bin, sampleRate int) float64 {
	if len(e) == 0 {
		return 0
	}
	return float64(bin) * float64(sampleRate) / 2 / float64(len(e))
}

// denominatorResponse evaluates |A(e^jw)| at worN points evenly spaced on
// [0, pi). coeffs[0] must be 1. The sum over the coefficients is taken
// directly at every point, so a flat model (a = [1, 0, ...]) stays exactly
// flat.
func denominatorResponse(coeffs []float64, worN int) []float64 {
	mags := make([]float64, worN)
	if worN == 0 || len(coeffs) == 0 {
		return mags
	}

	order := max(len(coeffs)-1, 1)
	// GetSpectralEnvelope reports 1/|A| on [0, pi], and 0 where A vanishes
	response, err := speech.NewLPCAnalyzer(2*worN, order).GetSpectralEnvelope(coeffs, 2*worN)
	if err != nil || len(response) < worN {
		return mags
	}

	for k := range mags {
		if h := response[k]; h > 0 {
			mags[k] = 1 / h
		}
	}
	return mags
}

// allPoleDecibels converts denominator magnitudes into
// 20*log10(|H|/max|H| * eps) with H = 1/A, floor-clamped at floorDB.
func allPoleDecibels(denominator []float64, eps, floorDB float64) Envelope {
	env := make(Envelope, len(denominator))
	if len(denominator) == 0 {
		return env
	}

	// |H|/max|H| == min|A| / |A|
	minA := floats.Min(denominator)
	for k, a := range denominator {
		var ratio float64
		switch {
		case a == minA:
			ratio = 1
		case minA == 0:
			ratio = 0
		default:
			ratio = minA / a
		}

		db := 20 * math.Log10(ratio*eps)
		if db < floorDB || math.IsNaN(db) {
			db = floorDB
		}
		env[k] = db
	}
	return env
}

// ComputeEnvelope fits an LPC model to the raw samples in r (no taper or
// pre-emphasis) and returns its all-pole spectral envelope with
// cfg.SampleRate/2 bins.
func ComputeEnvelope(samples []float64, r TimeRange, cfg Config) (Envelope, error) {
	segment, err := Extract(samples, r, cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	coeffs, err := FitLPC(segment, cfg.LPCOrder)
	if err != nil {
		return nil, err
	}

	return allPoleDecibels(denominatorResponse(coeffs, cfg.Bins()), cfg.Eps, cfg.FloorDB), nil
}
