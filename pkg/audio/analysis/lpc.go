package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// tiny keeps the Burg reflection denominator away from zero on silent input.
const tiny = 2.2250738585072014e-308

// FitLPC fits an autoregressive model of the given order to segment with
// Burg's method. The returned coefficients a[0..order] have a[0] = 1 and are
// the denominator of the all-pole model 1/A(z).
func FitLPC(segment []float64, order int) ([]float64, error) {
	if order < 1 {
		return nil, NewAnalysisError("fit lpc", ErrCodeInvalidParameter,
			fmt.Sprintf("order=%d", order), ErrInvalidParameter)
	}
	if len(segment) < order+1 {
		return nil, NewAnalysisError("fit lpc", ErrCodeInsufficientSamples,
			fmt.Sprintf("need at least %d samples for order %d, got %d", order+1, order, len(segment)),
			ErrInsufficientSamples)
	}
	for _, x := range segment {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, NewAnalysisError("fit lpc", ErrCodeNonFinite, "segment contains NaN or Inf", ErrNonFiniteSamples)
		}
	}

	coeffs := make([]float64, order+1)
	prev := make([]float64, order+1)
	coeffs[0], prev[0] = 1, 1

	// Forward and backward prediction errors, shrinking by one each stage.
	fwd := append([]float64(nil), segment[1:]...)
	bwd := append([]float64(nil), segment[:len(segment)-1]...)

	for i := range order {
		// combined error energy of this stage
		den := floats.Dot(fwd, fwd) + floats.Dot(bwd, bwd)
		reflect := -2 * floats.Dot(bwd, fwd) / (den + tiny)

		prev, coeffs = coeffs, prev
		for j := 1; j <= i+1; j++ {
			coeffs[j] = prev[j] + reflect*prev[i-j+1]
		}

		for k := range fwd {
			f, b := fwd[k], bwd[k]
			fwd[k] = f + reflect*b
			bwd[k] = b + reflect*f
		}

		fwd = fwd[1:]
		bwd = bwd[:len(bwd)-1]
	}

	return coeffs, nil
}
