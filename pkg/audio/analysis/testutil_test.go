package analysis

import (
	"math"
	"math/rand"
)

// tone synthesises a sum of sinusoids with optional Gaussian noise
func tone(n, sampleRate int, freqs, amps []float64, noise float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		for k, f := range freqs {
			out[i] += amps[k] * math.Sin(2*math.Pi*f*t)
		}
		if noise > 0 {
			out[i] += noise * rng.NormFloat64()
		}
	}
	return out
}

func argmax(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}
