package render

import (
	"math"

	"github.com/RyanBlaney/digit-formants/pkg/audio/analysis"
)

// spectrogramGrid adapts a spectrogram to plotter.GridXYZ, keeping only the
// frames whose centre lies in [start, end].
type spectrogramGrid struct {
	result *analysis.SpectrogramResult
	first  int
	count  int
}

func newSpectrogramGrid(result *analysis.SpectrogramResult, start, end float64) *spectrogramGrid {
	g := &spectrogramGrid{result: result}
	for i, t := range result.Times {
		if t < start || t > end {
			continue
		}
		if g.count == 0 {
			g.first = i
		}
		g.count++
	}
	// a range narrower than one hop still shows its nearest frame
	if g.count == 0 && len(result.Times) > 0 {
		g.first = nearestFrame(result.Times, (start+end)/2)
		g.count = 1
	}
	return g
}

func nearestFrame(times []float64, t float64) int {
	best := 0
	for i := range times {
		if math.Abs(times[i]-t) < math.Abs(times[best]-t) {
			best = i
		}
	}
	return best
}

func (g *spectrogramGrid) Dims() (c, r int) {
	return g.count, len(g.result.Freqs)
}

func (g *spectrogramGrid) Z(c, r int) float64 {
	return g.result.PowerDB[g.first+c][r]
}

func (g *spectrogramGrid) X(c int) float64 {
	return g.result.Times[g.first+c]
}

func (g *spectrogramGrid) Y(r int) float64 {
	return g.result.Freqs[r]
}
