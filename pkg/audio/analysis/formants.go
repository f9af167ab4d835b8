package analysis

import (
	"cmp"
	"fmt"
	"slices"
)

// Formant is a resonance peak of an envelope
type Formant struct {
	Bin int     `json:"bin"`
	DB  float64 `json:"db"`
}

// FormantSet holds up to MaxFormants peaks in selection order: strongest
// first, ties broken by ascending bin. Use ByFrequency for F1, F2, F3 order.
type FormantSet []Formant

// Bins returns the bin index of every formant, in set order
func (fs FormantSet) Bins() []int {
	bins := make([]int, len(fs))
	for i, f := range fs {
		bins[i] = f.Bin
	}
	return bins
}

// ByFrequency returns a copy sorted by ascending bin
func (fs FormantSet) ByFrequency() FormantSet {
	sorted := slices.Clone(fs)
	slices.SortFunc(sorted, func(a, b Formant) int {
		return cmp.Compare(a.Bin, b.Bin)
	})
	return sorted
}

// FindFormants picks the count strongest strict local maxima of env above
// minBin. Boundary bins are never peaks. If fewer than count peaks qualify,
// the partial set is returned together with an error wrapping
// ErrInsufficientPeaks.
func FindFormants(env Envelope, minBin, count int) (FormantSet, error) {
	var peaks FormantSet
	for i := max(1, minBin+1); i < len(env)-1; i++ {
		if env[i] > env[i-1] && env[i] > env[i+1] {
			peaks = append(peaks, Formant{Bin: i, DB: env[i]})
		}
	}

	slices.SortStableFunc(peaks, func(a, b Formant) int {
		if c := cmp.Compare(b.DB, a.DB); c != 0 {
			return c
		}
		return cmp.Compare(a.Bin, b.Bin)
	})

	if len(peaks) < count {
		if peaks == nil {
			peaks = FormantSet{}
		}
		return peaks, NewAnalysisError("find formants", ErrCodeInsufficientPeaks,
			fmt.Sprintf("found %d of %d peaks above bin %d", len(peaks), count, minBin),
			ErrInsufficientPeaks)
	}

	return peaks[:count:count], nil
}
