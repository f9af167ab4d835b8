package app

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FormantStats summarises one formant across the batch
type FormantStats struct {
	Formant string  `json:"formant"`
	Mean    float64 `json:"mean_hz"`
	Median  float64 `json:"median_hz"`
	StdDev  float64 `json:"std_dev_hz"`
	Min     float64 `json:"min_hz"`
	Max     float64 `json:"max_hz"`
	Count   int     `json:"count"`
}

// CalculateFormantStats groups the frequencies of the successful formant
// jobs by ascending rank (F1, F2, ...) and summarises each group.
func CalculateFormantStats(results []*JobResult) []*FormantStats {
	var groups [][]float64
	for _, r := range results {
		if r == nil || r.Error != "" || r.Formants == nil {
			continue
		}

		freqs := slices.Clone(r.Formants.Frequencies)
		slices.Sort(freqs)
		for i, f := range freqs {
			if i == len(groups) {
				groups = append(groups, nil)
			}
			groups[i] = append(groups[i], f)
		}
	}

	stats := make([]*FormantStats, len(groups))
	for i, g := range groups {
		stats[i] = calculateStats(fmt.Sprintf("F%d", i+1), g)
	}
	return stats
}

func calculateStats(name string, data []float64) *FormantStats {
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	s := &FormantStats{
		Formant: name,
		Mean:    stat.Mean(sorted, nil),
		Median:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:     floats.Min(sorted),
		Max:     floats.Max(sorted),
		Count:   len(sorted),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	return s
}
