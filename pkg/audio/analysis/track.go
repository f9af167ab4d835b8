package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TrackPoint is the formant set of one sub-range of a track
type TrackPoint struct {
	Time     float64    `json:"time"` // sub-range centre (s)
	Range    TimeRange  `json:"range"`
	Formants FormantSet `json:"formants"`
}

// SubRanges splits r into steps equal consecutive ranges
func SubRanges(r TimeRange, steps int) []TimeRange {
	if steps < 1 {
		return nil
	}
	width := r.Duration() / float64(steps)
	ranges := make([]TimeRange, steps)
	for i := range ranges {
		start := r.Start + float64(i)*width
		ranges[i] = TimeRange{Start: start, End: start + width}
	}
	return ranges
}

// formantTrack computes formants over each sub-range concurrently. A
// sub-range with fewer peaks than requested keeps its partial set; any other
// failure cancels the remaining work.
func formantTrack(ctx context.Context, samples []float64, r TimeRange, steps int, cfg Config) ([]TrackPoint, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if steps < 1 {
		return nil, NewAnalysisError("formant track", ErrCodeInvalidParameter, fmt.Sprintf("steps=%d", steps), ErrInvalidParameter)
	}

	ranges := SubRanges(r, steps)
	points := make([]TrackPoint, len(ranges))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, sub := range ranges {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			env, err := ComputeEnvelope(samples, sub, cfg)
			if err != nil {
				return fmt.Errorf("sub-range %d [%.4f, %.4f]: %w", i, sub.Start, sub.End, err)
			}

			formants, err := FindFormants(env, cfg.MinFormantBin, cfg.MaxFormants)
			if err != nil && !errors.Is(err, ErrInsufficientPeaks) {
				return fmt.Errorf("sub-range %d [%.4f, %.4f]: %w", i, sub.Start, sub.End, err)
			}

			points[i] = TrackPoint{
				Time:     (sub.Start + sub.End) / 2,
				Range:    sub,
				Formants: formants,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
