package render

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/RyanBlaney/digit-formants/pkg/audio/analysis"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	waveColor     = color.RGBA{R: 255, G: 127, B: 14, A: 255} // matplotlib C1
	envelopeColor = color.RGBA{R: 44, G: 160, B: 44, A: 255}  // matplotlib C2
	overlayColor  = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	markerColor   = color.Black
)

// overlayLabelRatio places a segment label just above its bar
const overlayLabelRatio = 0.85

var formantLabels = []string{"F1", "F2", "F3", "F4", "F5"}

// Renderer draws analysis results as gonum plots
type Renderer struct {
	analyzer *analysis.Analyzer
	config   Config
	logger   logging.Logger
}

func NewRenderer(analyzer *analysis.Analyzer, cfg Config, logger logging.Logger) (*Renderer, error) {
	if analyzer == nil {
		return nil, missing("renderer", "analyzer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Renderer{
		analyzer: analyzer,
		config:   cfg,
		logger:   logger.WithFields(logging.Fields{"component": "render"}),
	}, nil
}

// Waveform plots amplitude over time with the transcript overlays
func (r *Renderer) Waveform(req WaveformRequest) (*plot.Plot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	times := r.analyzer.Timestamps(req.Samples)

	p := plot.New()
	p.Title.Text = req.Title
	if p.Title.Text == "" {
		p.Title.Text = "Raw wave form"
	}
	p.X.Label.Text = "Time [s]"
	p.Y.Label.Text = "Amplitude"

	if err := addLine(p, times, req.Samples, waveColor); err != nil {
		return nil, err
	}

	ymax := 1.05 * peakAmplitude(req.Samples)
	if ymax == 0 {
		ymax = 1
	}
	p.Y.Min, p.Y.Max = -ymax, ymax
	if len(times) > 1 {
		p.X.Min, p.X.Max = times[0], times[len(times)-1]
	}

	for _, overlay := range req.Overlays {
		if err := addOverlay(p, overlay, ymax); err != nil {
			return nil, fmt.Errorf("failed to draw %s overlay: %w", overlay.Kind, err)
		}
	}

	return p, nil
}

// OverlayLevel is the height of the bar for overlay depth d
func OverlayLevel(ymax float64, depth int) float64 {
	return ymax / math.Exp2(float64(depth+1))
}

func addOverlay(p *plot.Plot, overlay Overlay, ymax float64) error {
	level := OverlayLevel(ymax, overlay.Depth)

	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(overlay.Segments)),
		Labels: make([]string, len(overlay.Segments)),
	}
	ends := make(plotter.XYs, 0, 2*len(overlay.Segments))

	for i, seg := range overlay.Segments {
		bar, err := plotter.NewLine(plotter.XYs{{X: seg.Start, Y: level}, {X: seg.End, Y: level}})
		if err != nil {
			return err
		}
		bar.Color = overlayColor
		p.Add(bar)

		ends = append(ends, plotter.XY{X: seg.Start, Y: level}, plotter.XY{X: seg.End, Y: level})
		labels.XYs[i] = plotter.XY{X: (seg.Start + seg.End) / 2, Y: level / overlayLabelRatio}
		labels.Labels[i] = seg.Label
	}

	if len(ends) == 0 {
		return nil
	}

	markers, err := plotter.NewScatter(ends)
	if err != nil {
		return err
	}
	markers.GlyphStyle.Shape = draw.CircleGlyph{}
	markers.GlyphStyle.Color = overlayColor
	p.Add(markers)

	text, err := plotter.NewLabels(labels)
	if err != nil {
		return err
	}
	p.Add(text)
	return nil
}

// Spectrogram plots the power spectrogram over the request range and, when
// requested, the formant track of that range.
func (r *Renderer) Spectrogram(ctx context.Context, req SpectrogramRequest) (*plot.Plot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sgram, err := r.analyzer.Spectrogram(req.Samples)
	if err != nil {
		return nil, fmt.Errorf("failed to compute spectrogram: %w", err)
	}

	p := plot.New()
	p.Title.Text = "Spectrogram"
	p.X.Label.Text = "Time [s]"
	p.Y.Label.Text = "Frequency [Hz]"

	grid := newSpectrogramGrid(sgram, req.Range.Start, req.Range.End)
	heat := plotter.NewHeatMap(grid, palette.Heat(16, 1))
	if heat.Min == heat.Max {
		// flat input (silence) still needs a non-empty colour range
		heat.Max = heat.Min + 1
	}
	p.Add(heat)

	if req.Formants {
		steps := req.Steps
		if steps == 0 {
			steps = r.analyzer.Config().TrackSteps
		}

		points, err := r.analyzer.FormantTrackSteps(ctx, req.Samples, req.Range, steps)
		if err != nil {
			return nil, fmt.Errorf("failed to compute formant track: %w", err)
		}

		var xys plotter.XYs
		for _, pt := range points {
			for _, f := range pt.Formants {
				xys = append(xys, plotter.XY{X: pt.Time, Y: float64(f.Bin) * binWidth(r.analyzer.Config())})
			}
		}
		if len(xys) > 0 {
			track, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, err
			}
			track.GlyphStyle.Shape = draw.TriangleGlyph{}
			track.GlyphStyle.Color = markerColor
			p.Add(track)
		}
	}

	p.X.Min, p.X.Max = req.Range.Start, req.Range.End
	return p, nil
}

// WindowedSamples plots the tapered, pre-emphasised samples of the range
func (r *Renderer) WindowedSamples(req WindowedSamplesRequest) (*plot.Plot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	windowed, err := r.analyzer.Window(req.Samples, req.Range)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Hamming Windowed samples of [%s,%s]",
		roundString(req.Range.Start, 3), roundString(req.Range.End, 3))
	p.X.Label.Text = "Time [samples]"
	p.Y.Label.Text = "Amplitude"

	index := make([]float64, len(windowed))
	for i := range index {
		index[i] = float64(i)
	}
	if err := addLine(p, index, windowed, waveColor); err != nil {
		return nil, err
	}
	return p, nil
}

// MagnitudeSpectrum plots the spectrum of the windowed range with the LPC
// envelope and labels its formants F1, F2, F3 by ascending frequency.
func (r *Renderer) MagnitudeSpectrum(req MagnitudeSpectrumRequest) (*plot.Plot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cfg := r.analyzer.Config()
	if req.Eps > 0 {
		cfg.Eps = req.Eps
	}

	windowed, err := r.analyzer.Window(req.Samples, req.Range)
	if err != nil {
		return nil, err
	}
	spectrum, err := r.analyzer.MagnitudeSpectrum(windowed)
	if err != nil {
		return nil, fmt.Errorf("failed to compute magnitude spectrum: %w", err)
	}

	env, err := analysis.ComputeEnvelope(req.Samples, req.Range, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to compute envelope: %w", err)
	}
	formants, err := analysis.FindFormants(env, cfg.MinFormantBin, cfg.MaxFormants)
	if err != nil {
		if !errors.Is(err, analysis.ErrInsufficientPeaks) {
			return nil, err
		}
		r.logger.Debug("Plotting partial formant set", logging.Fields{
			"found": len(formants),
			"start": req.Range.Start,
			"end":   req.Range.End,
		})
	}

	p := plot.New()
	p.Title.Text = "Log Magnitude Spectrum of windowed samples"
	p.X.Label.Text = "Frequency [Hz]"
	p.Y.Label.Text = "Magnitude [dB]"

	if err := addLine(p, spectrum.Freqs, spectrum.MagnitudeDB, waveColor); err != nil {
		return nil, err
	}

	width := binWidth(cfg)
	envX := make([]float64, len(env))
	for i := range envX {
		envX[i] = float64(i) * width
	}
	if err := addLine(p, envX, env, envelopeColor); err != nil {
		return nil, err
	}

	if len(formants) > 0 {
		ordered := formants.ByFrequency()
		peaks := make(plotter.XYs, len(ordered))
		labels := plotter.XYLabels{XYs: make(plotter.XYs, len(ordered)), Labels: make([]string, len(ordered))}
		for i, f := range ordered {
			peaks[i] = plotter.XY{X: float64(f.Bin) * width, Y: f.DB}
			labels.XYs[i] = peaks[i]
			labels.Labels[i] = formantLabels[min(i, len(formantLabels)-1)]
		}

		scatter, err := plotter.NewScatter(peaks)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Color = markerColor
		scatter.GlyphStyle.Radius = vg.Points(4)
		p.Add(scatter)

		text, err := plotter.NewLabels(labels)
		if err != nil {
			return nil, err
		}
		text.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
		p.Add(text)
	}

	return p, nil
}

func addLine(p *plot.Plot, xs, ys []float64, c color.Color) error {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	if len(xys) == 0 {
		return nil
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("failed to create line: %w", err)
	}
	line.Color = c
	p.Add(line)
	return nil
}

func peakAmplitude(samples []float64) float64 {
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	return peak
}

// binWidth is the envelope resolution in Hz
func binWidth(cfg analysis.Config) float64 {
	return float64(cfg.SampleRate) / 2 / float64(cfg.Bins())
}

func roundString(x float64, digits int) string {
	scale := math.Pow(10, float64(digits))
	return strconv.FormatFloat(math.Round(x*scale)/scale, 'f', -1, 64)
}
