package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/RyanBlaney/digit-formants/pkg/audio/analysis"
	"github.com/RyanBlaney/digit-formants/pkg/dataset"
	"github.com/RyanBlaney/digit-formants/pkg/render"
	"github.com/RyanBlaney/digit-formants/pkg/transcript"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"gonum.org/v1/plot"
)

// Target selects a time range of one recording
type Target struct {
	Speaker string             `json:"speaker" yaml:"speaker"`
	File    string             `json:"file" yaml:"file"`
	Range   analysis.TimeRange `json:"range" yaml:"range"`
}

func (t Target) Validate() error {
	if t.Speaker == "" {
		return fmt.Errorf("speaker is required")
	}
	if t.File == "" {
		return fmt.Errorf("file is required")
	}
	return t.Range.Validate()
}

// IndexReport summarises the loaded corpus
type IndexReport struct {
	Root       string             `json:"root"`
	Recordings int                `json:"recordings"`
	Speakers   []string           `json:"speakers"`
	Entries    []RecordingSummary `json:"entries,omitempty"`
}

// RecordingSummary describes one indexed recording
type RecordingSummary struct {
	Speaker  string  `json:"speaker"`
	Split    string  `json:"split"`
	File     string  `json:"file"`
	Duration float64 `json:"duration_seconds"`
}

// FormantReport is the result of the formants command
type FormantReport struct {
	Speaker     string              `json:"speaker"`
	Split       string              `json:"split"`
	File        string              `json:"file"`
	Start       float64             `json:"start"`
	End         float64             `json:"end"`
	Frequencies []float64           `json:"frequencies_hz"`
	Formants    analysis.FormantSet `json:"formants"`
	Complete    bool                `json:"complete"`
	Reference   []float64           `json:"reference_hz,omitempty"`
}

// EnvelopeReport is the result of the envelope command
type EnvelopeReport struct {
	Speaker  string            `json:"speaker"`
	File     string            `json:"file"`
	Start    float64           `json:"start"`
	End      float64           `json:"end"`
	Bins     int               `json:"bins"`
	PeakBin  int               `json:"peak_bin"`
	PeakDB   float64           `json:"peak_db"`
	Envelope analysis.Envelope `json:"envelope,omitempty"`
}

// WindowReport is the result of the window command
type WindowReport struct {
	Speaker    string  `json:"speaker"`
	File       string  `json:"file"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	StartIndex int     `json:"start_index"`
	Samples    int     `json:"samples"`
	WAVFile    string  `json:"wav_file,omitempty"`
}

// TrackReport is the result of the track command
type TrackReport struct {
	Speaker string             `json:"speaker"`
	File    string             `json:"file"`
	Start   float64            `json:"start"`
	End     float64            `json:"end"`
	Points  []TrackPointReport `json:"points"`
}

// TrackPointReport holds the formants of one sub-range
type TrackPointReport struct {
	Time        float64   `json:"time"`
	Frequencies []float64 `json:"frequencies_hz"`
}

// PlotRequest selects the panels of a figure
type PlotRequest struct {
	Target
	Phones      bool
	Words       bool
	Spectrogram bool
	Output      string
}

// PlotReport is the result of the plot command
type PlotReport struct {
	Output   string   `json:"output"`
	Panels   []string `json:"panels"`
	Overlays []string `json:"overlays,omitempty"`
}

// ListRecordings loads the corpus and summarises it
func (app *FormantApp) ListRecordings(ctx context.Context) (*IndexReport, error) {
	index, err := app.Index(ctx)
	if err != nil {
		return nil, err
	}

	report := &IndexReport{
		Root:       index.Config().AudioRoot(),
		Recordings: index.Len(),
		Speakers:   index.Speakers(),
	}

	if app.ctx.Verbose {
		for _, key := range index.Keys() {
			entry, err := index.Get(key)
			if err != nil {
				return nil, err
			}
			report.Entries = append(report.Entries, RecordingSummary{
				Speaker:  key.Speaker,
				Split:    key.Split,
				File:     key.File,
				Duration: entry.Duration,
			})
		}
	}

	return report, nil
}

// lookup validates t and returns the recording it names
func (app *FormantApp) lookup(ctx context.Context, t Target) (*dataset.Entry, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	index, err := app.Index(ctx)
	if err != nil {
		return nil, err
	}
	return index.Lookup(t.Speaker, t.File)
}

// Formants computes the formants of the target range. With crosscheck an
// autocorrelation-method estimate is reported alongside; a partial estimate
// is kept and logged.
func (app *FormantApp) Formants(ctx context.Context, t Target, crosscheck bool) (*FormantReport, error) {
	entry, err := app.lookup(ctx, t)
	if err != nil {
		return nil, err
	}

	result, err := app.analyzer.Formants(entry.Samples, t.Range)
	if err != nil {
		return nil, fmt.Errorf("formant analysis of %s failed: %w", entry.Key, err)
	}

	report := &FormantReport{
		Speaker:     entry.Speaker,
		Split:       entry.Split,
		File:        entry.File,
		Start:       t.Range.Start,
		End:         t.Range.End,
		Frequencies: result.Frequencies(),
		Formants:    result.Formants,
		Complete:    result.Complete,
	}

	if crosscheck {
		reference, err := app.analyzer.ReferenceFormants(entry.Samples, t.Range)
		if err != nil {
			app.logger.Warn("Reference formant estimate incomplete", logging.Fields{
				"recording": entry.Key.String(),
				"found":     len(reference),
				"error":     err.Error(),
			})
		}
		report.Reference = reference
	}

	return report, nil
}

// Envelope computes the LPC envelope of the target range. The full curve is
// only included in verbose mode.
func (app *FormantApp) Envelope(ctx context.Context, t Target) (*EnvelopeReport, error) {
	entry, err := app.lookup(ctx, t)
	if err != nil {
		return nil, err
	}

	env, err := app.analyzer.Envelope(entry.Samples, t.Range)
	if err != nil {
		return nil, fmt.Errorf("envelope of %s failed: %w", entry.Key, err)
	}

	report := &EnvelopeReport{
		Speaker: entry.Speaker,
		File:    entry.File,
		Start:   t.Range.Start,
		End:     t.Range.End,
		Bins:    len(env),
	}
	for i, db := range env {
		if i == 0 || db > report.PeakDB {
			report.PeakBin, report.PeakDB = i, db
		}
	}
	if app.ctx.Verbose {
		report.Envelope = env
	}

	return report, nil
}

// Window extracts the windowed target range, optionally exporting it as WAV
func (app *FormantApp) Window(ctx context.Context, t Target, wavPath string) (*WindowReport, error) {
	entry, err := app.lookup(ctx, t)
	if err != nil {
		return nil, err
	}

	windowed, err := app.analyzer.Window(entry.Samples, t.Range)
	if err != nil {
		return nil, fmt.Errorf("windowing %s failed: %w", entry.Key, err)
	}

	startIndex, _ := t.Range.Indices(app.config.Analysis.SampleRate)
	report := &WindowReport{
		Speaker:    entry.Speaker,
		File:       entry.File,
		Start:      t.Range.Start,
		End:        t.Range.End,
		StartIndex: startIndex,
		Samples:    len(windowed),
	}

	if wavPath != "" {
		if err := dataset.WriteWAV(wavPath, windowed, app.config.Analysis.SampleRate); err != nil {
			return nil, fmt.Errorf("failed to export window: %w", err)
		}
		report.WAVFile = wavPath
	}

	return report, nil
}

// Track computes the formant track of the target range. steps of zero uses
// the configured track steps.
func (app *FormantApp) Track(ctx context.Context, t Target, steps int) (*TrackReport, error) {
	entry, err := app.lookup(ctx, t)
	if err != nil {
		return nil, err
	}
	if steps == 0 {
		steps = app.config.Analysis.TrackSteps
	}

	points, err := app.analyzer.FormantTrackSteps(ctx, entry.Samples, t.Range, steps)
	if err != nil {
		return nil, err
	}

	report := &TrackReport{
		Speaker: entry.Speaker,
		File:    entry.File,
		Start:   t.Range.Start,
		End:     t.Range.End,
		Points:  make([]TrackPointReport, len(points)),
	}
	binHz := float64(app.config.Analysis.SampleRate) / 2 / float64(app.config.Analysis.Bins())
	for i, pt := range points {
		freqs := make([]float64, len(pt.Formants))
		for j, f := range pt.Formants {
			freqs[j] = float64(f.Bin) * binHz
		}
		report.Points[i] = TrackPointReport{Time: pt.Time, Frequencies: freqs}
	}

	return report, nil
}

// Plot renders the waveform, windowed samples and magnitude spectrum of the
// target into one PNG, with an optional spectrogram panel.
func (app *FormantApp) Plot(ctx context.Context, req PlotRequest) (*PlotReport, error) {
	if req.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}
	entry, err := app.lookup(ctx, req.Target)
	if err != nil {
		return nil, err
	}

	report := &PlotReport{Output: req.Output}

	var overlays []render.Overlay
	for _, kind := range requestedKinds(req) {
		segments, err := transcript.Load(app.config.TranscriptDir(), app.config.Transcript.Model, kind, entry.UtteranceID())
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				app.logger.Warn("Transcript not found, skipping overlay", logging.Fields{
					"kind":  string(kind),
					"model": app.config.Transcript.Model,
				})
				continue
			}
			return nil, err
		}
		overlays = append(overlays, render.Overlay{Kind: kind, Segments: segments, Depth: len(overlays)})
		report.Overlays = append(report.Overlays, string(kind))
	}

	var plots []*plot.Plot
	wave, err := app.renderer.Waveform(render.WaveformRequest{
		Samples:  entry.Samples,
		Title:    fmt.Sprintf("%s: %s", titleCaser.String(entry.Speaker), entry.File),
		Overlays: overlays,
	})
	if err != nil {
		return nil, err
	}
	plots = append(plots, wave)
	report.Panels = append(report.Panels, "waveform")

	if req.Spectrogram {
		sgram, err := app.renderer.Spectrogram(ctx, render.SpectrogramRequest{
			Samples:  entry.Samples,
			Range:    req.Range,
			Formants: true,
		})
		if err != nil {
			return nil, err
		}
		plots = append(plots, sgram)
		report.Panels = append(report.Panels, "spectrogram")
	}

	windowed, err := app.renderer.WindowedSamples(render.WindowedSamplesRequest{Samples: entry.Samples, Range: req.Range})
	if err != nil {
		return nil, err
	}
	spectrum, err := app.renderer.MagnitudeSpectrum(render.MagnitudeSpectrumRequest{Samples: entry.Samples, Range: req.Range})
	if err != nil {
		return nil, err
	}
	plots = append(plots, windowed, spectrum)
	report.Panels = append(report.Panels, "windowed_samples", "magnitude_spectrum")

	if err := app.renderer.SaveFigure(req.Output, plots...); err != nil {
		return nil, err
	}
	return report, nil
}

func requestedKinds(req PlotRequest) []transcript.Kind {
	var kinds []transcript.Kind
	if req.Phones {
		kinds = append(kinds, transcript.KindPhones)
	}
	if req.Words {
		kinds = append(kinds, transcript.KindWords)
	}
	return kinds
}
