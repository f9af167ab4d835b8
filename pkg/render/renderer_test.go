package render

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/RyanBlaney/digit-formants/pkg/audio/analysis"
	"github.com/RyanBlaney/digit-formants/pkg/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/plot"
)

type RendererTestSuite struct {
	suite.Suite
	renderer *Renderer
	samples  []float64
}

func (suite *RendererTestSuite) SetupSuite() {
	analyzer, err := analysis.NewAnalyzer(analysis.DefaultConfig(), nil)
	suite.Require().NoError(err)

	renderer, err := NewRenderer(analyzer, DefaultConfig(), nil)
	suite.Require().NoError(err)
	suite.renderer = renderer

	suite.samples = make([]float64, 4000)
	for i := range suite.samples {
		t := float64(i) / 8000
		suite.samples[i] = 0.5*math.Sin(2*math.Pi*700*t) + 0.3*math.Sin(2*math.Pi*1800*t)
	}
}

func (suite *RendererTestSuite) TestWaveformWithOverlays() {
	p, err := suite.renderer.Waveform(WaveformRequest{
		Samples: suite.samples,
		Overlays: []Overlay{
			{Kind: transcript.KindPhones, Depth: 0, Segments: []transcript.Segment{{Start: 0.1, End: 0.2, Label: "z"}}},
			{Kind: transcript.KindWords, Depth: 1, Segments: []transcript.Segment{{Start: 0.1, End: 0.3, Label: "zero"}}},
		},
	})
	suite.Require().NoError(err)

	suite.Equal("Raw wave form", p.Title.Text)
	suite.Equal(0.0, p.X.Min)
	suite.InDelta(3999.0/8000, p.X.Max, 1e-12)
	suite.InDelta(-p.Y.Max, p.Y.Min, 1e-12)
}

func (suite *RendererTestSuite) TestSpectrogramWithTrack() {
	p, err := suite.renderer.Spectrogram(context.Background(), SpectrogramRequest{
		Samples:  suite.samples,
		Range:    analysis.TimeRange{Start: 0.1, End: 0.4},
		Formants: true,
		Steps:    10,
	})
	suite.Require().NoError(err)
	suite.Equal(0.1, p.X.Min)
	suite.Equal(0.4, p.X.Max)
}

func (suite *RendererTestSuite) TestWindowedSamplesTitle() {
	p, err := suite.renderer.WindowedSamples(WindowedSamplesRequest{
		Samples: suite.samples,
		Range:   analysis.TimeRange{Start: 0.1, End: 0.3},
	})
	suite.Require().NoError(err)
	suite.Equal("Hamming Windowed samples of [0.1,0.3]", p.Title.Text)
}

func (suite *RendererTestSuite) TestMagnitudeSpectrum() {
	p, err := suite.renderer.MagnitudeSpectrum(MagnitudeSpectrumRequest{
		Samples: suite.samples,
		Range:   analysis.TimeRange{Start: 0.1, End: 0.3},
	})
	suite.Require().NoError(err)
	suite.Equal("Frequency [Hz]", p.X.Label.Text)

	_, err = suite.renderer.MagnitudeSpectrum(MagnitudeSpectrumRequest{
		Samples: make([]float64, 4000),
		Range:   analysis.TimeRange{Start: 0.1, End: 0.3},
		Eps:     0.1,
	})
	suite.NoError(err, "silence plots without formants")
}

func (suite *RendererTestSuite) TestSaveFigure() {
	wave, err := suite.renderer.Waveform(WaveformRequest{Samples: suite.samples})
	suite.Require().NoError(err)
	windowed, err := suite.renderer.WindowedSamples(WindowedSamplesRequest{
		Samples: suite.samples,
		Range:   analysis.TimeRange{Start: 0.1, End: 0.3},
	})
	suite.Require().NoError(err)

	path := filepath.Join(suite.T().TempDir(), "figures", "jackson.png")
	suite.Require().NoError(suite.renderer.SaveFigure(path, wave, windowed))

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.True(bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func (suite *RendererTestSuite) TestSaveFigureRejectsEmpty() {
	err := suite.renderer.SaveFigure(filepath.Join(suite.T().TempDir(), "empty.png"))
	suite.ErrorIs(err, ErrMissingParameter)
	suite.Contains(err.Error(), "plots")
}

func TestRendererTestSuite(t *testing.T) {
	suite.Run(t, new(RendererTestSuite))
}

func TestRequestValidation(t *testing.T) {
	samples := make([]float64, 100)
	valid := analysis.TimeRange{Start: 0, End: 0.01}

	tests := []struct {
		name    string
		req     interface{ Validate() error }
		wantErr error
		field   string
	}{
		{"waveform samples", &WaveformRequest{}, ErrMissingParameter, "samples"},
		{"waveform depth", &WaveformRequest{Samples: samples, Overlays: []Overlay{{Depth: -1}}}, ErrInvalidParameter, "overlays[0].depth"},
		{"spectrogram samples", &SpectrogramRequest{Range: valid}, ErrMissingParameter, "samples"},
		{"spectrogram range", &SpectrogramRequest{Samples: samples}, ErrMissingParameter, "range"},
		{"spectrogram reversed", &SpectrogramRequest{Samples: samples, Range: analysis.TimeRange{Start: 0.2, End: 0.1}}, analysis.ErrInvalidRange, "end must be after start"},
		{"windowed range", &WindowedSamplesRequest{Samples: samples}, ErrMissingParameter, "range"},
		{"magnitude eps", &MagnitudeSpectrumRequest{Samples: samples, Range: valid, Eps: -1}, ErrInvalidParameter, "eps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	assert.NoError(t, (&WaveformRequest{Samples: samples}).Validate())
}

func TestNewRendererValidation(t *testing.T) {
	_, err := NewRenderer(nil, DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrMissingParameter)

	analyzer, err := analysis.NewAnalyzer(analysis.DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = NewRenderer(analyzer, Config{WidthIn: 10}, nil)
	assert.ErrorIs(t, err, ErrMissingParameter)
}

func TestOverlayLevel(t *testing.T) {
	assert.Equal(t, 0.5, OverlayLevel(1, 0))
	assert.Equal(t, 0.25, OverlayLevel(1, 1))
	assert.Equal(t, 0.125, OverlayLevel(1, 2))
}

func TestSpectrogramGrid(t *testing.T) {
	result := &analysis.SpectrogramResult{
		Times:   []float64{0.1, 0.2, 0.3, 0.4},
		Freqs:   []float64{0, 100},
		PowerDB: [][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}},
	}

	grid := newSpectrogramGrid(result, 0.15, 0.35)
	c, r := grid.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 0.2, grid.X(0))
	assert.Equal(t, 6.0, grid.Z(1, 1))
	assert.Equal(t, 100.0, grid.Y(1))

	narrow := newSpectrogramGrid(result, 0.31, 0.33)
	c, _ = narrow.Dims()
	assert.Equal(t, 1, c)
	assert.Equal(t, 0.3, narrow.X(0))
}

func TestSaveFigureValidation(t *testing.T) {
	assert.ErrorIs(t, SaveFigure("", []*plot.Plot{plot.New()}, 100, 100), ErrMissingParameter)
	assert.ErrorIs(t, SaveFigure("x.png", []*plot.Plot{nil}, 100, 100), ErrMissingParameter)
	assert.ErrorIs(t, SaveFigure("x.png", []*plot.Plot{plot.New()}, 0, 100), ErrInvalidParameter)
}

func TestRoundString(t *testing.T) {
	assert.Equal(t, "0.123", roundString(0.12345, 3))
	assert.Equal(t, "0.1", roundString(0.1, 3))
}
