package analysis

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AnalyzerTestSuite struct {
	suite.Suite
	analyzer *Analyzer
	vowel    []float64
	silence  []float64
}

func (suite *AnalyzerTestSuite) SetupSuite() {
	analyzer, err := NewAnalyzer(DefaultConfig(), nil)
	suite.Require().NoError(err)
	suite.analyzer = analyzer

	// three resonances standing in for F1, F2, F3
	suite.vowel = tone(8000, DefaultSampleRate,
		[]float64{700, 1200, 2600},
		[]float64{0.5, 0.4, 0.3},
		0.02, 11)
	suite.silence = make([]float64, 8000)
}

func (suite *AnalyzerTestSuite) TestNewAnalyzerRejectsInvalidConfig() {
	cfg := DefaultConfig()
	cfg.LPCOrder = 0

	analyzer, err := NewAnalyzer(cfg, nil)
	suite.Nil(analyzer)
	suite.ErrorIs(err, ErrMissingParameter)
	suite.Contains(err.Error(), "lpc_order")
}

func (suite *AnalyzerTestSuite) TestTimestamps() {
	ts := suite.analyzer.Timestamps(suite.vowel)
	suite.Len(ts, len(suite.vowel))
	suite.InDelta(7999.0/8000, ts[len(ts)-1], 1e-12)
}

func (suite *AnalyzerTestSuite) TestFormants() {
	result, err := suite.analyzer.Formants(suite.vowel, TimeRange{Start: 0.1, End: 0.3})
	suite.Require().NoError(err)

	suite.True(result.Complete)
	suite.Len(result.Envelope, 4000)
	suite.Require().Len(result.Formants, 3)

	byFreq := result.Formants.ByFrequency()
	expected := []int{700, 1200, 2600}
	for i, f := range byFreq {
		suite.InDelta(expected[i], f.Bin, 30, "F%d", i+1)
	}

	freqs := result.Frequencies()
	suite.Len(freqs, 3)
	for i, f := range result.Formants {
		suite.Equal(float64(f.Bin), freqs[i])
	}
}

func (suite *AnalyzerTestSuite) TestFormantsOnSilence() {
	result, err := suite.analyzer.Formants(suite.silence, TimeRange{Start: 0, End: 0.2})
	suite.Require().NoError(err)

	suite.False(result.Complete)
	suite.NotNil(result.Formants)
	suite.Empty(result.Formants)
	for _, v := range result.Envelope {
		suite.InDelta(20.0, v, 1e-9)
	}
}

func (suite *AnalyzerTestSuite) TestFormantsInvalidRange() {
	_, err := suite.analyzer.Formants(suite.vowel, TimeRange{Start: 0.3, End: 0.1})
	suite.ErrorIs(err, ErrInvalidRange)
}

func (suite *AnalyzerTestSuite) TestWindow() {
	windowed, err := suite.analyzer.Window(suite.vowel, TimeRange{Start: 0.1, End: 0.3})
	suite.Require().NoError(err)
	suite.Len(windowed, 1600)

	raw, err := suite.analyzer.Extract(suite.vowel, TimeRange{Start: 0.1, End: 0.3})
	suite.Require().NoError(err)
	suite.Equal(PreemphasizeAndWindow(raw, DefaultPreEmphasis), windowed)
}

func (suite *AnalyzerTestSuite) TestFormantTrack() {
	points, err := suite.analyzer.FormantTrack(context.Background(), suite.vowel, TimeRange{Start: 0, End: 1})
	suite.Require().NoError(err)
	suite.Len(points, DefaultTrackSteps)

	points, err = suite.analyzer.FormantTrackSteps(context.Background(), suite.vowel, TimeRange{Start: 0, End: 1}, 8)
	suite.Require().NoError(err)
	suite.Len(points, 8)
}

func (suite *AnalyzerTestSuite) TestSpectra() {
	sgram, err := suite.analyzer.Spectrogram(suite.vowel)
	suite.Require().NoError(err)
	suite.Equal(DefaultSpectrogramNFFT, sgram.NFFT)
	suite.Equal(DefaultSampleRate, sgram.SampleRate)

	windowed, err := suite.analyzer.Window(suite.vowel, TimeRange{Start: 0.1, End: 0.3})
	suite.Require().NoError(err)

	mag, err := suite.analyzer.MagnitudeSpectrum(windowed)
	suite.Require().NoError(err)
	suite.Len(mag.MagnitudeDB, 801)
}

func (suite *AnalyzerTestSuite) TestReferenceFormantsAgreeWithBurg() {
	r := TimeRange{Start: 0.1, End: 0.3}

	result, err := suite.analyzer.Formants(suite.vowel, r)
	suite.Require().NoError(err)

	reference, err := suite.analyzer.ReferenceFormants(suite.vowel, r)
	suite.Require().NoError(err)
	suite.Require().Len(reference, 3)
	suite.True(sort.Float64sAreSorted(reference))

	for i, f := range result.Formants.ByFrequency() {
		suite.InDelta(float64(f.Bin), reference[i], 50, "F%d", i+1)
	}
	for i, expected := range []float64{700, 1200, 2600} {
		suite.InDelta(expected, reference[i], 50, "F%d", i+1)
	}
}

func (suite *AnalyzerTestSuite) TestReferenceFormantsOnSilence() {
	reference, err := suite.analyzer.ReferenceFormants(suite.silence, TimeRange{Start: 0, End: 0.2})
	suite.ErrorIs(err, ErrInsufficientPeaks)
	suite.Empty(reference)
}

func (suite *AnalyzerTestSuite) TestReferenceFormantsShortSegment() {
	// 0.0005 s is 4 samples
	_, err := suite.analyzer.ReferenceFormants(suite.vowel, TimeRange{Start: 0.1, End: 0.1005})
	suite.ErrorIs(err, ErrInsufficientSamples)
}

func TestAnalyzerTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyzerTestSuite))
}

func TestAnalyzerConfigIsCopied(t *testing.T) {
	cfg := DefaultConfig()
	analyzer, err := NewAnalyzer(cfg, nil)
	require.NoError(t, err)

	cfg.LPCOrder = 20
	assert.Equal(t, DefaultLPCOrder, analyzer.Config().LPCOrder)
}
