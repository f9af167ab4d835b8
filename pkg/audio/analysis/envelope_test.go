package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEnvelopeSilence(t *testing.T) {
	cfg := DefaultConfig()
	samples := make([]float64, 200)

	env, err := ComputeEnvelope(samples, TimeRange{Start: 0, End: 0.025}, cfg)
	require.NoError(t, err)
	require.Len(t, env, 4000)

	// a silent segment fits A = [1, 0, ...]: the envelope is exactly flat
	for _, v := range env {
		assert.Equal(t, env[0], v)
	}
	assert.InDelta(t, 20.0, env[0], 1e-9)

	formants, err := FindFormants(env, cfg.MinFormantBin, cfg.MaxFormants)
	assert.ErrorIs(t, err, ErrInsufficientPeaks)
	assert.NotNil(t, formants)
	assert.Empty(t, formants)
}

func TestComputeEnvelopeLongSilence(t *testing.T) {
	cfg := DefaultConfig()

	env, err := ComputeEnvelope(make([]float64, 8000), TimeRange{Start: 0, End: 0.2}, cfg)
	require.NoError(t, err)

	formants, err := FindFormants(env, cfg.MinFormantBin, cfg.MaxFormants)
	assert.ErrorIs(t, err, ErrInsufficientPeaks)
	assert.Empty(t, formants)
}

func TestComputeEnvelopePureTone(t *testing.T) {
	cfg := DefaultConfig()
	samples := tone(1600, cfg.SampleRate, []float64{1000}, []float64{0.5}, 0, 1)

	env, err := ComputeEnvelope(samples, TimeRange{Start: 0, End: 0.2}, cfg)
	require.NoError(t, err)
	require.Len(t, env, 4000)

	peak := argmax(env)
	assert.InDelta(t, 1000, peak, 20)
	assert.InDelta(t, 20.0, env[peak], 1e-9)

	for _, v := range env {
		assert.GreaterOrEqual(t, v, cfg.FloorDB)
	}

	formants, err := FindFormants(env, cfg.MinFormantBin, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1000, formants[0].Bin, 20)
}

func TestComputeEnvelopeNoisyTone(t *testing.T) {
	cfg := DefaultConfig()
	samples := tone(8000, cfg.SampleRate, []float64{1000}, []float64{0.5}, 0.05, 1)

	env, err := ComputeEnvelope(samples, TimeRange{Start: 0, End: 0.2}, cfg)
	require.NoError(t, err)
	require.Len(t, env, 4000)

	peak := argmax(env)
	assert.InDelta(t, 1000, env.BinFrequency(peak, cfg.SampleRate), 20)
	assert.InDelta(t, 20.0, env[peak], 1e-9, "maximum is normalised to 20*log10(eps)")

	for _, v := range env {
		assert.GreaterOrEqual(t, v, cfg.FloorDB)
		assert.LessOrEqual(t, v, 20.0+1e-9)
	}

	formants, err := FindFormants(env, cfg.MinFormantBin, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1000, formants[0].Bin, 20)
}

func TestComputeEnvelopeErrors(t *testing.T) {
	cfg := DefaultConfig()
	samples := make([]float64, 100)

	_, err := ComputeEnvelope(samples, TimeRange{Start: 0.2, End: 0.1}, cfg)
	assert.ErrorIs(t, err, ErrInvalidRange)

	// 0.001 s is 8 samples, fewer than order+1
	_, err = ComputeEnvelope(samples, TimeRange{Start: 0, End: 0.001}, cfg)
	assert.ErrorIs(t, err, ErrInsufficientSamples)
}

func TestAllPoleDecibelsFloor(t *testing.T) {
	env := allPoleDecibels([]float64{1, 1e9, 2}, DefaultEps, DefaultFloorDB)

	require.Len(t, env, 3)
	assert.InDelta(t, 20.0, env[0], 1e-9)
	assert.Equal(t, DefaultFloorDB, env[1])
	assert.InDelta(t, 20-20*0.30102999566398, env[2], 1e-9)
}

func TestAllPoleDecibelsZeroDenominator(t *testing.T) {
	env := allPoleDecibels([]float64{0, 1, 0}, DefaultEps, DefaultFloorDB)

	assert.InDelta(t, 20.0, env[0], 1e-9)
	assert.Equal(t, DefaultFloorDB, env[1])
	assert.InDelta(t, 20.0, env[2], 1e-9)
}

func TestDenominatorResponse(t *testing.T) {
	// A(z) = 1 - z^-1 vanishes at DC and peaks at 2 near Nyquist
	mags := denominatorResponse([]float64{1, -1}, 4)

	require.Len(t, mags, 4)
	assert.InDelta(t, 0, mags[0], 1e-12)
	for k := 1; k < len(mags); k++ {
		assert.Greater(t, mags[k], mags[k-1])
	}

	// models longer than the grid are fine
	direct := denominatorResponse([]float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0.5}, 2)
	require.Len(t, direct, 2)
	assert.InDelta(t, 1.5, direct[0], 1e-12)
}

func TestDenominatorResponseFlatModel(t *testing.T) {
	mags := denominatorResponse([]float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, 4000)

	require.Len(t, mags, 4000)
	for _, m := range mags {
		assert.Equal(t, 1.0, m)
	}
}

func TestBinFrequency(t *testing.T) {
	env := make(Envelope, 4000)
	assert.Equal(t, 1000.0, env.BinFrequency(1000, 8000))
	assert.Equal(t, 0.0, Envelope(nil).BinFrequency(10, 8000))
}
