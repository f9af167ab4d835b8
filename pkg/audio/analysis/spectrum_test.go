package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectrogramShape(t *testing.T) {
	samples := tone(8000, DefaultSampleRate, []float64{1000}, []float64{0.5}, 0, 1)

	sgram, err := Spectrogram(samples, DefaultSampleRate, DefaultSpectrogramNFFT, DefaultSpectrogramOverlap)
	require.NoError(t, err)

	assert.Len(t, sgram.Times, 61)
	assert.Len(t, sgram.Freqs, 129)
	require.Len(t, sgram.PowerDB, 61)
	assert.Equal(t, 4000.0, sgram.Freqs[128])
	assert.InDelta(t, 128.0/8000, sgram.Times[0], 1e-12)

	for _, row := range sgram.PowerDB {
		require.Len(t, row, 129)
		// 1000 Hz falls exactly on bin 32 at 31.25 Hz resolution
		assert.Equal(t, 32, argmax(row))
	}
}

func TestSpectrogramShortInput(t *testing.T) {
	sgram, err := Spectrogram(make([]float64, 100), DefaultSampleRate, DefaultSpectrogramNFFT, DefaultSpectrogramOverlap)
	require.NoError(t, err)

	assert.Len(t, sgram.PowerDB, 1)
	for _, v := range sgram.PowerDB[0] {
		assert.Equal(t, spectrumFloorDB, v)
	}
}

func TestSpectrogramInvalidParameters(t *testing.T) {
	samples := make([]float64, 1000)

	_, err := Spectrogram(samples, DefaultSampleRate, 256, 256)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Spectrogram(samples, DefaultSampleRate, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Spectrogram(nil, DefaultSampleRate, 256, 128)
	assert.ErrorIs(t, err, ErrInsufficientSamples)
}

func TestMagnitudeSpectrum(t *testing.T) {
	segment := tone(800, DefaultSampleRate, []float64{1000}, []float64{0.5}, 0, 1)

	sgram, err := MagnitudeSpectrum(segment, DefaultSampleRate)
	require.NoError(t, err)

	require.Len(t, sgram.Freqs, 401)
	require.Len(t, sgram.MagnitudeDB, 401)
	assert.Equal(t, 100, argmax(sgram.MagnitudeDB))
	assert.Equal(t, 1000.0, sgram.Freqs[100])

	for _, v := range sgram.MagnitudeDB {
		assert.GreaterOrEqual(t, v, spectrumFloorDB)
	}

	_, err = MagnitudeSpectrum(nil, DefaultSampleRate)
	assert.ErrorIs(t, err, ErrInsufficientSamples)
}
