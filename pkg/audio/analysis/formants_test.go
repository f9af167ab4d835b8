package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spikyEnvelope(n int, spikes map[int]float64) Envelope {
	env := make(Envelope, n)
	for i := range env {
		env[i] = -100
	}
	for bin, db := range spikes {
		env[bin] = db
	}
	return env
}

func TestFindFormantsSelection(t *testing.T) {
	env := spikyEnvelope(1000, map[int]float64{
		50:  0,  // below the minimum bin
		90:  3,  // at the minimum bin, still excluded
		95:  -10,
		200: -5,
		500: -5,
		900: -20,
	})

	formants, err := FindFormants(env, DefaultMinFormantBin, DefaultMaxFormants)
	require.NoError(t, err)

	// strongest first, equal magnitudes by ascending bin
	assert.Equal(t, []int{200, 500, 95}, formants.Bins())
	assert.Equal(t, []int{95, 200, 500}, formants.ByFrequency().Bins())
	assert.Equal(t, []int{200, 500, 95}, formants.Bins(), "ByFrequency must not reorder the receiver")
}

func TestFindFormantsNeverBelowMinimumBin(t *testing.T) {
	spikes := map[int]float64{}
	for bin := 2; bin <= 90; bin += 4 {
		spikes[bin] = 10
	}
	spikes[300] = -50
	spikes[600] = -60
	spikes[700] = -70
	env := spikyEnvelope(4000, spikes)

	formants, err := FindFormants(env, DefaultMinFormantBin, DefaultMaxFormants)
	require.NoError(t, err)

	for _, f := range formants {
		assert.Greater(t, f.Bin, DefaultMinFormantBin)
	}
	assert.Equal(t, []int{300, 600, 700}, formants.Bins())
}

func TestFindFormantsBoundariesAndPlateaus(t *testing.T) {
	env := spikyEnvelope(500, map[int]float64{
		300: 0,
		301: 0, // plateau: neither bin is a strict maximum
		499: 50,
	})

	formants, err := FindFormants(env, DefaultMinFormantBin, DefaultMaxFormants)
	assert.ErrorIs(t, err, ErrInsufficientPeaks)
	assert.Empty(t, formants)
}

func TestFindFormantsPartialSet(t *testing.T) {
	env := spikyEnvelope(1000, map[int]float64{
		150: -30,
		400: -10,
	})

	formants, err := FindFormants(env, DefaultMinFormantBin, DefaultMaxFormants)
	require.ErrorIs(t, err, ErrInsufficientPeaks)

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, ErrCodeInsufficientPeaks, analysisErr.Code)

	assert.Equal(t, FormantSet{{Bin: 400, DB: -10}, {Bin: 150, DB: -30}}, formants)
}

func TestFindFormantsReturnsExactlyCount(t *testing.T) {
	spikes := map[int]float64{}
	for bin := 100; bin < 1000; bin += 50 {
		spikes[bin] = -float64(bin) / 100
	}
	env := spikyEnvelope(1000, spikes)

	formants, err := FindFormants(env, DefaultMinFormantBin, DefaultMaxFormants)
	require.NoError(t, err)
	assert.Len(t, formants, 3)
	assert.Equal(t, []int{100, 150, 200}, formants.Bins())
}
