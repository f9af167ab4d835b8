package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamps(t *testing.T) {
	samples := make([]float64, 1600)
	ts := Timestamps(samples, DefaultSampleRate)

	require.Len(t, ts, 1600)
	assert.Equal(t, 0.0, ts[0])
	assert.InDelta(t, 1599.0/8000.0, ts[len(ts)-1], 1e-12)

	for i := 1; i < len(ts); i++ {
		assert.GreaterOrEqual(t, ts[i], ts[i-1])
		assert.InDelta(t, 1.0/8000.0, ts[i]-ts[i-1], 1e-12)
	}
}

func TestTimestampsEdgeCases(t *testing.T) {
	assert.Empty(t, Timestamps(nil, DefaultSampleRate))
	assert.Equal(t, []float64{0}, Timestamps([]float64{0.3}, DefaultSampleRate))
}

func TestSampleIndexRoundsHalfToEven(t *testing.T) {
	tests := []struct {
		seconds float64
		rate    int
		want    int
	}{
		{0.1, 8000, 800},
		{0.3, 8000, 2400},
		{0.5, 1, 0},
		{1.5, 1, 2},
		{2.5, 1, 2},
	}

	for _, tt := range tests {
		if got := SampleIndex(tt.seconds, tt.rate); got != tt.want {
			t.Errorf("SampleIndex(%v, %d): want %d, got %d", tt.seconds, tt.rate, tt.want, got)
		}
	}
}

func TestTimeRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       TimeRange
		wantErr bool
	}{
		{"valid", TimeRange{0.1, 0.3}, false},
		{"from zero", TimeRange{0, 0.2}, false},
		{"reversed", TimeRange{0.3, 0.1}, true},
		{"empty", TimeRange{0.2, 0.2}, true},
		{"negative", TimeRange{-0.1, 0.2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidRange), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
