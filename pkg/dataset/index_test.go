package dataset

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func sine(n int, freq float64, sampleRate int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

type IndexTestSuite struct {
	suite.Suite
	root  string
	index *Index
}

func (suite *IndexTestSuite) SetupTest() {
	suite.root = suite.T().TempDir()
	audio := filepath.Join(suite.root, DefaultAudioDir)

	files := map[string]int{
		"train/jackson/0_jackson_0.wav": 4000,
		"train/jackson/1_jackson_0.wav": 3000,
		"test/nicolas/2_nicolas_1.wav":  2000,
	}
	for rel, n := range files {
		suite.Require().NoError(WriteWAV(filepath.Join(audio, rel), sine(n, 440, DefaultSampleRate), DefaultSampleRate))
	}
	suite.Require().NoError(os.WriteFile(filepath.Join(audio, "train", "jackson", "notes.txt"), []byte("x"), 0644))

	index, err := NewIndex(DefaultConfig(suite.root), nil)
	suite.Require().NoError(err)
	suite.Require().NoError(index.Build(context.Background()))
	suite.index = index
}

func (suite *IndexTestSuite) TestBuild() {
	suite.Equal(3, suite.index.Len())
	suite.Equal([]string{"jackson", "nicolas"}, suite.index.Speakers())
	suite.Equal([]Key{
		{Speaker: "nicolas", Split: "test", File: "2_nicolas_1.wav"},
		{Speaker: "jackson", Split: "train", File: "0_jackson_0.wav"},
		{Speaker: "jackson", Split: "train", File: "1_jackson_0.wav"},
	}, suite.index.Keys())
}

func (suite *IndexTestSuite) TestGet() {
	entry, err := suite.index.Get(Key{Speaker: "jackson", Split: "train", File: "0_jackson_0.wav"})
	suite.Require().NoError(err)

	suite.Len(entry.Samples, 4000)
	suite.Equal(DefaultSampleRate, entry.SampleRate)
	suite.InDelta(0.5, entry.Duration, 1e-12)

	expected := sine(4000, 440, DefaultSampleRate)
	for i := range expected {
		suite.InDelta(expected[i], entry.Samples[i], 1e-3)
	}
}

func (suite *IndexTestSuite) TestSamplesResolvesSplit() {
	split, err := suite.index.SplitOf("nicolas")
	suite.Require().NoError(err)
	suite.Equal("test", split)

	samples, err := suite.index.Samples("nicolas", "2_nicolas_1.wav")
	suite.Require().NoError(err)
	suite.Len(samples, 2000)
}

func (suite *IndexTestSuite) TestNotFound() {
	_, err := suite.index.Get(Key{Speaker: "jackson", Split: "test", File: "0_jackson_0.wav"})
	suite.ErrorIs(err, ErrNotFound)

	_, err = suite.index.SplitOf("theo")
	suite.ErrorIs(err, ErrNotFound)

	_, err = suite.index.Samples("jackson", "9_jackson_0.wav")
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *IndexTestSuite) TestPutOverwrites() {
	key := Key{Speaker: "jackson", Split: "train", File: "0_jackson_0.wav"}
	suite.index.Put(key, make([]float64, 80))

	entry, err := suite.index.Get(key)
	suite.Require().NoError(err)
	suite.Len(entry.Samples, 80)
	suite.InDelta(0.01, entry.Duration, 1e-12)
	suite.Equal(3, suite.index.Len())
}

func (suite *IndexTestSuite) TestRebuildKeepsEntries() {
	suite.Require().NoError(suite.index.Build(context.Background()))
	suite.Equal(3, suite.index.Len())
}

func TestIndexTestSuite(t *testing.T) {
	suite.Run(t, new(IndexTestSuite))
}

func TestBuildMissingRoot(t *testing.T) {
	index, err := NewIndex(DefaultConfig(t.TempDir()), nil)
	require.NoError(t, err)

	err = index.Build(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewIndexInvalidConfig(t *testing.T) {
	cfg := DefaultConfig("")
	_, err := NewIndex(cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultConfig(t.TempDir())
	cfg.Concurrency = 0
	_, err = NewIndex(cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUtteranceID(t *testing.T) {
	key := Key{Speaker: "jackson", Split: "train", File: "0_jackson_0.wav"}
	assert.Equal(t, "jackson_0_jackson_0", key.UtteranceID())
	assert.Equal(t, "train/jackson/0_jackson_0.wav", key.String())
}
