package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/stream/common"
	"github.com/RyanBlaney/sonido-sonar/transcode"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// Extensions decoded by the external normalising decoder
var transcodeExtensions = []string{".flac", ".m4a", ".aac"}

func decodeWAV(path string) (*common.AudioData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, NewDatasetError(path, ErrCodeUnsupported, "not a valid wav file", ErrUnsupportedFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, NewDatasetError(path, ErrCodeDecoding, "failed to read PCM buffer", err)
	}

	// 8-bit WAV is unsigned
	return intBufferToAudioData(buf, int(dec.BitDepth), dec.BitDepth == 8), nil
}

func decodeAIFF(path string) (*common.AudioData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, NewDatasetError(path, ErrCodeUnsupported, "not a valid aiff file", ErrUnsupportedFormat)
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil {
		return nil, NewDatasetError(path, ErrCodeUnsupported, "unsupported aiff layout", ErrUnsupportedFormat)
	}

	chunk := &audio.IntBuffer{Data: make([]int, 4096), Format: format}
	full := &audio.IntBuffer{Format: format}
	for {
		n, err := dec.PCMBuffer(chunk)
		full.Data = append(full.Data, chunk.Data[:n]...)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, NewDatasetError(path, ErrCodeDecoding, "failed to read PCM buffer", err)
		}
		if n == 0 || err != nil {
			break
		}
	}

	return intBufferToAudioData(full, int(dec.BitDepth), false), nil
}

func decodeMP3(path string) (*common.AudioData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		return nil, NewDatasetError(path, ErrCodeUnsupported, "not a valid mp3 stream", errors.Join(ErrUnsupportedFormat, err))
	}

	// go-mp3 always produces 16-bit little-endian stereo
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, NewDatasetError(path, ErrCodeDecoding, "failed to decode mp3 frames", err)
	}

	pcm := make([]float64, len(raw)/2)
	for i := range pcm {
		pcm[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768.0
	}
	return newAudioData(pcm, dec.SampleRate(), 2), nil
}

func decodeOgg(path string) (*common.AudioData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	samples, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, NewDatasetError(path, ErrCodeDecoding, "failed to decode ogg vorbis", errors.Join(ErrDecoding, err))
	}

	pcm := make([]float64, len(samples))
	for i, s := range samples {
		pcm[i] = float64(s)
	}
	return newAudioData(pcm, format.SampleRate, format.Channels), nil
}

// transcodeDecoder delegates to sonido-sonar's normalising decoder
type transcodeDecoder struct {
	contentType string
}

func (d *transcodeDecoder) DecodeFile(path string) (*common.AudioData, error) {
	anyData, err := transcode.NewNormalizingDecoder(d.contentType).DecodeFile(path)
	if err != nil {
		return nil, NewDatasetError(path, ErrCodeDecoding, "failed to decode audio file", errors.Join(ErrDecoding, err))
	}

	audioData := common.ConvertToAudioData(anyData)
	if audioData == nil {
		return nil, NewDatasetError(path, ErrCodeDecoding,
			fmt.Sprintf("decoder returned unexpected type: %T", anyData), ErrDecoding)
	}
	return audioData, nil
}

// intBufferToAudioData scales integer PCM of the given bit depth into [-1, 1)
func intBufferToAudioData(buf *audio.IntBuffer, bitDepth int, unsigned bool) *common.AudioData {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := math.Exp2(float64(bitDepth - 1))
	offset := 0
	if unsigned {
		offset = int(scale)
	}

	pcm := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		pcm[i] = float64(v-offset) / scale
	}

	var rate, channels int
	if buf.Format != nil {
		rate, channels = buf.Format.SampleRate, buf.Format.NumChannels
	}
	return newAudioData(pcm, rate, channels)
}

func newAudioData(pcm []float64, sampleRate, channels int) *common.AudioData {
	if channels < 1 {
		channels = 1
	}

	var duration time.Duration
	if sampleRate > 0 {
		frames := len(pcm) / channels
		duration = time.Duration(float64(frames) / float64(sampleRate) * float64(time.Second))
	}

	return &common.AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   channels,
		Duration:   duration,
	}
}
