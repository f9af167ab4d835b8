package dataset

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/RyanBlaney/latency-benchmark-common/stream/common"
)

// Decoder decodes an audio file into interleaved PCM in [-1, 1]
type Decoder interface {
	DecodeFile(path string) (*common.AudioData, error)
}

// DecoderFunc adapts a plain function to Decoder
type DecoderFunc func(path string) (*common.AudioData, error)

func (f DecoderFunc) DecodeFile(path string) (*common.AudioData, error) {
	return f(path)
}

// Registry maps file extensions to decoders
type Registry struct {
	decoders map[string]func() Decoder
	mu       sync.RWMutex
}

// NewRegistry creates a registry with the built-in decoders. Extensions
// without a native Go decoder go through the sonido-sonar normalising
// decoder with the given content type.
func NewRegistry(contentType string) *Registry {
	r := &Registry{
		decoders: make(map[string]func() Decoder),
	}

	r.RegisterDecoderFactory(".wav", func() Decoder { return DecoderFunc(decodeWAV) })
	r.RegisterDecoderFactory(".aif", func() Decoder { return DecoderFunc(decodeAIFF) })
	r.RegisterDecoderFactory(".aiff", func() Decoder { return DecoderFunc(decodeAIFF) })
	r.RegisterDecoderFactory(".mp3", func() Decoder { return DecoderFunc(decodeMP3) })
	r.RegisterDecoderFactory(".ogg", func() Decoder { return DecoderFunc(decodeOgg) })

	for _, ext := range transcodeExtensions {
		r.RegisterDecoderFactory(ext, func() Decoder {
			return &transcodeDecoder{contentType: contentType}
		})
	}

	return r
}

// RegisterDecoderFactory registers or replaces the decoder for ext
func (r *Registry) RegisterDecoderFactory(ext string, factory func() Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decoders[normalizeExt(ext)] = factory
}

// DecoderFor returns the decoder registered for the extension of path
func (r *Registry) DecoderFor(path string) (Decoder, error) {
	ext := normalizeExt(filepath.Ext(path))

	r.mu.RLock()
	factory, exists := r.decoders[ext]
	r.mu.RUnlock()

	if !exists {
		return nil, NewDatasetError(path, ErrCodeUnsupported,
			fmt.Sprintf("no decoder for extension %q", ext), ErrUnsupportedFormat)
	}
	return factory(), nil
}

// Supports reports whether path has a registered extension
func (r *Registry) Supports(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.decoders[normalizeExt(filepath.Ext(path))]
	return ok
}

// SupportedExtensions returns the registered extensions, sorted
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.decoders))
	for ext := range r.decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Load decodes path and returns mono samples at sampleRate
func (r *Registry) Load(path string, sampleRate int) ([]float64, error) {
	decoder, err := r.DecoderFor(path)
	if err != nil {
		return nil, err
	}

	audio, err := decoder.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	if audio.SampleRate <= 0 {
		return nil, NewDatasetError(path, ErrCodeDecoding,
			fmt.Sprintf("decoder reported sample rate %d", audio.SampleRate), ErrDecoding)
	}

	mono := toMono(audio.PCM, audio.Channels)
	samples, err := resample(mono, audio.SampleRate, sampleRate)
	if err != nil {
		return nil, NewDatasetError(path, ErrCodeDecoding, "resampling failed", err)
	}
	return samples, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
