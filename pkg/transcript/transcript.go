package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind selects the phone or word level transcript
type Kind string

const (
	KindPhones Kind = "phones"
	KindWords  Kind = "words"
)

var (
	ErrMalformedLine = errors.New("malformed ctm line")
	ErrInvalidKind   = errors.New("invalid transcript kind")
)

// Segment is one time-aligned unit of a transcript
type Segment struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Label string  `json:"label" yaml:"label"`
}

// Duration returns End - Start
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// ParseKind validates a kind name
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindPhones, KindWords:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Path returns the CTM file for an acoustic model and kind:
// <dir>/time_marked_transcript_<model>_<kind>.ctm
func Path(dir, model string, kind Kind) string {
	return filepath.Join(dir, fmt.Sprintf("time_marked_transcript_%s_%s.ctm", model, kind))
}

// Parse reads CTM lines "utterance channel start duration label [...]" and
// returns the segments whose utterance field equals utteranceID, in file
// order. Blank lines and lines starting with ';;' are ignored.
func Parse(r io.Reader, utteranceID string) ([]Segment, error) {
	segments := []Segment{}
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, ";;") {
			continue
		}

		fields := strings.Fields(text)
		if fields[0] != utteranceID {
			continue
		}
		if len(fields) < 5 {
			return nil, fmt.Errorf("%w: line %d: expected at least 5 fields, got %d", ErrMalformedLine, line, len(fields))
		}

		start, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: start %q", ErrMalformedLine, line, fields[2])
		}
		duration, err := strconv.ParseFloat(fields[3], 64)
		if err != nil || duration < 0 {
			return nil, fmt.Errorf("%w: line %d: duration %q", ErrMalformedLine, line, fields[3])
		}

		segments = append(segments, Segment{
			Start: start,
			End:   start + duration,
			Label: fields[4],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return segments, nil
}

// ParseFile opens path and parses it with Parse
func ParseFile(path, utteranceID string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer f.Close()

	segments, err := Parse(f, utteranceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return segments, nil
}

// Load parses the transcript of kind for model found in dir
func Load(dir, model string, kind Kind, utteranceID string) ([]Segment, error) {
	return ParseFile(Path(dir, model, kind), utteranceID)
}
