package dataset

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"golang.org/x/sync/errgroup"
)

// Key identifies one recording
type Key struct {
	Speaker string `json:"speaker" yaml:"speaker"`
	Split   string `json:"split" yaml:"split"`
	File    string `json:"file" yaml:"file"`
}

// UtteranceID is the transcript identifier of the recording: the speaker and
// the file name without extension joined by an underscore.
func (k Key) UtteranceID() string {
	return k.Speaker + "_" + strings.TrimSuffix(k.File, filepath.Ext(k.File))
}

func (k Key) String() string {
	return k.Split + "/" + k.Speaker + "/" + k.File
}

// Entry is a loaded recording. Samples are shared with the index and must not
// be modified.
type Entry struct {
	Key
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
	Duration   float64   `json:"duration"` // seconds
}

// Index holds every recording of the corpus in memory, keyed by
// (speaker, split, file).
type Index struct {
	config   Config
	registry *Registry
	logger   logging.Logger

	entries map[Key]*Entry
	mu      sync.RWMutex
}

// NewIndex creates an empty index. Call Build to load the corpus.
func NewIndex(cfg Config, logger logging.Logger) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Index{
		config:   cfg,
		registry: NewRegistry(cfg.ContentType),
		logger:   logger.WithFields(logging.Fields{"component": "dataset"}),
		entries:  make(map[Key]*Entry),
	}, nil
}

// Registry exposes the decoder registry so callers can add formats
func (ix *Index) Registry() *Registry {
	return ix.registry
}

// Config returns the index configuration
func (ix *Index) Config() Config {
	return ix.config
}

// Build loads every supported file under the audio root, adding new entries
// and overwriting existing ones. Files with unknown extensions are skipped.
func (ix *Index) Build(ctx context.Context) error {
	start := time.Now()
	root := ix.config.AudioRoot()

	files, err := ix.discover(root)
	if err != nil {
		return err
	}

	ix.logger.Debug("Discovered dataset files", logging.Fields{
		"root":  root,
		"files": len(files),
	})

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.config.Concurrency)

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			samples, err := ix.registry.Load(file.path, ix.config.SampleRate)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", file.key, err)
			}
			ix.Put(file.key, samples)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	ix.logger.Info("Dataset index built", logging.Fields{
		"root":        root,
		"files":       len(files),
		"speakers":    len(ix.Speakers()),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

type discoveredFile struct {
	key  Key
	path string
}

// discover lists <root>/<split>/<speaker>/<file>
func (ix *Index) discover(root string) ([]discoveredFile, error) {
	splits, err := readDirs(root)
	if err != nil {
		return nil, NewDatasetError(root, ErrCodeNotFound, "audio root is not readable", errors.Join(ErrNotFound, err))
	}

	var files []discoveredFile
	for _, split := range splits {
		speakers, err := readDirs(filepath.Join(root, split))
		if err != nil {
			return nil, fmt.Errorf("failed to list split %s: %w", split, err)
		}

		for _, speaker := range speakers {
			dir := filepath.Join(root, split, speaker)
			entries, err := os.ReadDir(dir)
			if err != nil {
				return nil, fmt.Errorf("failed to list speaker %s: %w", speaker, err)
			}

			for _, e := range entries {
				if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
					continue
				}
				path := filepath.Join(dir, e.Name())
				if !ix.registry.Supports(path) {
					ix.logger.Debug("Skipping unsupported file", logging.Fields{"path": path})
					continue
				}
				files = append(files, discoveredFile{
					key:  Key{Speaker: speaker, Split: split, File: e.Name()},
					path: path,
				})
			}
		}
	}
	return files, nil
}

func readDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Put stores samples under key, replacing any previous entry
func (ix *Index) Put(key Key, samples []float64) {
	entry := &Entry{
		Key:        key,
		Samples:    samples,
		SampleRate: ix.config.SampleRate,
		Duration:   float64(len(samples)) / float64(ix.config.SampleRate),
	}

	ix.mu.Lock()
	ix.entries[key] = entry
	ix.mu.Unlock()
}

// Get returns the entry stored under key
func (ix *Index) Get(key Key) (*Entry, error) {
	ix.mu.RLock()
	entry, ok := ix.entries[key]
	ix.mu.RUnlock()

	if !ok {
		return nil, NewDatasetError(key.String(), ErrCodeNotFound, "no such recording", ErrNotFound)
	}
	return entry, nil
}

// SplitOf returns the split a speaker belongs to. A speaker found in several
// splits resolves to the first in lexical order.
func (ix *Index) SplitOf(speaker string) (string, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	split := ""
	for key := range ix.entries {
		if key.Speaker == speaker && (split == "" || key.Split < split) {
			split = key.Split
		}
	}
	if split == "" {
		return "", NewDatasetError(speaker, ErrCodeNotFound, "unknown speaker", ErrNotFound)
	}
	return split, nil
}

// Samples resolves the speaker's split and returns the samples of file
func (ix *Index) Samples(speaker, file string) ([]float64, error) {
	entry, err := ix.Lookup(speaker, file)
	if err != nil {
		return nil, err
	}
	return entry.Samples, nil
}

// Lookup is Samples returning the whole entry
func (ix *Index) Lookup(speaker, file string) (*Entry, error) {
	split, err := ix.SplitOf(speaker)
	if err != nil {
		return nil, err
	}
	return ix.Get(Key{Speaker: speaker, Split: split, File: file})
}

// Keys returns every key ordered by split, speaker and file
func (ix *Index) Keys() []Key {
	ix.mu.RLock()
	keys := make([]Key, 0, len(ix.entries))
	for key := range ix.entries {
		keys = append(keys, key)
	}
	ix.mu.RUnlock()

	slices.SortFunc(keys, func(a, b Key) int {
		return cmp.Or(
			cmp.Compare(a.Split, b.Split),
			cmp.Compare(a.Speaker, b.Speaker),
			cmp.Compare(a.File, b.File),
		)
	})
	return keys
}

// Speakers returns the distinct speakers, sorted
func (ix *Index) Speakers() []string {
	ix.mu.RLock()
	seen := make(map[string]struct{})
	for key := range ix.entries {
		seen[key.Speaker] = struct{}{}
	}
	ix.mu.RUnlock()

	speakers := make([]string, 0, len(seen))
	for s := range seen {
		speakers = append(speakers, s)
	}
	slices.Sort(speakers)
	return speakers
}

// Len returns the number of entries
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}
