// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps file extensions ("wav", ".MP3") to decoders. Keys are
// case-insensitive and a leading dot is ignored. It is safe for
// concurrent use, so one registry can serve parallel loads.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]Decoder)}
}

func formatKey(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Register adds d for ext, replacing any earlier decoder.
func (r *Registry) Register(ext string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.formats[formatKey(ext)] = d
}

func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.formats[formatKey(ext)]
	return d, ok
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.formats))
}

// DecodeFile picks a decoder by the extension of path and decodes the whole
// file into memory.
func (r *Registry) DecodeFile(path string) (*Buffer, error) {
	dec, ok := r.Get(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	return Decode(dec, f)
}

// Decode runs d over r and collects the resulting stream.
func Decode(d Decoder, r io.Reader) (*Buffer, error) {
	src, err := d.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer src.Close()

	return ReadAll(src)
}
