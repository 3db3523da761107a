// SPDX-License-Identifier: EPL-2.0

package store

import (
	"context"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/sampbx/audio"
	"github.com/ik5/sampbx/formats"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxFiles  = 50
	DefaultMaxLength = 30 * time.Second
	// PeakChunk is the number of frames summarized by one Peak.
	PeakChunk = 1024
)

// FileDecoder turns a path into decoded PCM. *audio.Registry implements it.
type FileDecoder interface {
	DecodeFile(path string) (*audio.Buffer, error)
}

// Loader decodes, resamples and concatenates files into a Store.
type Loader struct {
	decoder     FileDecoder
	maxFiles    int
	maxLength   time.Duration
	concurrency int
	logger      *log.Logger
}

type Option func(*Loader)

// WithMaxFiles caps how many files of one batch are loaded. Files past the
// cap are reported as skipped.
func WithMaxFiles(n int) Option {
	return func(l *Loader) { l.maxFiles = n }
}

// WithMaxLength truncates every file to d after resampling. Zero disables
// truncation.
func WithMaxLength(d time.Duration) Option {
	return func(l *Loader) { l.maxLength = d }
}

// WithConcurrency bounds how many files are decoded at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) { l.concurrency = n }
}

// WithLogger makes the loader report skipped files and batch summaries.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

func WithDecoder(d FileDecoder) Option {
	return func(l *Loader) { l.decoder = d }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		decoder:     formats.Default(),
		maxFiles:    DefaultMaxFiles,
		maxLength:   DefaultMaxLength,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(l)
	}
	if l.concurrency < 1 {
		l.concurrency = 1
	}

	return l
}

// FileError records why one file of a batch was skipped.
type FileError struct {
	Index int
	Path  string
	Err   error
}

func (e *FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *FileError) Unwrap() error { return e.Err }

// Report describes the outcome of one Load.
type Report struct {
	ID        uuid.UUID
	Requested int
	Loaded    int
	Skipped   []*FileError
	// Truncated lists the ordinals of files cut to the length limit.
	Truncated []int
	Frames    int
}

// Duration is the playing time of the loaded store.
func (r *Report) Duration(sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(r.Frames) * time.Second / time.Duration(sampleRate)
}

type loaded struct {
	buf       *audio.Buffer
	truncated bool
	err       error
}

// Load decodes paths concurrently, converts each to sampleRate and channels,
// and lays them out in input order in a new Store. Files that fail are
// skipped and listed in the Report; an all-failed batch yields an empty
// store. The only errors are invalid targets and ctx cancellation, in which
// case no store is returned.
func (l *Loader) Load(ctx context.Context, paths []string, sampleRate, channels int) (*Store, *Report, error) {
	if sampleRate <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", audio.ErrInvalidRate, sampleRate)
	}
	if channels <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	report := &Report{Requested: len(paths)}

	accepted := paths
	if l.maxFiles > 0 && len(paths) > l.maxFiles {
		accepted = paths[:l.maxFiles]
		for i := l.maxFiles; i < len(paths); i++ {
			report.Skipped = append(report.Skipped, &FileError{Index: i, Path: paths[i], Err: ErrTooManyFiles})
		}
	}

	results := make([]loaded, len(accepted))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i, path := range accepted {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = l.loadOne(path, sampleRate, channels)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}

	st := l.assemble(results, accepted, sampleRate, channels, report)

	skipped := report.Skipped
	report.Skipped = make([]*FileError, 0, len(skipped))
	for i, r := range results {
		if r.err != nil {
			report.Skipped = append(report.Skipped, &FileError{Index: i, Path: accepted[i], Err: r.err})
		}
	}
	report.Skipped = append(report.Skipped, skipped...)

	if l.logger != nil {
		for _, fe := range report.Skipped {
			l.logger.Printf("skipping file %d: %v", fe.Index, fe)
		}
		l.logger.Printf("loaded %d of %d files, %d frames at %d Hz (%s)",
			report.Loaded, report.Requested, report.Frames, sampleRate, report.Duration(sampleRate))
	}

	return st, report, nil
}

func (l *Loader) loadOne(path string, sampleRate, channels int) loaded {
	buf, err := l.decoder.DecodeFile(path)
	if err != nil {
		return loaded{err: err}
	}

	buf, err = audio.Resample(buf, sampleRate)
	if err != nil {
		return loaded{err: err}
	}
	buf = audio.WrapChannels(buf, channels)

	truncated := false
	if l.maxLength > 0 {
		limit := maxFrames(l.maxLength, sampleRate)
		if limit > 0 && buf.Frames() > limit {
			buf.Truncate(limit)
			truncated = true
		}
	}

	return loaded{buf: buf, truncated: truncated}
}

// maxFrames is the number of frames d lasts at sampleRate, saturating at
// math.MaxInt.
func maxFrames(d time.Duration, sampleRate int) int {
	f := math.Round(d.Seconds() * float64(sampleRate))
	if f >= math.MaxInt {
		return math.MaxInt
	}
	return int(f)
}

func (l *Loader) assemble(results []loaded, paths []string, sampleRate, channels int, report *Report) *Store {
	total := 0
	for _, r := range results {
		if r.err == nil {
			total += r.buf.Frames()
		}
	}

	st := Empty(sampleRate, channels)
	for c := range st.Data {
		st.Data[c] = make([]float32, total)
	}

	pos := 0
	for i, r := range results {
		if r.err != nil {
			continue
		}

		frames := r.buf.Frames()
		for c := range channels {
			copy(st.Data[c][pos:], r.buf.Data[c])
		}

		st.Regions = append(st.Regions, Region{
			Ordinal: i,
			Start:   pos,
			End:     pos + frames,
			Gain:    DefaultGain,
			Name:    filepath.Base(paths[i]),
			Peaks:   Peaks(r.buf.Data[0], PeakChunk),
		})
		if r.truncated {
			report.Truncated = append(report.Truncated, i)
		}
		pos += frames
	}

	report.ID = st.ID
	report.Loaded = len(st.Regions)
	report.Frames = total

	return st
}

// Peaks summarizes samples as the min and max of every chunk frames.
func Peaks(samples []float32, chunk int) []Peak {
	if chunk <= 0 || len(samples) == 0 {
		return nil
	}

	peaks := make([]Peak, 0, (len(samples)+chunk-1)/chunk)
	for start := 0; start < len(samples); start += chunk {
		part := samples[start:min(start+chunk, len(samples))]
		p := Peak{Min: part[0], Max: part[0]}
		for _, v := range part[1:] {
			p.Min = min(p.Min, v)
			p.Max = max(p.Max, v)
		}
		peaks = append(peaks, p)
	}

	return peaks
}
