// SPDX-License-Identifier: EPL-2.0

package store

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

const (
	// DefaultGain is the gain of a freshly loaded region.
	DefaultGain float32 = 1
	// MaxGain is the largest accepted region gain.
	MaxGain float32 = 4
)

// Peak is the sample range of one waveform chunk.
type Peak struct {
	Min, Max float32
}

// Region is one loaded file inside the shared store buffer.
type Region struct {
	// Ordinal is the index of the file in the list passed to Load.
	Ordinal  int
	Start    int
	End      int
	Gain     float32
	Bypassed bool
	Name     string
	Peaks    []Peak
}

func (r Region) Len() int { return r.End - r.Start }

// Store is the immutable result of one load: a planar multi-channel buffer
// plus the regions laid out in it back to back. A Store is never modified
// after it has been handed out; the With* methods return modified copies
// that share the sample data.
type Store struct {
	// ID identifies the load batch. Copies made by WithRegionGain and
	// WithRegionBypass keep it.
	ID         uuid.UUID
	SampleRate int
	Data       [][]float32
	Regions    []Region
}

// Empty returns a store with no regions.
func Empty(sampleRate, channels int) *Store {
	return &Store{
		ID:         uuid.New(),
		SampleRate: sampleRate,
		Data:       make([][]float32, channels),
	}
}

// Frames is the total length of the buffer, the sum of all region lengths.
func (s *Store) Frames() int {
	if s == nil || len(s.Data) == 0 {
		return 0
	}
	return len(s.Data[0])
}

func (s *Store) Channels() int {
	if s == nil {
		return 0
	}
	return len(s.Data)
}

// Len is the number of regions.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Regions)
}

func (s *Store) Region(i int) Region { return s.Regions[i] }

// ByOrdinal returns the index of the region loaded from input position
// ordinal.
func (s *Store) ByOrdinal(ordinal int) (int, bool) {
	if s == nil {
		return 0, false
	}
	for i, r := range s.Regions {
		if r.Ordinal == ordinal {
			return i, true
		}
	}
	return 0, false
}

// WithRegionGain returns a copy of s where region i has the given gain.
func (s *Store) WithRegionGain(i int, gain float32) (*Store, error) {
	if i < 0 || i >= s.Len() {
		return nil, fmt.Errorf("%w: %d", ErrRegionIndex, i)
	}
	if !(gain >= 0 && gain <= MaxGain) {
		return nil, fmt.Errorf("%w: %v", ErrGainRange, gain)
	}

	out := s.shallowCopy()
	out.Regions[i].Gain = gain
	return out, nil
}

// WithRegionBypass returns a copy of s where region i is bypassed or not.
func (s *Store) WithRegionBypass(i int, bypassed bool) (*Store, error) {
	if i < 0 || i >= s.Len() {
		return nil, fmt.Errorf("%w: %d", ErrRegionIndex, i)
	}

	out := s.shallowCopy()
	out.Regions[i].Bypassed = bypassed
	return out, nil
}

func (s *Store) shallowCopy() *Store {
	return &Store{
		ID:         s.ID,
		SampleRate: s.SampleRate,
		Data:       s.Data,
		Regions:    slices.Clone(s.Regions),
	}
}

// Validate checks the layout invariants: every region is non-empty, regions
// tile the buffer in order without gaps, and all channels have equal length.
func (s *Store) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrCorruptStore, s.SampleRate)
	}

	frames := s.Frames()
	for c, ch := range s.Data {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, want %d", ErrCorruptStore, c, len(ch), frames)
		}
	}

	next := 0
	for i, r := range s.Regions {
		if r.Start != next {
			return fmt.Errorf("%w: region %d starts at %d, want %d", ErrCorruptStore, i, r.Start, next)
		}
		if r.Start >= r.End {
			return fmt.Errorf("%w: region %d is empty", ErrCorruptStore, i)
		}
		next = r.End
	}
	if next != frames {
		return fmt.Errorf("%w: regions cover %d of %d frames", ErrCorruptStore, next, frames)
	}

	return nil
}
