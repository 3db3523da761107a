// SPDX-License-Identifier: EPL-2.0

package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/ik5/sampbx/store"
)

var ErrUnknownMode = errors.New("unknown playback order")

// Mode selects how regions are ordered for playback.
type Mode int

const (
	// Ordinal plays regions in load order.
	Ordinal Mode = iota
	// Shuffle plays a random permutation, reshuffled at every wrap.
	Shuffle
	// Random draws each next region independently, with replacement.
	Random
)

var modeNames = [...]string{
	Ordinal: "Ordinal",
	Shuffle: "Shuffle",
	Random:  "Random",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts the mode labels case-insensitively.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Infinite reports whether a sequence in mode m continues past its end
// even when looping is off.
func Infinite(m Mode) bool { return m == Random }

// Sequencer computes playback sequences. It is not safe for concurrent use;
// the render path and the control path each own one.
type Sequencer struct {
	rng *rand.Rand
}

func NewSequencer(seed uint64) *Sequencer {
	return &Sequencer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Compute fills dst with a sequence of region indices for mode and returns
// it resliced to len(regions). dst must have capacity for len(regions)
// entries; Compute does not allocate.
func (s *Sequencer) Compute(dst []int, regions []store.Region, mode Mode) []int {
	n := len(regions)
	dst = dst[:n]

	switch mode {
	case Random:
		s.draw(dst)
	case Shuffle:
		identity(dst)
		s.shuffle(dst)
	default:
		identity(dst)
		sortByStart(dst, regions)
	}

	return dst
}

// Refill prepares seq for another pass after a wrap: a new permutation for
// Shuffle, new draws for Random. Ordinal sequences are left as they are.
func (s *Sequencer) Refill(seq []int, mode Mode) {
	switch mode {
	case Shuffle:
		s.shuffle(seq)
	case Random:
		s.draw(seq)
	}
}

// Pick returns a uniformly chosen index in [0, n). n must be positive.
func (s *Sequencer) Pick(n int) int { return s.rng.IntN(n) }

func (s *Sequencer) shuffle(seq []int) {
	for i := len(seq) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
}

func (s *Sequencer) draw(seq []int) {
	for i := range seq {
		seq[i] = s.rng.IntN(len(seq))
	}
}

func identity(seq []int) {
	for i := range seq {
		seq[i] = i
	}
}

// sortByStart is an insertion sort; regions are normally already in order
// so this is a single pass.
func sortByStart(seq []int, regions []store.Region) {
	for i := 1; i < len(seq); i++ {
		for j := i; j > 0 && regions[seq[j]].Start < regions[seq[j-1]].Start; j-- {
			seq[j], seq[j-1] = seq[j-1], seq[j]
		}
	}
}

// ComputeSequence returns a fresh sequence over n regions laid out in
// index order.
func ComputeSequence(n int, mode Mode, seed uint64) []int {
	regions := make([]store.Region, n)
	for i := range regions {
		regions[i] = store.Region{Ordinal: i, Start: i, End: i + 1}
	}

	return NewSequencer(seed).Compute(make([]int, n), regions, mode)
}
