// SPDX-License-Identifier: EPL-2.0

package cursor

import "github.com/ik5/sampbx/store"

// Slice is a contiguous run of frames handed out by Next.
type Slice struct {
	// Region is an index into the store's regions.
	Region int
	// Offset is the absolute frame in the store buffer where the run starts.
	Offset int
	Frames int
	// Silent runs are gap padding or belong to a bypassed region and must
	// be rendered as zeros.
	Silent bool
	// Fade is the fade-in/out length in frames, 0 for none.
	Fade int
}

// Envelope returns the fade gain for absolute frame pos of region r.
func (s Slice) Envelope(pos int, r store.Region) float32 {
	if s.Fade <= 0 {
		return 1
	}
	in := float32(pos-r.Start) / float32(s.Fade)
	out := float32(r.End-1-pos) / float32(s.Fade)
	return max(0, min(1, in, out))
}

// Cursor tracks where playback is inside a sequence of regions.
//
// A Cursor is either stopped (Position() == -1) or playing, in which case
// region.Start <= Offset() < region.End for the current region. It is
// owned by a single goroutine and never allocates.
type Cursor struct {
	seq    []int
	pos    int
	offset int
	// end of the audible part of the current region
	end int
	// silence left after the audible part, and whether it is playing now
	pad   int
	inPad bool

	loop       LoopMode
	sampleRate int
	repeat     bool

	// one-shot playback of a single region, restoring seq afterwards
	once  bool
	one   [1]int
	saved []int

	wrap        func(seq []int)
	transitions uint64
	wraps       uint64
}

// New returns a stopped cursor. wrap, if not nil, is called with the
// sequence every time playback wraps to its start, before the first region
// of the new pass is entered, so the sequence can be refilled in place.
func New(wrap func(seq []int)) *Cursor {
	return &Cursor{pos: -1, wrap: wrap}
}

// Configure sets the loop behavior and sample rate used for timing. repeat
// makes the sequence wrap even when loop is None. Changes apply from the
// next region on.
func (c *Cursor) Configure(loop LoopMode, sampleRate int, repeat bool) {
	c.loop = loop
	c.sampleRate = sampleRate
	c.repeat = repeat
}

func (c *Cursor) Playing() bool { return c.pos >= 0 }

// Position is the index into the sequence, -1 when stopped.
func (c *Cursor) Position() int { return c.pos }

// Offset is the absolute frame position in the store buffer. While a gap
// is playing it rests on the last frame of the region.
func (c *Cursor) Offset() int { return c.offset }

// Current returns the region being played.
func (c *Cursor) Current() (int, bool) {
	if c.pos < 0 {
		return -1, false
	}
	return c.seq[c.pos], true
}

func (c *Cursor) Sequence() []int { return c.seq }

// Transitions counts every start, advance, wrap and stop.
func (c *Cursor) Transitions() uint64 { return c.transitions }

func (c *Cursor) Wraps() uint64 { return c.wraps }

// Reset stops playback and replaces the sequence. A nil seq discards it.
func (c *Cursor) Reset(seq []int) {
	if c.pos >= 0 {
		c.transitions++
	}
	c.pos = -1
	c.once = false
	c.saved = nil
	c.seq = seq
}

// Restart replaces the sequence and, if the cursor was playing, continues
// from the start of the new one.
func (c *Cursor) Restart(seq []int, regions []store.Region) {
	playing := c.pos >= 0
	c.Reset(seq)
	if playing && len(seq) > 0 {
		c.enter(0, regions)
	}
}

// Start begins playback at the start of the sequence. It does nothing and
// returns false when already playing or the sequence is empty.
func (c *Cursor) Start(regions []store.Region) bool {
	if c.pos >= 0 || len(c.seq) == 0 {
		return false
	}
	c.enter(0, regions)
	c.transitions++
	return true
}

// PlayOnce plays region once from its start, ignoring loop settings, then
// stops and restores the previous sequence.
func (c *Cursor) PlayOnce(region int, regions []store.Region) {
	if !c.once {
		c.saved = c.seq
	}
	c.once = true
	c.one[0] = region
	c.seq = c.one[:]
	c.enter(0, regions)
	c.transitions++
}

// Stop halts playback, keeping the sequence.
func (c *Cursor) Stop() {
	if c.pos < 0 {
		return
	}
	c.halt()
}

// Next returns up to limit frames of the current region, capped at the
// region boundary, and advances past it. A zero-length slice means the
// cursor is stopped.
func (c *Cursor) Next(regions []store.Region, limit int) Slice {
	if c.pos < 0 || limit <= 0 {
		return Slice{Region: -1}
	}

	idx := c.seq[c.pos]

	if c.inPad {
		n := min(limit, c.pad)
		c.pad -= n
		s := Slice{Region: idx, Offset: c.offset, Frames: n, Silent: true}
		if c.pad == 0 {
			c.advance(regions)
		}
		return s
	}

	r := regions[idx]
	n := min(limit, c.end-c.offset)
	s := Slice{Region: idx, Offset: c.offset, Frames: n, Silent: r.Bypassed, Fade: c.fade(r)}

	c.offset += n
	if c.offset >= c.end {
		if c.pad > 0 {
			c.inPad = true
			c.offset = c.end - 1
		} else {
			c.advance(regions)
		}
	}

	return s
}

func (c *Cursor) advance(regions []store.Region) {
	switch {
	case c.pos+1 < len(c.seq):
		c.enter(c.pos+1, regions)
	case !c.once && (c.loop.Looping() || c.repeat):
		c.wraps++
		if c.wrap != nil {
			c.wrap(c.seq)
		}
		c.enter(0, regions)
	default:
		c.halt()
		return
	}
	c.transitions++
}

func (c *Cursor) halt() {
	c.pos = -1
	c.inPad = false
	c.pad = 0
	c.transitions++
	if c.once {
		c.once = false
		c.seq = c.saved
		c.saved = nil
	}
}

func (c *Cursor) enter(pos int, regions []store.Region) {
	r := regions[c.seq[pos]]

	c.pos = pos
	c.offset = r.Start
	c.end = r.End
	c.pad = 0
	c.inPad = false

	if c.once {
		return
	}

	switch c.loop.Kind {
	case Trigger:
		slot := 1
		if c.loop.Value > 0 {
			slot = max(1, frames(1/c.loop.Value, c.sampleRate))
		}
		if r.Len() > slot {
			c.end = r.Start + slot
		} else {
			c.pad = slot - r.Len()
		}
	case Gap:
		c.pad = frames(c.loop.Value, c.sampleRate)
	}
}

func (c *Cursor) fade(r store.Region) int {
	if c.once || c.loop.Kind != Fade {
		return 0
	}
	return min(frames(c.loop.Value, c.sampleRate), r.Len()/2)
}
