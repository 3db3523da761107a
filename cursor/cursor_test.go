// SPDX-License-Identifier: EPL-2.0

package cursor

import (
	"slices"
	"testing"

	"github.com/ik5/sampbx/store"
)

func regions(lengths ...int) []store.Region {
	out := make([]store.Region, len(lengths))
	pos := 0
	for i, l := range lengths {
		out[i] = store.Region{Ordinal: i, Start: pos, End: pos + l, Gain: 1}
		pos += l
	}
	return out
}

// drain pulls blocks of size block until n frames are consumed or the
// cursor stops, checking the position invariant after every call.
func drain(t *testing.T, c *Cursor, regs []store.Region, block, n int) []Slice {
	t.Helper()

	var out []Slice
	for n > 0 {
		s := c.Next(regs, min(block, n))
		if s.Frames == 0 {
			break
		}
		out = append(out, s)
		n -= s.Frames

		if c.Playing() {
			idx, _ := c.Current()
			r := regs[idx]
			if c.Offset() < r.Start || c.Offset() >= r.End {
				t.Fatalf("offset %d outside region [%d,%d)", c.Offset(), r.Start, r.End)
			}
		}
	}
	return out
}

func TestCursor_StartEmpty(t *testing.T) {
	t.Parallel()

	c := New(nil)
	c.Reset(nil)

	if c.Start(nil) {
		t.Error("Start() on empty sequence returned true")
	}
	if c.Playing() || c.Position() != -1 || c.Transitions() != 0 {
		t.Errorf("cursor playing=%v pos=%d transitions=%d, want stopped with no transitions",
			c.Playing(), c.Position(), c.Transitions())
	}
	if s := c.Next(nil, 64); s.Frames != 0 {
		t.Errorf("Next() on stopped cursor = %+v", s)
	}
}

func TestCursor_OrdinalAcrossBlocks(t *testing.T) {
	t.Parallel()

	regs := regions(1000, 500, 2000)
	c := New(nil)
	c.Reset([]int{0, 1, 2})
	c.Start(regs)

	var frames []int
	for _, s := range drain(t, c, regs, 700, 10000) {
		for i := range s.Frames {
			frames = append(frames, s.Offset+i)
		}
	}

	if len(frames) != 3500 {
		t.Fatalf("played %d frames, want 3500", len(frames))
	}
	for i, f := range frames {
		if f != i {
			t.Fatalf("frame %d came from buffer position %d", i, f)
		}
	}
	if c.Playing() {
		t.Error("cursor still playing after the last region without loop")
	}
	// start, two advances, stop
	if c.Transitions() != 4 {
		t.Errorf("Transitions() = %d, want 4", c.Transitions())
	}
}

func TestCursor_SlicesCapAtRegionBoundary(t *testing.T) {
	t.Parallel()

	regs := regions(1000, 500, 2000)
	c := New(nil)
	c.Reset([]int{0, 1, 2})
	c.Start(regs)

	s := c.Next(regs, 700)
	if s.Region != 0 || s.Offset != 0 || s.Frames != 700 {
		t.Errorf("first slice = %+v", s)
	}
	s = c.Next(regs, 700)
	if s.Region != 0 || s.Offset != 700 || s.Frames != 300 {
		t.Errorf("second slice = %+v, want 300 frames capped at region end", s)
	}
	if c.Position() != 1 || c.Offset() != 1000 {
		t.Errorf("after region 0: pos=%d offset=%d, want 1/1000", c.Position(), c.Offset())
	}
}

func TestCursor_LoopScenario(t *testing.T) {
	t.Parallel()

	regs := regions(100)
	c := New(nil)
	c.Configure(LoopMode{Kind: Gap, Value: 0}, 48000, false)
	c.Reset([]int{0})
	c.Start(regs)

	drain(t, c, regs, 60, 60)
	drain(t, c, regs, 60, 60)

	if c.Wraps() != 1 {
		t.Errorf("Wraps() = %d, want 1", c.Wraps())
	}
	if c.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", c.Offset())
	}
	if !c.Playing() {
		t.Error("looping cursor stopped")
	}
}

func TestCursor_WrapRefills(t *testing.T) {
	t.Parallel()

	regs := regions(10, 10, 10)
	calls := 0
	c := New(func(seq []int) {
		calls++
		slices.Reverse(seq)
	})
	c.Configure(LoopMode{Kind: Fade}, 1000, false)
	c.Reset([]int{0, 1, 2})
	c.Start(regs)

	var order []int
	for _, s := range drain(t, c, regs, 100, 55) {
		order = append(order, s.Region)
	}

	if calls != 1 {
		t.Errorf("wrap called %d times, want 1", calls)
	}
	if !slices.Equal(order, []int{0, 1, 2, 2, 1, 0}) {
		t.Errorf("region order = %v, want [0 1 2 2 1 0]", order)
	}
}

func TestCursor_RepeatWithoutLoop(t *testing.T) {
	t.Parallel()

	regs := regions(10)
	c := New(nil)
	c.Configure(LoopMode{}, 1000, true)
	c.Reset([]int{0})
	c.Start(regs)

	drain(t, c, regs, 7, 35)
	if !c.Playing() || c.Wraps() != 3 {
		t.Errorf("playing=%v wraps=%d, want playing with 3 wraps", c.Playing(), c.Wraps())
	}
}

func TestCursor_Gap(t *testing.T) {
	t.Parallel()

	regs := regions(10, 10)
	c := New(nil)
	// 5 ms at 1 kHz is 5 frames of silence
	c.Configure(LoopMode{Kind: Gap, Value: 0.005}, 1000, false)
	c.Reset([]int{0, 1})
	c.Start(regs)

	got := drain(t, c, regs, 100, 30)

	want := []Slice{
		{Region: 0, Offset: 0, Frames: 10},
		{Region: 0, Offset: 9, Frames: 5, Silent: true},
		{Region: 1, Offset: 10, Frames: 10},
		{Region: 1, Offset: 19, Frames: 5, Silent: true},
	}
	if len(got) < len(want) {
		t.Fatalf("got %d slices, want at least %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("slice %d = %+v, want %+v", i, got[i], w)
		}
	}
}

func TestCursor_Trigger(t *testing.T) {
	t.Parallel()

	// 100 Hz at 1 kHz gives every region a 10 frame slot
	regs := regions(4, 25)
	c := New(nil)
	c.Configure(LoopMode{Kind: Trigger, Value: 100}, 1000, false)
	c.Reset([]int{0, 1})
	c.Start(regs)

	total := map[int]int{}
	for _, s := range drain(t, c, regs, 100, 20) {
		total[s.Region] += s.Frames
	}

	if total[0] != 10 || total[1] != 10 {
		t.Errorf("frames per region = %v, want 10 each", total)
	}
}

func TestCursor_FadeEnvelope(t *testing.T) {
	t.Parallel()

	regs := regions(100)
	c := New(nil)
	// 10 ms at 1 kHz
	c.Configure(LoopMode{Kind: Fade, Value: 0.01}, 1000, false)
	c.Reset([]int{0})
	c.Start(regs)

	s := c.Next(regs, 100)
	if s.Fade != 10 {
		t.Fatalf("Fade = %d, want 10", s.Fade)
	}

	r := regs[0]
	tests := []struct {
		pos  int
		want float32
	}{
		{0, 0},
		{5, 0.5},
		{50, 1},
		{99, 0},
		{94, 0.5},
	}
	for _, tt := range tests {
		if got := s.Envelope(tt.pos, r); got != tt.want {
			t.Errorf("Envelope(%d) = %v, want %v", tt.pos, got, tt.want)
		}
	}

	// fade is capped at half the region
	c.Configure(LoopMode{Kind: Fade, Value: 5}, 1000, false)
	c.Reset([]int{0})
	c.Start(regs)
	if s := c.Next(regs, 10); s.Fade != 50 {
		t.Errorf("capped Fade = %d, want 50", s.Fade)
	}
}

func TestCursor_BypassedRegionIsSilent(t *testing.T) {
	t.Parallel()

	regs := regions(10, 10)
	regs[1].Bypassed = true

	c := New(nil)
	c.Reset([]int{0, 1})
	c.Start(regs)

	s := drain(t, c, regs, 100, 20)
	if len(s) != 2 || s[0].Silent || !s[1].Silent || s[1].Frames != 10 {
		t.Errorf("slices = %+v, want audible then silent 10 frames", s)
	}
}

func TestCursor_ResetAndRestart(t *testing.T) {
	t.Parallel()

	regs := regions(10, 10, 10)
	c := New(nil)
	c.Reset([]int{0, 1, 2})
	c.Start(regs)
	c.Next(regs, 15)

	c.Restart([]int{2, 0, 1}, regs)
	if idx, ok := c.Current(); !ok || idx != 2 || c.Offset() != 20 {
		t.Errorf("after Restart: current=%d ok=%v offset=%d, want region 2 at 20", idx, ok, c.Offset())
	}

	c.Reset(nil)
	if c.Playing() || c.Sequence() != nil {
		t.Error("Reset(nil) must stop and discard the sequence")
	}

	// restart while stopped keeps it stopped
	c.Restart([]int{0}, regs)
	if c.Playing() {
		t.Error("Restart on a stopped cursor started playback")
	}
}

func TestCursor_PlayOnce(t *testing.T) {
	t.Parallel()

	regs := regions(10, 20, 30)
	seq := []int{0, 1, 2}
	c := New(nil)
	c.Configure(LoopMode{Kind: Gap, Value: 1}, 1000, true)
	c.Reset(seq)

	c.PlayOnce(1, regs)
	got := drain(t, c, regs, 100, 1000)

	if len(got) != 1 || got[0].Region != 1 || got[0].Frames != 20 {
		t.Errorf("one-shot slices = %+v, want region 1 once", got)
	}
	if c.Playing() {
		t.Error("one-shot did not stop")
	}
	if !slices.Equal(c.Sequence(), seq) {
		t.Errorf("sequence after one-shot = %v, want %v", c.Sequence(), seq)
	}
}

func TestCursor_Stop(t *testing.T) {
	t.Parallel()

	regs := regions(10)
	c := New(nil)
	c.Reset([]int{0})
	c.Stop()
	if c.Transitions() != 0 {
		t.Error("Stop on stopped cursor counted a transition")
	}

	c.Start(regs)
	c.Stop()
	if c.Playing() || c.Transitions() != 2 {
		t.Errorf("playing=%v transitions=%d, want stopped after 2", c.Playing(), c.Transitions())
	}
	if len(c.Sequence()) != 1 {
		t.Error("Stop discarded the sequence")
	}
}

func TestCursor_NextZeroAllocs(t *testing.T) {
	regs := regions(64, 32, 16)
	c := New(func(seq []int) { slices.Reverse(seq) })
	c.Configure(LoopMode{Kind: Gap, Value: 0.01}, 1000, false)
	c.Reset([]int{0, 1, 2})
	c.Start(regs)

	allocs := testing.AllocsPerRun(1000, func() {
		c.Next(regs, 17)
	})
	if allocs != 0 {
		t.Errorf("Next allocated %v times per run, want 0", allocs)
	}
}
