// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"github.com/ik5/sampbx/cursor"
	"github.com/ik5/sampbx/midi"
	"github.com/ik5/sampbx/order"
)

// Render fills out, one slice per output channel, with the next block of
// playback. events must be sorted by Offset; offsets outside the block are
// clamped to it. When bypassed, out is left untouched and playback does
// not advance. Render never blocks or allocates.
func (e *Engine) Render(out [][]float32, events []midi.Event) {
	if e.params.Bypass() || len(out) == 0 {
		return
	}
	frames := len(out[0])

	e.sync()
	before := e.rt.cursor.Transitions()

	level := e.params.Level()
	pos := 0
	for _, ev := range events {
		at := min(max(ev.Offset, pos), frames)
		e.renderSpan(out, pos, at, level)
		pos = at
		e.handle(ev)
	}
	e.renderSpan(out, pos, frames, level)

	// state is published before the flag so a listener sees the new state
	e.publishState()
	if e.rt.cursor.Transitions() != before {
		e.flag.Mark()
	}
}

// sync adopts a newly published snapshot, pending play/stop requests and
// loop parameter changes.
func (e *Engine) sync() {
	c := e.rt.cursor

	if s := e.snap.Load(); s != e.rt.snap {
		prev := e.rt.snap
		e.rt.snap = s

		switch {
		case prev == nil || prev.store.ID != s.store.ID:
			c.Reset(s.seq)
		case prev.seqGen != s.seqGen:
			c.Restart(s.seq, s.store.Regions)
		}
		e.rt.loop = nil
	}

	if loop := e.params.loop.Load(); loop != e.rt.loop {
		e.rt.loop = loop
		s := e.rt.snap
		c.Configure(*loop, s.store.SampleRate, order.Infinite(s.mode))
	}

	if e.stopReq.Swap(false) {
		c.Stop()
	}
	if e.playReq.Swap(false) {
		c.Start(e.rt.snap.store.Regions)
	}
}

func (e *Engine) handle(ev midi.Event) {
	c := e.rt.cursor
	regions := e.rt.snap.store.Regions

	switch ev.Kind {
	case midi.NoteOn:
		if len(regions) == 0 {
			return
		}
		if e.trigger == TriggerRandom {
			c.PlayOnce(e.rt.seq.Pick(len(regions)), regions)
			return
		}
		c.Start(regions)
	case midi.NoteOff:
		c.Stop()
	}
}

// renderSpan writes frames [from, to) of every channel.
func (e *Engine) renderSpan(out [][]float32, from, to int, level float32) {
	c := e.rt.cursor
	st := e.rt.snap.store

	for from < to {
		s := c.Next(st.Regions, to-from)
		if s.Frames == 0 {
			zeroSpan(out, from, to)
			return
		}

		if s.Silent {
			zeroSpan(out, from, from+s.Frames)
		} else {
			e.write(out, from, s, level)
		}
		from += s.Frames
	}
}

func (e *Engine) write(out [][]float32, at int, s cursor.Slice, level float32) {
	st := e.rt.snap.store
	r := st.Regions[s.Region]
	gain := r.Gain * level

	for ch, dst := range out {
		src := st.Data[ch%len(st.Data)][s.Offset : s.Offset+s.Frames]
		dst = dst[at : at+s.Frames]

		if s.Fade == 0 {
			for i, v := range src {
				dst[i] = v * gain
			}
			continue
		}
		for i, v := range src {
			dst[i] = v * gain * s.Envelope(s.Offset+i, r)
		}
	}
}

func (e *Engine) publishState() {
	c := e.rt.cursor

	e.suspended.Store(!c.Playing())

	idx, ok := c.Current()
	if !ok {
		e.current.Store(-1)
		return
	}
	e.current.Store(int64(e.rt.snap.store.Regions[idx].Ordinal))
}

// zeroSpan zeroes frames [from, to) of every channel.
func zeroSpan(out [][]float32, from, to int) {
	for _, ch := range out {
		clear(ch[from:to])
	}
}
