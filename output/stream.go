// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ik5/sampbx/engine"
)

const bytesPerSample = 4

// Stream adapts a Renderer to an io.Reader producing interleaved float32
// little-endian PCM, the layout oto.FormatFloat32LE expects. Reads are
// split into blocks of at most maxBlock frames. Buffers are allocated once,
// so steady-state reads do not allocate.
type Stream struct {
	mu       sync.Mutex
	r        engine.Renderer
	channels int
	maxBlock int

	planar [][]float32
	inter  []float32
	// tail holds one rendered frame when a read ends mid-frame; pending is
	// the part of it not yet returned
	tail    []byte
	pending []byte
}

func NewStream(r engine.Renderer, channels, maxBlock int) *Stream {
	s := &Stream{
		r:        r,
		channels: channels,
		maxBlock: maxBlock,
		planar:   make([][]float32, channels),
		inter:    make([]float32, channels*maxBlock),
		tail:     make([]byte, channels*bytesPerSample),
	}
	for c := range s.planar {
		s.planar[c] = make([]float32, maxBlock)
	}

	return s
}

// FrameSize is the number of bytes per interleaved frame.
func (s *Stream) FrameSize() int { return s.channels * bytesPerSample }

// Read renders as many frames as fit in p. It never fails.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := copy(p, s.pending)
	s.pending = s.pending[n:]

	frameBytes := s.FrameSize()
	for n < len(p) {
		frames := (len(p) - n) / frameBytes
		if frames == 0 {
			s.render(1)
			encode(s.tail, s.inter[:s.channels])
			c := copy(p[n:], s.tail)
			s.pending = s.tail[c:]
			n += c
			break
		}

		frames = min(frames, s.maxBlock)
		s.render(frames)
		encode(p[n:], s.inter[:frames*s.channels])
		n += frames * frameBytes
	}

	return n, nil
}

// render runs one block. The stream has no input signal, so each block
// starts silent and a bypassed renderer outputs silence.
func (s *Stream) render(frames int) {
	for c := range s.planar {
		s.planar[c] = s.planar[c][:frames]
		clear(s.planar[c])
	}
	s.r.Render(s.planar, nil)
	Interleave(s.inter, s.planar)
}

// Interleave writes planar channels src into dst frame by frame and returns
// the number of samples written. dst must hold len(src)*len(src[0]) values.
func Interleave(dst []float32, src [][]float32) int {
	if len(src) == 0 {
		return 0
	}

	channels := len(src)
	frames := len(src[0])
	for c, ch := range src {
		for i, v := range ch[:frames] {
			dst[i*channels+c] = v
		}
	}

	return frames * channels
}

// encode writes samples as float32 little-endian into dst.
func encode(dst []byte, samples []float32) {
	for i, v := range samples {
		binary.LittleEndian.PutUint32(dst[i*bytesPerSample:], math.Float32bits(v))
	}
}
