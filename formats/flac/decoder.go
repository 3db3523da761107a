// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/sampbx/audio"
	"github.com/ik5/sampbx/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// frameReader is the part of flac.Stream the source needs, for testing
type frameReader interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	stream     frameReader
	sampleRate int
	channels   int
	bitDepth   int

	// interleaved samples of the current frame not yet handed out
	pending []int32
	done    bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return s.stream.Close() }
func (s *source) BufSize() int    { return 4096 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	n := 0
	for n < len(dst) {
		if len(s.pending) == 0 {
			if s.done {
				break
			}
			if err := s.next(); err != nil {
				return n, err
			}
			continue
		}

		c := min(len(dst)-n, len(s.pending))
		for i, v := range s.pending[:c] {
			dst[n+i] = utils.IntToFloat32(int(v), s.bitDepth)
		}
		s.pending = s.pending[c:]
		n += c
	}

	if s.done && len(s.pending) == 0 {
		return n, io.EOF
	}
	return n, nil
}

// next parses one FLAC frame and interleaves its subframes into pending.
func (s *source) next() error {
	f, err := s.stream.ParseNext()
	if err == io.EOF {
		s.done = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: frame has %d subframes, stream has %d channels",
			ErrCorruptFrame, len(f.Subframes), s.channels)
	}

	frames := len(f.Subframes[0].Samples)
	need := frames * s.channels
	buf := s.pending[:0]
	if cap(buf) < need {
		buf = make([]int32, need)
	}
	buf = buf[:need]

	for c, sub := range f.Subframes {
		if len(sub.Samples) != frames {
			return fmt.Errorf("%w: uneven subframe lengths", ErrCorruptFrame)
		}
		for i, v := range sub.Samples {
			buf[i*s.channels+c] = v
		}
	}
	s.pending = buf

	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := stream.Info
	if info == nil || info.NChannels == 0 || info.SampleRate == 0 {
		stream.Close()
		return nil, ErrUnsupportedFlacLayout
	}

	switch info.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		stream.Close()
		return nil, ErrUnsupportedBitDepth
	}

	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}
