// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sampbx/audio"
	"github.com/jfreymuth/oggvorbis"
)

// ErrNotOggVorbis is returned when the input is not an Ogg Vorbis stream.
var ErrNotOggVorbis = errors.New("not an ogg vorbis stream")

// readBufSize is the suggested ReadSamples buffer, in values.
const readBufSize = 4096

// oggReader is the part of oggvorbis.Reader the source needs
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	ogg oggReader
}

func (s *source) SampleRate() int { return s.ogg.SampleRate() }
func (s *source) Channels() int   { return s.ogg.Channels() }
func (s *source) BufSize() int    { return readBufSize }
func (s *source) Close() error    { return nil }

// ReadSamples decodes straight into dst. oggvorbis already produces
// interleaved float32 and counts individual values, not frames.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.ogg.Read(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("decoding vorbis: %w", err)
	}
	return n, err
}

// Decoder decodes Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	ogg, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOggVorbis, err)
	}

	return &source{ogg: ogg}, nil
}
