// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Buffer is decoded PCM held in memory, one slice per channel.
// Every channel slice has the same length.
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// NewBuffer allocates a silent buffer of the given shape.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &Buffer{SampleRate: sampleRate, Data: data}
}

func (b *Buffer) Channels() int { return len(b.Data) }

func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Truncate shortens the buffer to at most frames frames, in place.
func (b *Buffer) Truncate(frames int) {
	for c := range b.Data {
		if len(b.Data[c]) > frames {
			b.Data[c] = b.Data[c][:frames]
		}
	}
}

// maxEmptyReads bounds how many (0, nil) reads in a row ReadAll tolerates.
const maxEmptyReads = 64

// ReadAll drains src and de-interleaves it into a Buffer.
// A trailing partial frame is dropped.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	buf := &Buffer{SampleRate: src.SampleRate(), Data: make([][]float32, channels)}
	tmp := make([]float32, size)
	// carry holds samples of a frame split across two reads
	carry := make([]float32, 0, channels)
	empty := 0

	for {
		n, err := src.ReadSamples(tmp)
		if n > 0 {
			samples := tmp[:n]
			if len(carry) > 0 {
				need := min(channels-len(carry), len(samples))
				carry = append(carry, samples[:need]...)
				samples = samples[need:]
				if len(carry) == channels {
					for c := range channels {
						buf.Data[c] = append(buf.Data[c], carry[c])
					}
					carry = carry[:0]
				}
			}

			frames := len(samples) / channels
			for f := range frames {
				base := f * channels
				for c := range channels {
					buf.Data[c] = append(buf.Data[c], samples[base+c])
				}
			}
			carry = append(carry, samples[frames*channels:]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, ErrStalledSource
			}
			continue
		}
		empty = 0
	}

	if buf.Frames() == 0 {
		return nil, ErrEmptyInput
	}

	return buf, nil
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{SampleRate: b.SampleRate, Data: make([][]float32, len(b.Data))}
	for c, ch := range b.Data {
		out.Data[c] = append([]float32(nil), ch...)
	}
	return out
}
