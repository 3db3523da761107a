// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/sampbx/audio"
	"github.com/ik5/sampbx/utils"
)

// writeChunk is how many frames are converted per encoder call.
const writeChunk = 4096

// Write encodes buf as integer PCM WAV with the given bit depth (8, 16, 24
// or 32). Samples outside [-1, 1] are clamped.
func Write(w io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return ErrUnsupportedBitDepth
	}
	if buf == nil || buf.Channels() == 0 || buf.SampleRate <= 0 {
		return ErrInvalidBuffer
	}

	channels := buf.Channels()
	enc := gowav.NewEncoder(w, buf.SampleRate, bitDepth, channels, formatPCM)

	intBuf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: buf.SampleRate},
		Data:           make([]int, 0, writeChunk*channels),
		SourceBitDepth: bitDepth,
	}

	frames := buf.Frames()
	for start := 0; start < frames; start += writeChunk {
		end := min(start+writeChunk, frames)

		intBuf.Data = intBuf.Data[:0]
		for f := start; f < end; f++ {
			for c := range channels {
				v := utils.Float32ToInt(buf.Data[c][f], bitDepth)
				if bitDepth == 8 {
					v += 128
				}
				intBuf.Data = append(intBuf.Data, v)
			}
		}

		if err := enc.Write(intBuf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
