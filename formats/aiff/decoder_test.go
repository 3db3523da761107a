// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/sampbx/audio"
)

// createAIFFFile builds a minimal 16-bit 44.1 kHz AIFF file
func createAIFFFile(channels int, samples []int16) []byte {
	frames := len(samples) / channels

	comm := new(bytes.Buffer)
	binary.Write(comm, binary.BigEndian, int16(channels))
	binary.Write(comm, binary.BigEndian, uint32(frames))
	binary.Write(comm, binary.BigEndian, int16(16))
	// 44100 as an 80-bit IEEE extended float
	comm.Write([]byte{0x40, 0x0E, 0xAC, 0x44, 0, 0, 0, 0, 0, 0})

	ssnd := new(bytes.Buffer)
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // offset
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // block size
	for _, s := range samples {
		binary.Write(ssnd, binary.BigEndian, s)
	}

	body := new(bytes.Buffer)
	body.WriteString("AIFF")
	body.WriteString("COMM")
	binary.Write(body, binary.BigEndian, uint32(comm.Len()))
	body.Write(comm.Bytes())
	body.WriteString("SSND")
	binary.Write(body, binary.BigEndian, uint32(ssnd.Len()))
	body.Write(ssnd.Bytes())

	out := new(bytes.Buffer)
	out.WriteString("FORM")
	binary.Write(out, binary.BigEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func TestDecoder_ValidFile(t *testing.T) {
	t.Parallel()

	data := createAIFFFile(2, []int16{16384, -16384, 0, 8192})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Frames() != 2 {
		t.Fatalf("Frames() = %d, want 2", buf.Frames())
	}
	if buf.Data[0][0] != 0.5 || buf.Data[1][0] != -0.5 || buf.Data[1][1] != 0.25 {
		t.Errorf("decoded %v, want [[0.5 0] [-0.5 0.25]]", buf.Data)
	}
}

func TestDecoder_NotAIFF(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("RIFF....WAVEfmt ")))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}

// mockPCM hands out fixed integer samples
type mockPCM struct {
	data []int
}

func (m *mockPCM) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	n := copy(buf.Data, m.data)
	m.data = m.data[n:]
	return n, nil
}

func TestSource_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		in       int
		want     float32
	}{
		{"8-bit signed", 8, -64, -0.5},
		{"16-bit", 16, 16384, 0.5},
		{"24-bit", 24, -4194304, -0.5},
		{"32-bit", 32, 1 << 30, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &source{
				dec:        &mockPCM{data: []int{tt.in}},
				sampleRate: 8000,
				channels:   1,
				bitDepth:   tt.bitDepth,
				intBuf:     &goaudio.IntBuffer{Data: make([]int, 16)},
			}

			dst := make([]float32, 16)
			n, err := src.ReadSamples(dst)
			if n != 1 || err != io.EOF {
				t.Fatalf("ReadSamples() = %d, %v, want 1, EOF", n, err)
			}
			if dst[0] != tt.want {
				t.Errorf("sample = %v, want %v", dst[0], tt.want)
			}
		})
	}
}
