// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/sampbx/audio"
)

// mockReader serves PCM bytes in chunks of at most chunk bytes
type mockReader struct {
	data  []byte
	chunk int
	err   error
}

func (m *mockReader) SampleRate() int { return 44100 }

func (m *mockReader) Read(p []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.data) == 0 {
		return 0, io.EOF
	}
	n := min(len(p), len(m.data))
	if m.chunk > 0 {
		n = min(n, m.chunk)
	}
	copy(p, m.data[:n])
	m.data = m.data[n:]
	return n, nil
}

func pcm(values ...int16) []byte {
	out := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockReader{data: pcm(16384, -16384, 0, 32767)},
		sampleRate: 44100,
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if buf.Channels() != 2 || buf.Frames() != 2 {
		t.Fatalf("got %d ch %d frames, want 2 ch 2 frames", buf.Channels(), buf.Frames())
	}
	if buf.Data[0][0] != 0.5 || buf.Data[1][0] != -0.5 {
		t.Errorf("frame 0 = (%v, %v), want (0.5, -0.5)", buf.Data[0][0], buf.Data[1][0])
	}
	if buf.Data[0][1] != 0 {
		t.Errorf("frame 1 left = %v, want 0", buf.Data[0][1])
	}
}

func TestSource_OddByteReads(t *testing.T) {
	t.Parallel()

	want := []int16{1000, -1000, 2000, -2000, 3000, -3000}

	src := &source{
		dec:        &mockReader{data: pcm(want...), chunk: 3},
		sampleRate: 44100,
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Frames() != 3 {
		t.Fatalf("Frames() = %d, want 3", buf.Frames())
	}

	for i, v := range want {
		got := buf.Data[i%2][i/2]
		if exp := float32(v) / 32768; got != exp {
			t.Errorf("sample %d = %v, want %v", i, got, exp)
		}
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := &source{dec: &mockReader{err: boom}, sampleRate: 44100}

	_, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want boom", err)
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockReader{}, sampleRate: 22050, buf: make([]byte, 8192)}

	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", src.SampleRate())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestDecoder_InvalidData(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("definitely not an mp3 stream")))
	if err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}
