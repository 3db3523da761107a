// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"

	"github.com/ik5/sampbx/internal/audiotest"
)

func TestReadAll_Deinterleaves(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		frames   int
		maxRead  int
	}{
		{"mono single read", 1, 500, 0},
		{"stereo single read", 2, 500, 0},
		{"stereo split frames", 2, 257, 3},
		{"three channels split frames", 3, 100, 7},
		{"large file", 2, 10000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewRampSource(8000, tt.channels, tt.frames)
			src.MaxRead = tt.maxRead

			buf, err := ReadAll(src)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			if buf.Channels() != tt.channels {
				t.Fatalf("Channels() = %d, want %d", buf.Channels(), tt.channels)
			}
			if buf.Frames() != tt.frames {
				t.Fatalf("Frames() = %d, want %d", buf.Frames(), tt.frames)
			}

			for c := range tt.channels {
				for f := range tt.frames {
					if got, want := buf.Data[c][f], audiotest.Ramp(f, c); got != want {
						t.Fatalf("Data[%d][%d] = %v, want %v", c, f, got, want)
					}
				}
			}
		})
	}
}

func TestReadAll_Empty(t *testing.T) {
	t.Parallel()

	_, err := ReadAll(audiotest.NewSilentSource(8000, 1, 0))
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("ReadAll() error = %v, want ErrEmptyInput", err)
	}
}

func TestReadAll_InvalidFormat(t *testing.T) {
	t.Parallel()

	if _, err := ReadAll(audiotest.NewSilentSource(8000, 0, 10)); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("ReadAll() zero channels error = %v, want ErrInvalidChannels", err)
	}
	if _, err := ReadAll(audiotest.NewSilentSource(0, 1, 10)); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("ReadAll() zero rate error = %v, want ErrInvalidRate", err)
	}
}

func TestReadAll_Stalled(t *testing.T) {
	t.Parallel()

	_, err := ReadAll(audiotest.StalledSource{})
	if !errors.Is(err, ErrStalledSource) {
		t.Errorf("ReadAll() error = %v, want ErrStalledSource", err)
	}
}

func TestBuffer_TruncateAndClone(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(44100, 2, 100)
	buf.Data[1][5] = 0.25

	clone := buf.Clone()
	buf.Truncate(10)

	if buf.Frames() != 10 {
		t.Errorf("Frames() after Truncate = %d, want 10", buf.Frames())
	}
	if clone.Frames() != 100 {
		t.Errorf("clone Frames() = %d, want 100", clone.Frames())
	}

	clone.Data[1][5] = 0.5
	if buf.Data[1][5] != 0.25 {
		t.Error("Clone() shares sample memory with the original")
	}

	buf.Truncate(50)
	if buf.Frames() != 10 {
		t.Errorf("Truncate to a larger size changed length to %d", buf.Frames())
	}
}

func TestBuffer_Empty(t *testing.T) {
	t.Parallel()

	var buf Buffer
	if buf.Frames() != 0 || buf.Channels() != 0 {
		t.Errorf("zero Buffer = %d frames %d channels, want 0 0", buf.Frames(), buf.Channels())
	}
}
