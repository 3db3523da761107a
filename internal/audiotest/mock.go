// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates audio data for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     func(sample int, channel int) float32

	// MaxRead caps how many values a single ReadSamples call returns.
	// Values that are not a multiple of channels split frames across reads.
	MaxRead int
	Closed  bool

	pending int // values of a split frame already returned
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return Sine(sampleRate, frequency, sample)
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return value
	})
}

// NewRampSource creates a source whose sample value encodes its position,
// see Ramp. Useful for checking ordering and channel routing exactly.
func NewRampSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return Ramp(sample, channel)
	})
}

// Sine is the value of a unit sine of frequency Hz at sample.
func Sine(sampleRate int, frequency float64, sample int) float32 {
	t := float64(sample) / float64(sampleRate)
	return float32(math.Sin(2 * math.Pi * frequency * t))
}

// Ramp is the waveform of NewRampSource: (sample+1)/100000, negated on odd
// channels.
func Ramp(sample, channel int) float32 {
	v := float32(sample+1) / 100000
	if channel%2 == 1 {
		return -v
	}
	return v
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
	m.pending = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.MaxRead > 0 {
		return m.readPartial(dst[:min(len(dst), m.MaxRead)])
	}

	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	// Calculate how many frames we can write
	framesRequested := len(dst) / m.channels
	framesAvailable := m.totalSamples - m.generated
	framesToWrite := min(framesRequested, framesAvailable)

	// Generate samples
	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

func (m *MockSource) valueAt(i int) float32 {
	return m.waveform(i/m.channels, i%m.channels)
}

// readPartial serves reads that may end in the middle of a frame. It
// tracks progress in values rather than frames through generated*channels
// plus the pending offset.
func (m *MockSource) readPartial(dst []float32) (int, error) {
	total := m.totalSamples * m.channels
	pos := m.generated*m.channels + m.pending
	if pos >= total {
		return 0, io.EOF
	}

	n := min(len(dst), total-pos)
	for i := range n {
		dst[i] = m.valueAt(pos + i)
	}

	pos += n
	m.generated = pos / m.channels
	m.pending = pos % m.channels

	if pos >= total {
		return n, io.EOF
	}
	return n, nil
}

// StalledSource never returns data nor EOF.
type StalledSource struct{}

func (StalledSource) SampleRate() int { return 8000 }
func (StalledSource) Channels() int { return 1 }
func (StalledSource) BufSize() int { return 16 }
func (StalledSource) Close() error { return nil }
func (StalledSource) ReadSamples([]float32) (int, error) { return 0, nil }
