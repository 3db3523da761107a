// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/sampbx/audio"
	"github.com/ik5/sampbx/internal/audiotest"
)

// Example_resample demonstrates converting a decoded file to a new rate.
func Example_resample() {
	// 1 second, 440Hz tone at 44.1kHz
	buf, err := audio.ReadAll(audiotest.NewSineSource(44100, 1, 44100, 440.0))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	out, err := audio.Resample(buf, 48000)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Output sample rate: %d Hz\n", out.SampleRate)
	fmt.Printf("Frames: %d\n", out.Frames())
	// Output:
	// Output sample rate: 48000 Hz
	// Frames: 48000
}

// Example_wrapChannels demonstrates feeding a mono file to a stereo bus.
func Example_wrapChannels() {
	mono, _ := audio.ReadAll(audiotest.NewConstantSource(8000, 1, 8, 0.5))

	stereo := audio.WrapChannels(mono, 2)

	fmt.Printf("Channels: %d\n", stereo.Channels())
	fmt.Printf("Left: %.2f Right: %.2f\n", stereo.Data[0][0], stereo.Data[1][0])
	// Output:
	// Channels: 2
	// Left: 0.50 Right: 0.50
}
