// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes integer PCM WAV files on top of
// github.com/go-audio/wav.
//
// The Decoder accepts 8, 16, 24 and 32-bit PCM (including
// WAVE_FORMAT_EXTENSIBLE headers that carry PCM data) with any channel
// count and sample rate, and yields an audio.Source of normalized float32
// samples:
//
//	src, err := wav.Decoder{}.Decode(file)
//
// Write is the inverse, used to render engine output to disk:
//
//	f, _ := os.Create("out.wav")
//	defer f.Close()
//	err := wav.Write(f, buf, 16)
//
// IEEE float WAV files are rejected with ErrOnlyPCMSupported.
package wav
