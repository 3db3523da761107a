// SPDX-License-Identifier: EPL-2.0

// Package audio holds decoded PCM in memory and converts it to the format
// the engine plays at.
//
// # Sources and Buffers
//
// Format decoders return a Source, which streams interleaved float32
// samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadAll drains a Source into a Buffer, which keeps one slice per channel.
// Everything after decoding works on whole Buffers: the engine needs the
// complete file in memory anyway, and random access makes resampling and
// channel mapping straightforward.
//
// # Resampling
//
// Resample converts a Buffer to another sample rate with four-point
// Lagrange interpolation:
//
//	out, err := audio.Resample(buf, 48000)
//
// The output has round(frames * dstRate / srcRate) frames. When the rates
// match the result is an exact copy.
//
// # Channel Mapping
//
// WrapChannels maps a Buffer onto a different channel count. Output
// channel c takes input channel c mod n, so a mono file plays on every
// output channel and extra input channels are dropped:
//
//	stereo := audio.WrapChannels(mono, 2)
//
// # Format Registry
//
// A Registry maps file extensions to decoders. DecodeFile opens a path,
// picks the decoder by extension and returns the decoded Buffer:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	buf, err := reg.DecodeFile("kick.wav")
//
// formats.Default returns a registry with every built-in decoder.
package audio
