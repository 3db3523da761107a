// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III files with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved 16-bit stereo, so every Source
// returned by Decoder reports two channels regardless of the file's own
// layout. Mono files come out with both channels identical.
//
//	src, err := mp3.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
//
// Samples are normalized to [-1, 1).
package mp3
