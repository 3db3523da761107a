// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams with github.com/mewkiz/flac.
//
// Frames are parsed lazily as samples are requested; each frame's
// subframes are interleaved into a small pending buffer and normalized
// from the stream's bit depth to float32.
//
//	src, err := flac.Decoder{}.Decode(file)
//	defer src.Close()
package flac
