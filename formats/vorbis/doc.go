// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// The decoder keeps the file's native channel count and sample rate. Vorbis
// decodes to float32 natively, so samples pass through without conversion.
//
//	src, err := vorbis.Decoder{}.Decode(file)
package vorbis
