// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into one registry.
package formats

import (
	"github.com/ik5/sampbx/audio"
	"github.com/ik5/sampbx/formats/aiff"
	"github.com/ik5/sampbx/formats/flac"
	"github.com/ik5/sampbx/formats/mp3"
	"github.com/ik5/sampbx/formats/vorbis"
	"github.com/ik5/sampbx/formats/wav"
)

// Default returns a new registry with all bundled decoders registered under
// their common file extensions.
func Default() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})

	return reg
}
