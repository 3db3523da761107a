// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"slices"
	"testing"

	"github.com/ik5/sampbx/formats/wav"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	reg := Default()

	want := []string{"aif", "aiff", "flac", "mp3", "oga", "ogg", "wav", "wave"}
	if got := reg.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}

	d, ok := reg.Get(".WAV")
	if !ok {
		t.Fatal("Get(.WAV) not found")
	}
	if _, ok := d.(wav.Decoder); !ok {
		t.Errorf("Get(.WAV) = %T, want wav.Decoder", d)
	}
}

func TestDefault_Independent(t *testing.T) {
	t.Parallel()

	a, b := Default(), Default()
	a.Register("xyz", wav.Decoder{})

	if _, ok := b.Get("xyz"); ok {
		t.Error("registries returned by Default share state")
	}
}
