// SPDX-License-Identifier: EPL-2.0

// Package sampbx is a sample playback engine for Go applications.
//
// A list of audio files is decoded, converted to one sample rate and
// channel layout and laid end to end in a single store. Each file becomes a
// region. The engine plays the regions block by block in ordinal, shuffled
// or random order, optionally looping with a fade, a fixed trigger rate or
// a gap of silence between regions.
//
// # Supported Formats
//
// Files are decoded by the format registry in the formats package:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 8/16/24/32-bit) via formats/aiff
//   - FLAC via formats/flac
//
// # Quick Start
//
// The simplest way to hear a set of files is to render them offline:
//
//	cfg := engine.DefaultConfig()
//	buf, report, err := sampbx.LoadAndBounce(ctx, cfg, []string{"kick.wav", "snare.mp3"}, 10*cfg.SampleRate)
//	if err != nil {
//	    return err
//	}
//	log.Printf("loaded %d of %d files", report.Loaded, report.Requested)
//
//	out, _ := os.Create("mix.wav")
//	defer out.Close()
//	wav.Write(out, buf, 16)
//
// # Real-time Playback
//
// For live output, drive the engine from the sound card through the output
// package:
//
//	e, _ := engine.New(engine.DefaultConfig())
//	e.Load(ctx, paths)
//	dev, _ := output.Open(e, e.Config(), 50*time.Millisecond)
//	defer dev.Close()
//	e.Play()
//
// A host with its own audio callback calls Engine.Render once per block
// instead, passing any MIDI events for that block.
//
// # Packages
//
//   - audio: decoded buffers, resampling and channel mapping
//   - formats: decoders for each file format and the default registry
//   - store: loading files into one buffer of regions
//   - order: playback sequences
//   - cursor: the playback position and loop handling
//   - engine: the player itself and its parameters
//   - output: the sound card bridge
//   - midi, notify: note events and change notifications
package sampbx
