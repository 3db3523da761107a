// SPDX-License-Identifier: EPL-2.0

// Package engine plays loaded samples into fixed-size audio blocks.
//
// An Engine has two sides. The control side (Load, Clear, Prepare, Play,
// Stop and the parameter setters) may be called from any goroutine and
// does all the work that allocates or blocks: decoding, resampling and
// computing playback sequences. The render side is Render, called once per
// block by the host or by output.Stream; it never blocks or allocates.
//
// The two sides meet in an atomically swapped snapshot holding the current
// store and sequence, a few atomic request flags and the Params. Render
// picks up whatever was published last at the start of each block.
//
// # Playback
//
// Regions play in the order chosen by SetOrder. When the sequence ends the
// engine stops, unless a loop mode is set or the order is order.Random, in
// which case a new pass starts. Every start, region change, wrap and stop
// sets the Notifications flag, which a UI polls through Changed or a
// notify.Poller.
//
// Each sample is scaled by its region gain and by the global level:
//
//	out = sample * region.Gain * level
//
// With bypass on, Render returns without touching the buffer and playback
// does not advance.
//
// # MIDI
//
// Events split the block at their frame offsets. Note-off stops playback.
// Note-on starts the sequence (TriggerSequence) or plays one random region
// once (TriggerRandom, see NewPlayground). Note-on with nothing loaded is
// ignored.
package engine
