// SPDX-License-Identifier: EPL-2.0

// Package cursor implements the playback state machine that walks a
// sequence of store regions block by block.
//
// The cursor is stopped or playing. Start enters the first region of the
// sequence; Next hands out contiguous slices that never cross a region
// boundary; when a region is exhausted the cursor advances, wraps to a new
// pass (when looping, or when the order never ends) or stops. Every such
// change increments Transitions, which the engine turns into a change
// notification.
//
// Loop modes shape the time between regions:
//
//	None     play the sequence once
//	Fade     loop, with linear fade-in/out at region edges
//	Trigger  loop, each region gets a fixed slot of 1/rate seconds
//	Gap      loop, with silence after every region
package cursor
