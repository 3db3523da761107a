// SPDX-License-Identifier: EPL-2.0

// Package midi parses the MIDI 1.0 channel voice messages the engine
// reacts to.
package midi

import (
	"errors"
	"fmt"
)

var (
	ErrShortMessage = errors.New("truncated MIDI message")
	ErrNotStatus    = errors.New("MIDI message does not start with a status byte")
)

// Kind is the part of a message the engine cares about.
type Kind byte

const (
	Other Kind = iota
	NoteOn
	NoteOff
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	default:
		return "Other"
	}
}

// Event is a MIDI message placed at a frame offset inside a render block.
type Event struct {
	Offset   int
	Kind     Kind
	Channel  byte
	Note     byte
	Velocity byte
}

// status nibbles of the channel voice messages
const (
	statusNoteOff = 0x8
	statusNoteOn  = 0x9
)

// dataBytes is the number of data bytes following each status nibble.
var dataBytes = [16]int{
	0x8: 2, // note off
	0x9: 2, // note on
	0xA: 2, // poly pressure
	0xB: 2, // control change
	0xC: 1, // program change
	0xD: 1, // channel pressure
	0xE: 2, // pitch bend
}

// Parse decodes one message in classic byte format. Note-on with velocity
// zero is reported as NoteOff. System messages parse as Other.
func Parse(offset int, msg []byte) (Event, error) {
	if len(msg) == 0 {
		return Event{}, ErrShortMessage
	}

	status := msg[0]
	if status&0x80 == 0 {
		return Event{}, fmt.Errorf("%w: 0x%02x", ErrNotStatus, status)
	}

	ev := Event{Offset: offset, Kind: Other}
	typ := status >> 4
	if typ == 0xF {
		return ev, nil
	}

	if len(msg) < 1+dataBytes[typ] {
		return Event{}, fmt.Errorf("%w: status 0x%02x needs %d data bytes", ErrShortMessage, status, dataBytes[typ])
	}

	ev.Channel = status & 0x0F

	switch typ {
	case statusNoteOn:
		ev.Note = msg[1] & 0x7F
		ev.Velocity = msg[2] & 0x7F
		ev.Kind = NoteOn
		if ev.Velocity == 0 {
			ev.Kind = NoteOff
		}
	case statusNoteOff:
		ev.Note = msg[1] & 0x7F
		ev.Velocity = msg[2] & 0x7F
		ev.Kind = NoteOff
	}

	return ev, nil
}

// NoteOnEvent builds a note-on at offset.
func NoteOnEvent(offset int, channel, note, velocity byte) Event {
	return Event{Offset: offset, Kind: NoteOn, Channel: channel & 0x0F, Note: note & 0x7F, Velocity: velocity & 0x7F}
}

// NoteOffEvent builds a note-off at offset.
func NoteOffEvent(offset int, channel, note byte) Event {
	return Event{Offset: offset, Kind: NoteOff, Channel: channel & 0x0F, Note: note & 0x7F}
}
