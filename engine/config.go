// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ik5/sampbx/cursor"
	"github.com/ik5/sampbx/order"
)

// Trigger selects what a MIDI note-on does.
type Trigger int

const (
	// TriggerSequence starts the playback sequence if it is stopped.
	TriggerSequence Trigger = iota
	// TriggerRandom plays one uniformly chosen region once.
	TriggerRandom
)

func (t Trigger) String() string {
	switch t {
	case TriggerSequence:
		return "sequence"
	case TriggerRandom:
		return "random"
	default:
		return fmt.Sprintf("Trigger(%d)", int(t))
	}
}

// Config is the host-facing setup of an Engine.
type Config struct {
	SampleRate int
	Channels   int
	// MaxBlock is the largest block the host will ask for.
	MaxBlock int
	Trigger  Trigger
	// Seed feeds the shuffle and random generators.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		Channels:   2,
		MaxBlock:   512,
		Trigger:    TriggerSequence,
	}
}

func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.Channels <= 0:
		return fmt.Errorf("%w: %d channels", ErrInvalidConfig, c.Channels)
	case c.MaxBlock <= 0:
		return fmt.Errorf("%w: max block %d", ErrInvalidConfig, c.MaxBlock)
	case c.Trigger != TriggerSequence && c.Trigger != TriggerRandom:
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Trigger)
	}
	return nil
}

const (
	// DefaultLevel is the initial output level.
	DefaultLevel float32 = 0.75
	MaxLevel     float32 = 1
)

// Params holds the user-facing playback parameters. Setters are called from
// the control side; the render thread reads them with single atomic loads.
type Params struct {
	bypass atomic.Bool
	loop   atomic.Pointer[cursor.LoopMode]
	order  atomic.Int32
	level  atomic.Uint32
}

func NewParams() *Params {
	p := &Params{}
	p.loop.Store(&cursor.LoopMode{})
	p.level.Store(math.Float32bits(DefaultLevel))
	return p
}

func (p *Params) Bypass() bool     { return p.bypass.Load() }
func (p *Params) SetBypass(b bool) { p.bypass.Store(b) }

func (p *Params) Loop() cursor.LoopMode { return *p.loop.Load() }

func (p *Params) SetLoop(m cursor.LoopMode) error {
	if err := m.Validate(); err != nil {
		return err
	}
	p.loop.Store(&m)
	return nil
}

func (p *Params) Order() order.Mode { return order.Mode(p.order.Load()) }

func (p *Params) setOrder(m order.Mode) error {
	if m < order.Ordinal || m > order.Random {
		return fmt.Errorf("%w: %d", order.ErrUnknownMode, int(m))
	}
	p.order.Store(int32(m))
	return nil
}

func (p *Params) Level() float32 { return math.Float32frombits(p.level.Load()) }

func (p *Params) SetLevel(v float32) error {
	if !(v >= 0 && v <= MaxLevel) {
		return fmt.Errorf("%w: %v", ErrLevelRange, v)
	}
	p.level.Store(math.Float32bits(v))
	return nil
}
