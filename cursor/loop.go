// SPDX-License-Identifier: EPL-2.0

package cursor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownLoop = errors.New("unknown loop mode")
	ErrLoopValue   = errors.New("loop value out of range")
)

// LoopKind selects what happens between regions and at the end of the
// sequence.
type LoopKind int

const (
	// None plays the sequence once.
	None LoopKind = iota
	// Fade loops, fading every region in and out over Value seconds.
	Fade
	// Trigger loops, starting a region every 1/Value seconds.
	Trigger
	// Gap loops, with Value seconds of silence after every region.
	Gap
)

var loopNames = [...]string{
	None:    "None",
	Fade:    "Fade",
	Trigger: "Trigger",
	Gap:     "Gap",
}

func (k LoopKind) String() string {
	if k < 0 || int(k) >= len(loopNames) {
		return fmt.Sprintf("LoopKind(%d)", int(k))
	}
	return loopNames[k]
}

type loopRange struct{ min, max, def float64 }

var loopRanges = [...]loopRange{
	None:    {0, 0, 0},
	Fade:    {0, 5, 0.5},
	Trigger: {0.1, 5, 1},
	Gap:     {0, 5, 0.5},
}

// LoopMode is a loop kind plus its parameter: fade length in seconds,
// trigger rate in Hz or gap length in seconds.
type LoopMode struct {
	Kind  LoopKind
	Value float64
}

// DefaultLoop returns kind with its default value.
func DefaultLoop(kind LoopKind) LoopMode {
	if kind < 0 || int(kind) >= len(loopRanges) {
		return LoopMode{}
	}
	return LoopMode{Kind: kind, Value: loopRanges[kind].def}
}

// Looping reports whether the sequence wraps around at its end.
func (m LoopMode) Looping() bool { return m.Kind != None }

func (m LoopMode) Validate() error {
	if m.Kind < 0 || int(m.Kind) >= len(loopRanges) {
		return fmt.Errorf("%w: %d", ErrUnknownLoop, int(m.Kind))
	}
	if m.Kind == None {
		return nil
	}

	r := loopRanges[m.Kind]
	if math.IsNaN(m.Value) || m.Value < r.min || m.Value > r.max {
		return fmt.Errorf("%w: %s %v not in [%v, %v]", ErrLoopValue, m.Kind, m.Value, r.min, r.max)
	}
	return nil
}

func (m LoopMode) String() string {
	if m.Kind == None {
		return "none"
	}
	return strings.ToLower(m.Kind.String()) + ":" + strconv.FormatFloat(m.Value, 'g', -1, 64)
}

// ParseLoopMode parses "none", "fade", "gap:0.5" or "trigger:2". A kind
// without a value gets its default.
func ParseLoopMode(s string) (LoopMode, error) {
	name, value, hasValue := strings.Cut(s, ":")

	kind := LoopKind(-1)
	for k, n := range loopNames {
		if strings.EqualFold(name, n) {
			kind = LoopKind(k)
		}
	}
	if kind < 0 {
		return LoopMode{}, fmt.Errorf("%w: %q", ErrUnknownLoop, name)
	}

	m := DefaultLoop(kind)
	if hasValue {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return LoopMode{}, fmt.Errorf("%w: %w", ErrLoopValue, err)
		}
		m.Value = v
	}

	if err := m.Validate(); err != nil {
		return LoopMode{}, err
	}
	return m, nil
}

// frames converts seconds to frames at sampleRate.
func frames(seconds float64, sampleRate int) int {
	return int(math.Round(seconds * float64(sampleRate)))
}
