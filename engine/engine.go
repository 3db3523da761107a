// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ik5/sampbx/cursor"
	"github.com/ik5/sampbx/midi"
	"github.com/ik5/sampbx/notify"
	"github.com/ik5/sampbx/order"
	"github.com/ik5/sampbx/store"
)

// Renderer is what a host shim drives once per audio block.
type Renderer interface {
	Render(out [][]float32, events []midi.Event)
}

// snapshot is what the render thread reads for one block. Once published
// it is never modified, except seq whose contents belong to the render
// thread.
type snapshot struct {
	store *store.Store
	seq   []int
	mode  order.Mode
	// seqGen changes whenever seq is recomputed
	seqGen uint64
}

// Engine is a sample player. Control methods may be called from any
// goroutine; Render must only be called from one goroutine at a time.
type Engine struct {
	params  *Params
	loader  *store.Loader
	flag    notify.Flag
	trigger Trigger

	mu      sync.Mutex
	cfg     Config
	paths   []string
	loadGen uint64
	cancel  context.CancelFunc
	seqGen  uint64
	ctlSeq  *order.Sequencer

	snap      atomic.Pointer[snapshot]
	playReq   atomic.Bool
	stopReq   atomic.Bool
	suspended atomic.Bool
	current   atomic.Int64

	rt renderState
}

// renderState is touched only by Render.
type renderState struct {
	snap   *snapshot
	cursor *cursor.Cursor
	seq    *order.Sequencer
	loop   *cursor.LoopMode
}

// New returns a stopped engine with an empty store. Loader options
// configure how files are loaded.
func New(cfg Config, opts ...store.Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		params:  NewParams(),
		loader:  store.NewLoader(opts...),
		trigger: cfg.Trigger,
		cfg:     cfg,
		ctlSeq:  order.NewSequencer(cfg.Seed),
	}
	e.rt.seq = order.NewSequencer(cfg.Seed + 1)
	e.rt.cursor = cursor.New(e.refill)
	e.suspended.Store(true)
	e.current.Store(-1)

	e.publishLocked(store.Empty(cfg.SampleRate, cfg.Channels), true)

	return e, nil
}

// NewPlayground returns an engine where note-on plays a random region once.
func NewPlayground(cfg Config, opts ...store.Option) (*Engine, error) {
	cfg.Trigger = TriggerRandom
	return New(cfg, opts...)
}

func (e *Engine) Params() *Params { return e.params }

func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cfg
}

// Store returns the store the engine currently plays from.
func (e *Engine) Store() *store.Store { return e.snap.Load().store }

// Paths returns the file list of the last successful load.
func (e *Engine) Paths() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.paths)
}

// Notifications is set by the render thread on every playback transition.
func (e *Engine) Notifications() *notify.Flag { return &e.flag }

// Changed consumes the change notification.
func (e *Engine) Changed() bool { return e.flag.Consume() }

// CurrentIndex is the ordinal of the region being played, or -1.
func (e *Engine) CurrentIndex() int { return int(e.current.Load()) }

// Suspended reports whether the engine is not playing.
func (e *Engine) Suspended() bool { return e.suspended.Load() }

// Load replaces the store with the given files, decoded at the engine's
// sample rate and channel count. A later Load or Clear supersedes an
// in-flight one, which then returns ErrSuperseded. Playback stops when the
// new store is adopted.
func (e *Engine) Load(ctx context.Context, paths []string) (*store.Report, error) {
	e.mu.Lock()
	e.loadGen++
	gen := e.loadGen
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	rate, channels := e.cfg.SampleRate, e.cfg.Channels
	e.mu.Unlock()

	defer cancel()

	st, report, err := e.loader.Load(ctx, paths, rate, channels)

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.loadGen {
		return nil, ErrSuperseded
	}
	e.cancel = nil
	if err != nil {
		return nil, fmt.Errorf("loading samples: %w", err)
	}

	e.paths = slices.Clone(paths)
	e.publishLocked(st, true)
	e.flag.Mark()

	return report, nil
}

// Clear drops all regions, supersedes an in-flight load and stops playback.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.loadGen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.paths = nil
	e.publishLocked(store.Empty(e.cfg.SampleRate, e.cfg.Channels), true)
	e.flag.Mark()
}

// Reset stops playback and recomputes the sequence, keeping the store.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.publishLocked(e.snap.Load().store, true)
	e.playReq.Store(false)
	e.stopReq.Store(true)
}

// Prepare is called by the host before rendering with a new format. When
// the sample rate or channel count changed, the last file list is loaded
// again and its report returned.
func (e *Engine) Prepare(ctx context.Context, sampleRate, channels, maxBlock int) (*store.Report, error) {
	e.mu.Lock()
	cfg := e.cfg
	cfg.SampleRate, cfg.Channels, cfg.MaxBlock = sampleRate, channels, maxBlock
	if err := cfg.Validate(); err != nil {
		e.mu.Unlock()
		return nil, err
	}

	changed := cfg.SampleRate != e.cfg.SampleRate || cfg.Channels != e.cfg.Channels
	e.cfg = cfg
	paths := slices.Clone(e.paths)

	if changed && len(paths) == 0 {
		e.publishLocked(store.Empty(cfg.SampleRate, cfg.Channels), true)
	}
	e.mu.Unlock()

	if !changed || len(paths) == 0 {
		return nil, nil
	}

	return e.Load(ctx, paths)
}

// Play starts the sequence from its beginning if the engine is stopped.
func (e *Engine) Play() {
	e.stopReq.Store(false)
	e.playReq.Store(true)
}

// Stop halts playback at the next block.
func (e *Engine) Stop() {
	e.playReq.Store(false)
	e.stopReq.Store(true)
}

func (e *Engine) SetBypass(b bool) { e.params.SetBypass(b) }

func (e *Engine) SetLevel(v float32) error { return e.params.SetLevel(v) }

func (e *Engine) SetLoop(m cursor.LoopMode) error { return e.params.SetLoop(m) }

// SetOrder switches the playback order. A playing engine continues from
// the start of the new sequence.
func (e *Engine) SetOrder(m order.Mode) error {
	if err := e.params.setOrder(m); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.publishLocked(e.snap.Load().store, true)
	return nil
}

// SetRegionGain sets the gain of the region loaded from input position
// ordinal without interrupting playback.
func (e *Engine) SetRegionGain(ordinal int, gain float32) error {
	return e.updateRegion(ordinal, func(st *store.Store, i int) (*store.Store, error) {
		return st.WithRegionGain(i, gain)
	})
}

// SetRegionBypass mutes or unmutes one region without interrupting
// playback. A bypassed region still takes its time in the sequence.
func (e *Engine) SetRegionBypass(ordinal int, bypassed bool) error {
	return e.updateRegion(ordinal, func(st *store.Store, i int) (*store.Store, error) {
		return st.WithRegionBypass(i, bypassed)
	})
}

func (e *Engine) updateRegion(ordinal int, update func(*store.Store, int) (*store.Store, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.snap.Load().store
	i, ok := st.ByOrdinal(ordinal)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoRegion, ordinal)
	}

	next, err := update(st, i)
	if err != nil {
		return err
	}

	e.publishLocked(next, false)
	return nil
}

// publishLocked hands st to the render thread. With reseq a new sequence
// is computed; otherwise the current one is kept. Must hold e.mu, except
// from New.
func (e *Engine) publishLocked(st *store.Store, reseq bool) {
	old := e.snap.Load()

	if !reseq && old != nil {
		e.snap.Store(&snapshot{store: st, seq: old.seq, mode: old.mode, seqGen: old.seqGen})
		return
	}

	mode := e.params.Order()
	e.seqGen++
	seq := e.ctlSeq.Compute(make([]int, st.Len()), st.Regions, mode)
	e.snap.Store(&snapshot{store: st, seq: seq, mode: mode, seqGen: e.seqGen})
}

// refill runs on the render thread when the cursor wraps.
func (e *Engine) refill(seq []int) {
	e.rt.seq.Refill(seq, e.rt.snap.mode)
}
