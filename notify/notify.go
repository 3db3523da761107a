// SPDX-License-Identifier: EPL-2.0

// Package notify carries "something changed" signals from the render thread
// to control-side listeners without blocking the render thread.
package notify

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Flag is a lock-free dirty flag. Mark may be called from any goroutine,
// including a real-time one; it never blocks or allocates.
type Flag struct {
	dirty   atomic.Bool
	version atomic.Uint64
}

func (f *Flag) Mark() {
	f.version.Add(1)
	f.dirty.Store(true)
}

// Consume reports whether Mark was called since the last Consume and
// clears the flag.
func (f *Flag) Consume() bool { return f.dirty.Swap(false) }

// Version counts Mark calls.
func (f *Flag) Version() uint64 { return f.version.Load() }

type sub struct {
	id int
	fn func()
}

// Poller consumes a Flag on the control side and calls subscribers when it
// was set.
type Poller struct {
	flag *Flag

	mu   sync.Mutex
	subs []sub
	next int
}

func NewPoller(f *Flag) *Poller {
	return &Poller{flag: f}
}

// Subscribe registers fn and returns a function removing it again.
func (p *Poller) Subscribe(fn func()) (cancel func()) {
	p.mu.Lock()
	id := p.next
	p.next++
	p.subs = append(p.subs, sub{id: id, fn: fn})
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// Poll consumes the flag once and, if it was set, calls every subscriber.
func (p *Poller) Poll() bool {
	if !p.flag.Consume() {
		return false
	}

	p.mu.Lock()
	fns := make([]func(), len(p.subs))
	for i, s := range p.subs {
		fns[i] = s.fn
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return true
}

// Run polls every interval until ctx is done and returns ctx's error.
func (p *Poller) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Poll()
		}
	}
}
