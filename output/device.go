// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/sampbx/engine"
)

// Device plays a Renderer through the system audio output. oto allows a
// single context per process, so a program should open one Device.
type Device struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	stream *Stream
	cfg    engine.Config
}

// Open creates the oto context for cfg's format and starts pulling blocks
// from r. bufferSize is the device buffer duration; zero uses oto's
// default.
func Open(r engine.Renderer, cfg engine.Config, bufferSize time.Duration) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	d := &Device{
		ctx:    ctx,
		stream: NewStream(r, cfg.Channels, cfg.MaxBlock),
		cfg:    cfg,
	}
	d.player = ctx.NewPlayer(d.stream)
	d.player.Play()

	return d, nil
}

func (d *Device) Config() engine.Config { return d.cfg }

// Pause suspends the device; rendering stops until Resume.
func (d *Device) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ctx.Suspend(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (d *Device) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ctx.Resume(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Latency is the amount of audio buffered in the player.
func (d *Device) Latency() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.player == nil {
		return 0
	}
	frames := d.player.BufferedSize() / d.stream.FrameSize()
	return time.Duration(frames) * time.Second / time.Duration(d.cfg.SampleRate)
}

// Err reports a playback error of the underlying player.
func (d *Device) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.player == nil {
		return nil
	}
	return d.player.Err()
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.player == nil {
		return nil
	}
	err := d.player.Close()
	d.player = nil
	if err != nil {
		return fmt.Errorf("closing player: %w", err)
	}
	return nil
}
