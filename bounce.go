// SPDX-License-Identifier: EPL-2.0

package sampbx

import (
	"context"
	"fmt"

	"github.com/ik5/sampbx/audio"
	"github.com/ik5/sampbx/engine"
	"github.com/ik5/sampbx/store"
)

// Bounce starts playback and renders it offline at the engine's format, in
// blocks of the configured MaxBlock. Rendering ends at the end of the block
// in which playback stops, or after maxFrames frames, whichever is first.
//
// Looping playback never stops on its own, so the result is then exactly
// maxFrames long.
func Bounce(e *engine.Engine, maxFrames int) (*audio.Buffer, error) {
	if maxFrames <= 0 {
		return nil, fmt.Errorf("%w: %d frames", ErrInvalidLength, maxFrames)
	}

	cfg := e.Config()
	buf := audio.NewBuffer(cfg.SampleRate, cfg.Channels, maxFrames)
	block := make([][]float32, cfg.Channels)

	e.Play()

	pos := 0
	for pos < maxFrames {
		n := min(cfg.MaxBlock, maxFrames-pos)
		for c := range block {
			block[c] = buf.Data[c][pos : pos+n]
		}
		e.Render(block, nil)
		pos += n

		if e.Suspended() {
			break
		}
	}

	buf.Truncate(pos)
	return buf, nil
}

// LoadAndBounce creates an engine for cfg, loads paths into it and bounces
// up to maxFrames frames of playback. Loader options are passed to the
// engine.
func LoadAndBounce(ctx context.Context, cfg engine.Config, paths []string, maxFrames int, opts ...store.Option) (*audio.Buffer, *store.Report, error) {
	e, err := engine.New(cfg, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("creating engine: %w", err)
	}

	report, err := e.Load(ctx, paths)
	if err != nil {
		return nil, nil, err
	}

	buf, err := Bounce(e, maxFrames)
	if err != nil {
		return nil, report, err
	}

	return buf, report, nil
}
