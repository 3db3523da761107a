// SPDX-License-Identifier: EPL-2.0

// Package output connects an engine.Renderer to the sound card through
// github.com/ebitengine/oto/v3.
//
// Stream is the host shim: oto pulls bytes from it on its own goroutine,
// and each pull becomes one or more Render calls of at most MaxBlock
// frames. Device owns the oto context and player.
//
//	dev, err := output.Open(eng, eng.Config(), 50*time.Millisecond)
//	defer dev.Close()
package output
