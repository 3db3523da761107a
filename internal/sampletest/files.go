// SPDX-License-Identifier: EPL-2.0

// Package sampletest provides in-memory stand-ins for decoded files.
package sampletest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ik5/sampbx/audio"
)

var ErrNoSuchFile = errors.New("no such file")

// Files maps paths to decoded buffers and implements store.FileDecoder.
// Paths that map to an error fail with it.
type Files struct {
	mu      sync.Mutex
	buffers map[string]*audio.Buffer
	errs    map[string]error
	calls   int
}

func NewFiles() *Files {
	return &Files{
		buffers: make(map[string]*audio.Buffer),
		errs:    make(map[string]error),
	}
}

// Add registers buf under path and returns f for chaining.
func (f *Files) Add(path string, buf *audio.Buffer) *Files {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.buffers[path] = buf
	return f
}

// Fail makes decoding path return err.
func (f *Files) Fail(path string, err error) *Files {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errs[path] = err
	return f
}

// Calls is the number of DecodeFile calls so far.
func (f *Files) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

func (f *Files) DecodeFile(path string) (*audio.Buffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	buf, ok := f.buffers[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSuchFile)
	}

	return buf.Clone(), nil
}

// Ramp returns a buffer whose sample at frame i of channel c is
// base + i/1e5, negated on odd channels. Distinct bases make regions
// distinguishable after concatenation.
func Ramp(sampleRate, channels, frames int, base float32) *audio.Buffer {
	buf := audio.NewBuffer(sampleRate, channels, frames)
	for c := range channels {
		for i := range frames {
			v := base + float32(i)/100000
			if c%2 == 1 {
				v = -v
			}
			buf.Data[c][i] = v
		}
	}
	return buf
}

// Constant returns a buffer filled with v.
func Constant(sampleRate, channels, frames int, v float32) *audio.Buffer {
	buf := audio.NewBuffer(sampleRate, channels, frames)
	for c := range channels {
		for i := range frames {
			buf.Data[c][i] = v
		}
	}
	return buf
}
