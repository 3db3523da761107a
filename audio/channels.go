// SPDX-License-Identifier: EPL-2.0

package audio

// WrapChannels maps src onto channels output channels. Output channel c is a
// copy of source channel c % src.Channels(): a mono source fills every
// output channel, a stereo source feeding four outputs repeats L R L R, and
// extra source channels beyond the output count are dropped.
func WrapChannels(src *Buffer, channels int) *Buffer {
	if channels == src.Channels() {
		return src
	}

	out := &Buffer{SampleRate: src.SampleRate, Data: make([][]float32, channels)}
	for c := range out.Data {
		out.Data[c] = append([]float32(nil), src.Data[c%src.Channels()]...)
	}

	return out
}
