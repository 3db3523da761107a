// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotFlacFile           = errors.New("not a FLAC stream")
	ErrUnsupportedFlacLayout = errors.New("unsupported FLAC layout")
	ErrUnsupportedBitDepth   = errors.New("unsupported FLAC bit depth")
	ErrCorruptFrame          = errors.New("corrupt FLAC frame")
)
