// SPDX-License-Identifier: EPL-2.0

package store

import "errors"

var (
	ErrInvalidChannels = errors.New("channel count must be positive")
	ErrRegionIndex     = errors.New("region index out of range")
	ErrGainRange       = errors.New("region gain out of range")
	ErrCorruptStore    = errors.New("store layout is inconsistent")
	ErrTooManyFiles    = errors.New("file limit reached")
)
