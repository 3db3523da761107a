// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidRate     = errors.New("sample rate must be positive")
	ErrEmptyInput      = errors.New("input has no frames")
	ErrInvalidChannels = errors.New("channel count must be positive")
	ErrUnknownFormat   = errors.New("no decoder registered for format")
	ErrStalledSource   = errors.New("source stopped producing samples without EOF")
)
