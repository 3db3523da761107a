// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid engine config")
	ErrLevelRange    = errors.New("level out of range")
	ErrNoRegion      = errors.New("no region with that ordinal")
	ErrSuperseded    = errors.New("load superseded by a newer one")
)
