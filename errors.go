// SPDX-License-Identifier: EPL-2.0

package sampbx

import "errors"

var ErrInvalidLength = errors.New("render length must be positive")
