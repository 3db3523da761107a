// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/sampbx/utils"
)

// OutputFrames is the length Resample produces for frames input frames:
// round(frames * dstRate / srcRate), never less than one frame for a
// non-empty input.
func OutputFrames(frames, srcRate, dstRate int) int {
	if frames <= 0 {
		return 0
	}
	n := int(math.Round(float64(frames) * float64(dstRate) / float64(srcRate)))
	return max(n, 1)
}

// Resample converts src to dstRate using 4-point Lagrange interpolation on
// every channel independently. The input is left untouched.
//
// Output sample i is taken at source position i*srcRate/dstRate. The position
// is computed from i directly instead of being accumulated, so long files do
// not drift. Samples outside the input are clamped to the first/last frame.
//
// When the rates match the result is an exact copy of src.
func Resample(src *Buffer, dstRate int) (*Buffer, error) {
	if src == nil || src.Frames() == 0 {
		return nil, ErrEmptyInput
	}
	if src.SampleRate <= 0 || dstRate <= 0 {
		return nil, ErrInvalidRate
	}

	if src.SampleRate == dstRate {
		return src.Clone(), nil
	}

	frames := OutputFrames(src.Frames(), src.SampleRate, dstRate)
	ratio := float64(src.SampleRate) / float64(dstRate)
	out := NewBuffer(dstRate, src.Channels(), frames)

	for c, in := range src.Data {
		dst := out.Data[c]
		last := len(in) - 1

		for i := range dst {
			pos := float64(i) * ratio
			idx := int(pos)
			x := float32(pos - float64(idx))

			y0 := in[utils.Clamp(idx-1, 0, last)]
			y1 := in[utils.Clamp(idx, 0, last)]
			y2 := in[utils.Clamp(idx+1, 0, last)]
			y3 := in[utils.Clamp(idx+2, 0, last)]

			dst[i] = utils.LagrangeInterpolate(y0, y1, y2, y3, x)
		}
	}

	return out, nil
}
