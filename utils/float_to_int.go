// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt converts a normalized sample to a signed integer of the given
// bit depth, clamping to [-1, 1].
func Float32ToInt(x float32, bitDepth int) int {
	scale := float32(int(1)<<(bitDepth-1) - 1)
	return int(Clamp(x, -1, 1) * scale)
}

// IntToFloat32 normalizes a signed PCM integer of the given bit depth to
// [-1, 1). Unknown depths are treated as 16-bit.
func IntToFloat32(v int, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(v) / 128.0
	case 16:
		return float32(v) / 32768.0
	case 24:
		return float32(v) / 8388608.0
	case 32:
		return float32(float64(v) / 2147483648.0)
	default:
		return float32(v) / 32768.0
	}
}
