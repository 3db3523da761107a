// SPDX-License-Identifier: EPL-2.0

package utils

// LagrangeInterpolate performs 4-point, 3rd-order Lagrange interpolation.
// y0, y1, y2, y3 are four consecutive samples at positions -1, 0, 1 and 2,
// x is the fractional position between y1 and y2 (0 <= x <= 1).
//
// The polynomial passes through every input point, so x=0 returns y1 and
// x=1 returns y2 exactly.
func LagrangeInterpolate(y0, y1, y2, y3, x float32) float32 {
	xm1 := x - 1
	xm2 := x - 2
	xp1 := x + 1

	c0 := -x * xm1 * xm2 / 6
	c1 := xp1 * xm1 * xm2 / 2
	c2 := -xp1 * x * xm2 / 2
	c3 := xp1 * x * xm1 / 6

	return c0*y0 + c1*y1 + c2*y2 + c3*y3
}
