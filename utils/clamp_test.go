// SPDX-License-Identifier: EPL-2.0

package utils

import "testing"

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -2, 0, 1, 0},
		{"above", 3, 0, 1, 1},
		{"at low edge", 0, 0, 1, 0},
		{"at high edge", 1, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	t.Parallel()

	if got := Clamp(70, 1, 50); got != 50 {
		t.Errorf("Clamp(70, 1, 50) = %d, want 50", got)
	}
	if got := Clamp(-3, 1, 50); got != 1 {
		t.Errorf("Clamp(-3, 1, 50) = %d, want 1", got)
	}
}
