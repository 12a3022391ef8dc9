package vec3

import "golang.org/x/exp/constraints"

// Clamp restricts v to [lo, hi], used by cellgrid's axis-index saturation
// into the halo layer.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
