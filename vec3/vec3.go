// Package vec3 provides the fixed-size 3-component vector arithmetic used
// throughout the particle, grid, and force packages.
package vec3

import "math"

// Vec3 is a 3-component double-precision vector. It is small enough to pass
// and return by value everywhere; none of the simulation's hot loops take its
// address.
type Vec3 struct {
	X, Y, Z float64
}

func New(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Neg() Vec3 { return Vec3{-a.X, -a.Y, -a.Z} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) NormSq() float64 { return a.Dot(a) }

func (a Vec3) Norm() float64 { return math.Sqrt(a.NormSq()) }

// AddScaled returns a + b*s without an intermediate allocation concern (Vec3
// is a value type, so this is just arithmetic, but the helper keeps call
// sites in the integrator and force kernel terse).
func (a Vec3) AddScaled(b Vec3, s float64) Vec3 {
	return Vec3{a.X + b.X*s, a.Y + b.Y*s, a.Z + b.Z*s}
}

// Zero reports whether every component is exactly 0.
func (a Vec3) Zero() bool { return a.X == 0 && a.Y == 0 && a.Z == 0 }

// Axis returns the i-th component (0=X,1=Y,2=Z). Used by code that needs to
// loop over dimensions generically, such as cell-index computation.
func (a Vec3) Axis(i int) float64 {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// WithAxis returns a copy of a with axis i set to v.
func (a Vec3) WithAxis(i int, v float64) Vec3 {
	switch i {
	case 0:
		a.X = v
	case 1:
		a.Y = v
	default:
		a.Z = v
	}
	return a
}
