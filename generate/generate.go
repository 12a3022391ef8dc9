// Package generate provides the geometric particle-cluster builders
// (cuboid, sphere, membrane lattice) as programmatic population sources.
// File-based cluster descriptions are decoded elsewhere (see simio); these
// builders only ever insert directly into a container.
package generate

import (
	"math"
	"math/rand"

	"github.com/noahpy/MolSim-SS24-sub000/container"
	"github.com/noahpy/MolSim-SS24-sub000/molecule"
	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

// Cuboid describes a lattice-aligned block of particles.
type Cuboid struct {
	Origin         vec3.Vec3
	Dim            [3]int // particle count per axis
	Spacing        float64
	Mass           float64
	Vel            vec3.Vec3
	BrownianVel    float64
	BrownianDim    int
	Type           int
	StationaryType bool
}

// AddCuboid inserts Dim[0]*Dim[1]*Dim[2] particles on a simple cubic lattice
// into c, each perturbed by an independent Maxwell-Boltzmann draw of the
// given Brownian scale.
func AddCuboid(c *container.Container, cu Cuboid, rng *rand.Rand) {
	for ix := 0; ix < cu.Dim[0]; ix++ {
		for iy := 0; iy < cu.Dim[1]; iy++ {
			for iz := 0; iz < cu.Dim[2]; iz++ {
				pos := vec3.New(
					cu.Origin.X+float64(ix)*cu.Spacing,
					cu.Origin.Y+float64(iy)*cu.Spacing,
					cu.Origin.Z+float64(iz)*cu.Spacing,
				)
				v := cu.Vel.Add(brownianPerturb(cu.BrownianVel, cu.BrownianDim, rng))
				c.Add(pos, v, cu.Mass, cu.Type, cu.StationaryType)
			}
		}
	}
}

// Sphere describes a discretized ball of particles on a cubic lattice,
// keeping only lattice points within Radius of Center.
type Sphere struct {
	Center         vec3.Vec3
	Radius         float64
	Spacing        float64
	Mass           float64
	Vel            vec3.Vec3
	BrownianVel    float64
	BrownianDim    int
	Type           int
	StationaryType bool
}

// AddSphere inserts every lattice point within Radius of Center.
func AddSphere(c *container.Container, s Sphere, rng *rand.Rand) {
	n := int(math.Ceil(s.Radius / s.Spacing))
	for ix := -n; ix <= n; ix++ {
		for iy := -n; iy <= n; iy++ {
			for iz := -n; iz <= n; iz++ {
				pos := vec3.New(
					s.Center.X+float64(ix)*s.Spacing,
					s.Center.Y+float64(iy)*s.Spacing,
					s.Center.Z+float64(iz)*s.Spacing,
				)
				if pos.Sub(s.Center).Norm() > s.Radius {
					continue
				}
				v := s.Vel.Add(brownianPerturb(s.BrownianVel, s.BrownianDim, rng))
				c.Add(pos, v, s.Mass, s.Type, s.StationaryType)
			}
		}
	}
}

// Membrane describes a 2-D lattice of bonded particles lying in the XY
// plane, with Width*Height particles spaced Spacing apart.
type Membrane struct {
	Origin  vec3.Vec3
	Width   int
	Height  int
	Spacing float64
	Mass    float64
	Vel     vec3.Vec3
	K       float64
	R0      float64
	Type    int
}

// AddMembrane inserts a Width*Height lattice of particles and returns the
// topology recording direct (up/right) and diagonal (upper-right/
// lower-right) bonds between them, per the molecular convention.
func AddMembrane(c *container.Container, m Membrane) *molecule.Topology {
	topo := molecule.NewTopology(m.Spacing, m.K)
	ids := make([][]int, m.Width)
	for ix := 0; ix < m.Width; ix++ {
		ids[ix] = make([]int, m.Height)
		for iy := 0; iy < m.Height; iy++ {
			pos := vec3.New(
				m.Origin.X+float64(ix)*m.Spacing,
				m.Origin.Y+float64(iy)*m.Spacing,
				m.Origin.Z,
			)
			p := c.Add(pos, m.Vel, m.Mass, m.Type, false)
			p.MoleculeID = 0
			ids[ix][iy] = p.ID
		}
	}
	for ix := 0; ix < m.Width; ix++ {
		for iy := 0; iy < m.Height; iy++ {
			id := ids[ix][iy]
			if ix+1 < m.Width {
				topo.AddDirect(id, ids[ix+1][iy])
			}
			if iy+1 < m.Height {
				topo.AddDirect(id, ids[ix][iy+1])
			}
			if ix+1 < m.Width && iy+1 < m.Height {
				topo.AddDiagonal(id, ids[ix+1][iy+1])
			}
			if ix+1 < m.Width && iy-1 >= 0 {
				topo.AddDiagonal(id, ids[ix+1][iy-1])
			}
		}
	}
	return topo
}

func brownianPerturb(scale float64, dim int, rng *rand.Rand) vec3.Vec3 {
	if scale == 0 {
		return vec3.Vec3{}
	}
	p := vec3.New(rng.NormFloat64()*scale, rng.NormFloat64()*scale, 0)
	if dim == 3 {
		p.Z = rng.NormFloat64() * scale
	}
	return p
}
