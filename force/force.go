// Package force implements the pairwise Lennard-Jones, WCA-truncated
// membrane-repulsive, harmonic bonded, gravity, and external constant
// forces, evaluated once per step over the linked-cell grid.
package force

import (
	"math"

	"github.com/noahpy/MolSim-SS24-sub000/cellgrid"
	"github.com/noahpy/MolSim-SS24-sub000/container"
	"github.com/noahpy/MolSim-SS24-sub000/ljtable"
	"github.com/noahpy/MolSim-SS24-sub000/molecule"
	"github.com/noahpy/MolSim-SS24-sub000/particle"
	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

// Gravity is a uniform body acceleration applied to every active,
// non-stationary particle's mass, typically along the y axis.
type Gravity struct {
	Axis  int // 0,1,2
	Const float64
}

// ExternalForce applies an additive, time-bounded body force to a fixed set
// of particle ids — used e.g. to stretch a membrane by its corners.
type ExternalForce struct {
	ParticleIDs []int
	Vector      vec3.Vec3
	UntilTime   float64 // force applies only while sim time < UntilTime; <=0 means unbounded
}

// Kernel evaluates forces for one step.
type Kernel struct {
	Cutoff   float64
	LJ       *ljtable.Table
	Topology *molecule.Topology // nil if no membrane in this simulation
	Gravity  Gravity
	External []ExternalForce
}

// Compute resets f_old := f for every active, non-stationary particle, then
// accumulates the new force: intra-cell pairs, stencil-neighbor pairs,
// ghost interactions from adjacent halo cells, bonded/repulsive membrane
// terms, gravity, and external forcing.
func (k *Kernel) Compute(c *container.Container, g *cellgrid.Grid, simTime float64) {
	c.All(func(p *particle.Particle) {
		if p.Stationary {
			return
		}
		p.FOld = p.F
		p.F = vec3.Vec3{}
	})

	rc2 := k.Cutoff * k.Cutoff
	var ghostBuf []cellgrid.Ghost

	g.AllNonHalo(func(cell *cellgrid.Cell) {
		// Intra-cell pairs.
		for i := 0; i < len(cell.IDs); i++ {
			a := c.At(cell.IDs[i])
			for j := i + 1; j < len(cell.IDs); j++ {
				b := c.At(cell.IDs[j])
				k.applyPair(a, b, rc2)
			}
		}
		// Stencil-neighbor pairs (half-space, no double counting).
		for _, nIdx := range cell.StencilNeighbours {
			nCell := g.CellAt(nIdx)
			for _, aid := range cell.IDs {
				a := c.At(aid)
				for _, bid := range nCell.IDs {
					b := c.At(bid)
					k.applyPair(a, b, rc2)
				}
			}
		}
		// Ghost interactions: one-directional, force added to the real
		// particle only.
		ghostBuf = g.HaloNeighborGhosts(cell.Index, ghostBuf[:0])
		for _, aid := range cell.IDs {
			a := c.At(aid)
			if a.Stationary {
				continue
			}
			for _, gh := range ghostBuf {
				k.applyGhost(a, gh, rc2)
			}
		}
	})

	if k.Topology != nil {
		k.applyBonds(c)
	}

	c.All(func(p *particle.Particle) {
		if p.Stationary {
			return
		}
		if k.Gravity.Const != 0 {
			p.F = p.F.WithAxis(k.Gravity.Axis, p.F.Axis(k.Gravity.Axis)+k.Gravity.Const*p.M)
		}
	})

	for _, ext := range k.External {
		if ext.UntilTime > 0 && simTime >= ext.UntilTime {
			continue
		}
		for _, id := range ext.ParticleIDs {
			p := c.At(id)
			if !p.Active || p.Stationary {
				continue
			}
			p.F = p.F.Add(ext.Vector)
		}
	}
}

// ljForce computes the Lennard-Jones coefficient k such that the force on
// the particle at the head of d (d = a.x - b.x) is k*d, and the force on
// the particle at its tail is -k*d. Returns ok=false if outside the cutoff.
func ljForce(d vec3.Vec3, m ljtable.Mixed, rc2 float64) (coef float64, ok bool) {
	r2 := d.NormSq()
	if r2 > rc2 || r2 == 0 {
		return 0, false
	}
	r6 := r2 * r2 * r2
	r12 := r6 * r6
	coef = m.Alpha * (m.Beta/r6 + m.Gamma/r12) / r2
	return coef, true
}

func (k *Kernel) applyPair(a, b *particle.Particle, rc2 float64) {
	if k.Topology != nil && a.MoleculeID >= 0 && a.MoleculeID == b.MoleculeID {
		if k.Topology.IsBonded(a.ID, b.ID) {
			return // handled by applyBonds
		}
		k.applyRepulsiveOnly(a, b)
		return
	}
	d := a.X.Sub(b.X)
	coef, ok := ljForce(d, k.LJ.Get(a.Type, b.Type), rc2)
	if !ok {
		return
	}
	fa := d.Scale(coef)
	if !a.Stationary {
		a.F = a.F.Add(fa)
	}
	if !b.Stationary {
		b.F = b.F.Sub(fa)
	}
}

// applyRepulsiveOnly is the Weeks-Chandler-Andersen truncated branch for
// membrane-internal non-bonded pairs: full LJ below the equilibrium
// distance, zero beyond it.
func (k *Kernel) applyRepulsiveOnly(a, b *particle.Particle) {
	m := k.LJ.Get(a.Type, b.Type)
	rc := m.Sigma * twoToOneSixth
	d := a.X.Sub(b.X)
	coef, ok := ljForce(d, m, rc*rc)
	if !ok {
		return
	}
	fa := d.Scale(coef)
	if !a.Stationary {
		a.F = a.F.Add(fa)
	}
	if !b.Stationary {
		b.F = b.F.Sub(fa)
	}
}

func (k *Kernel) applyGhost(a *particle.Particle, gh cellgrid.Ghost, rc2 float64) {
	d := a.X.Sub(gh.X)
	coef, ok := ljForce(d, k.LJ.Get(a.Type, gh.Type), rc2)
	if !ok {
		return
	}
	a.F = a.F.Add(d.Scale(coef))
}

// applyBonds applies the harmonic spring force between direct and diagonal
// membrane neighbors, iterated only from the lower-id side so each bonded
// pair is summed exactly once.
func (k *Kernel) applyBonds(c *container.Container) {
	t := k.Topology
	for id, neighbors := range t.Direct {
		a := c.At(id)
		for _, nb := range neighbors {
			b := c.At(nb)
			applyHarmonic(a, b, t.K, t.Spacing)
		}
	}
	diag := t.Spacing * math.Sqrt2
	for id, neighbors := range t.Diagonal {
		a := c.At(id)
		for _, nb := range neighbors {
			b := c.At(nb)
			applyHarmonic(a, b, t.K, diag)
		}
	}
}

func applyHarmonic(a, b *particle.Particle, k, r0 float64) {
	d := b.X.Sub(a.X)
	r := d.Norm()
	if r == 0 {
		return
	}
	dHat := d.Scale(1 / r)
	fOnP := dHat.Scale(k * (r - r0))
	if !a.Stationary {
		a.F = a.F.Add(fOnP)
	}
	if !b.Stationary {
		b.F = b.F.Sub(fOnP)
	}
}
