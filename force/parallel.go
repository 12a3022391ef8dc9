package force

import (
	"math"
	"runtime"
	"sync"

	"github.com/noahpy/MolSim-SS24-sub000/cellgrid"
	"github.com/noahpy/MolSim-SS24-sub000/container"
	"github.com/noahpy/MolSim-SS24-sub000/particle"
	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

var twoToOneSixth = math.Pow(2, 1.0/6.0)

// ComputeParallel is a data-parallel equivalent of Compute: it partitions
// a snapshot slice of the active, non-stationary particles into numWorkers
// contiguous chunks and lets each worker compute the full surrounding-neighborhood force for
// its own particles independently. Because each worker only ever writes to
// particles in its own chunk, no synchronization is needed between workers
// — unlike the cell-stencil half-space traversal in Compute, which must
// serialize writes to particles shared between a cell and its stencil
// neighbor. There is no apply phase: each worker's output (a particle's
// new F) never overlaps another worker's.
func (k *Kernel) ComputeParallel(c *container.Container, g *cellgrid.Grid, simTime float64, numWorkers int) {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	c.All(func(p *particle.Particle) {
		if p.Stationary {
			return
		}
		p.FOld = p.F
		p.F = vec3.Vec3{}
	})

	var snapshot []*particle.Particle
	c.All(func(p *particle.Particle) {
		if !p.Stationary {
			snapshot = append(snapshot, p)
		}
	})

	n := len(snapshot)
	if n == 0 {
		return
	}
	if numWorkers > n {
		numWorkers = n
	}
	chunk := (n + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	rc2 := k.Cutoff * k.Cutoff
	for w := 0; w < numWorkers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			var ghostBuf []cellgrid.Ghost
			var neighborIDs []int
			for i := lo; i < hi; i++ {
				p := snapshot[i]
				idx := g.IndexFromPosition(p.X)
				neighborIDs = g.NeighboringParticles(idx, neighborIDs[:0])
				for _, nid := range neighborIDs {
					if nid == p.ID {
						continue
					}
					other := c.At(nid)
					k.accumulateFull(p, other, rc2)
				}
				ghostBuf = g.HaloNeighborGhosts(idx, ghostBuf[:0])
				for _, gh := range ghostBuf {
					k.applyGhost(p, gh, rc2)
				}
				if k.Topology != nil && p.MoleculeID >= 0 {
					for _, b := range k.Topology.BondsOf(p.ID) {
						other := c.At(b.Other)
						applyHarmonicOneSided(p, other, k.Topology.K, b.R0)
					}
				}
				if k.Gravity.Const != 0 {
					p.F = p.F.WithAxis(k.Gravity.Axis, p.F.Axis(k.Gravity.Axis)+k.Gravity.Const*p.M)
				}
			}
		}(lo, hi)
	}
	wg.Wait()

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

// accumulateFull adds to p.F only (not other.F) the force exerted by other
// on p: the full, non-half-space neighborhood counterpart of applyPair.
func (k *Kernel) accumulateFull(p, other *particle.Particle, rc2 float64) {
	if k.Topology != nil && p.MoleculeID >= 0 && p.MoleculeID == other.MoleculeID {
		if k.Topology.IsBonded(p.ID, other.ID) {
			return
		}
		m := k.LJ.Get(p.Type, other.Type)
		rc := m.Sigma * twoToOneSixth
		d := p.X.Sub(other.X)
		coef, ok := ljForce(d, m, rc*rc)
		if !ok {
			return
		}
		p.F = p.F.Add(d.Scale(coef))
		return
	}
	d := p.X.Sub(other.X)
	coef, ok := ljForce(d, k.LJ.Get(p.Type, other.Type), rc2)
	if !ok {
		return
	}
	p.F = p.F.Add(d.Scale(coef))
}

// applyHarmonicOneSided writes only to p.F, per molecule.Topology.BondsOf's
// direction-independent spring formula.
func applyHarmonicOneSided(p, other *particle.Particle, k, r0 float64) {
	d := other.X.Sub(p.X)
	r := d.Norm()
	if r == 0 {
		return
	}
	p.F = p.F.Add(d.Scale(1 / r).Scale(k * (r - r0)))
}
