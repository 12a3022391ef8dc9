// Package thermostat implements kinetic-temperature measurement and
// per-step-capped velocity rescaling, in classical and
// mean-velocity-subtracted ("individual") variants, plus Maxwell-Boltzmann
// velocity seeding.
package thermostat

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/noahpy/MolSim-SS24-sub000/container"
	"github.com/noahpy/MolSim-SS24-sub000/particle"
	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

// Kind selects the rescaling variant. None disables the thermostat
// entirely (the driver should skip calling Update when configured frequency
// is 0, but Update(None) is also a harmless no-op).
type Kind int

const (
	None Kind = iota
	Classical
	Individual
)

// Thermostat rescales velocities toward TargetTemp, never changing the
// current temperature by more than MaxDelta in a single call.
type Thermostat struct {
	Kind       Kind
	TargetTemp float64
	MaxDelta   float64
	Dim        int // 2 or 3
}

// Update applies one rescaling step. A no-op if there are no active
// particles or Kind is None.
func (t *Thermostat) Update(c *container.Container) {
	switch t.Kind {
	case Classical:
		t.updateClassical(c)
	case Individual:
		t.updateIndividual(c)
	}
}

func (t *Thermostat) clampedBeta(current float64) (newTemp, beta float64, ok bool) {
	if current <= 0 {
		return 0, 0, false
	}
	delta := t.TargetTemp - current
	if delta > t.MaxDelta {
		delta = t.MaxDelta
	}
	if delta < -t.MaxDelta {
		delta = -t.MaxDelta
	}
	newTemp = current + delta
	return newTemp, math.Sqrt(newTemp / current), true
}

func (t *Thermostat) updateClassical(c *container.Container) {
	var sumMV2 float64
	n := 0
	c.All(func(p *particle.Particle) {
		if p.Stationary {
			return
		}
		sumMV2 += p.M * p.V.NormSq()
		n++
	})
	if n == 0 {
		return
	}
	energy := sumMV2 / 2
	current := 2 * energy / (float64(n) * float64(t.Dim))
	_, beta, ok := t.clampedBeta(current)
	if !ok {
		return
	}
	c.All(func(p *particle.Particle) {
		if p.Stationary {
			return
		}
		p.V = p.V.Scale(beta)
	})
}

func (t *Thermostat) updateIndividual(c *container.Container) {
	var xs, ys, zs []float64
	var masses []float64
	c.All(func(p *particle.Particle) {
		if p.Stationary {
			return
		}
		xs = append(xs, p.V.X)
		ys = append(ys, p.V.Y)
		zs = append(zs, p.V.Z)
		masses = append(masses, p.M)
	})
	n := len(xs)
	if n == 0 {
		return
	}
	meanV := vec3.New(stat.Mean(xs, nil), stat.Mean(ys, nil), stat.Mean(zs, nil))

	var sumMV2 float64
	for i := 0; i < n; i++ {
		v := vec3.New(xs[i], ys[i], zs[i]).Sub(meanV)
		sumMV2 += masses[i] * v.NormSq()
	}
	current := 2 * sumMV2 / (float64(n) * float64(t.Dim))
	_, beta, ok := t.clampedBeta(current)
	if !ok {
		return
	}
	c.All(func(p *particle.Particle) {
		if p.Stationary {
			return
		}
		p.V = meanV.Add(p.V.Sub(meanV).Scale(beta))
	})
}

// InitBrownian seeds every active, non-stationary particle's velocity with
// an additive Maxwell-Boltzmann perturbation N(0, sqrt(initTemp/m)) in each
// dimension of dim.
func InitBrownian(c *container.Container, initTemp float64, dim int, rng *rand.Rand) {
	c.All(func(p *particle.Particle) {
		if p.Stationary {
			return
		}
		sigma := math.Sqrt(initTemp / p.M)
		dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: rng}
		perturb := vec3.New(dist.Rand(), dist.Rand(), 0)
		if dim == 3 {
			perturb.Z = dist.Rand()
		}
		p.V = p.V.Add(perturb)
	})
}
