// Package integrate implements the velocity-Verlet position and velocity
// sub-steps. f_old is captured before the force kernel recomputes f
// (force.Kernel.Compute does this), so the velocity sub-step here always
// combines the most recent two force evaluations.
package integrate

import (
	"github.com/noahpy/MolSim-SS24-sub000/container"
	"github.com/noahpy/MolSim-SS24-sub000/particle"
)

// Position advances every active, non-stationary particle's position by one
// step: x <- x + dt*v + (dt^2/2m)*f.
func Position(c *container.Container, dt float64) {
	c.All(func(p *particle.Particle) {
		if p.Stationary {
			return
		}
		p.X = p.X.AddScaled(p.V, dt).AddScaled(p.F, dt*dt/(2*p.M))
	})
}

// Velocity advances every active, non-stationary particle's velocity by one
// step: v <- v + (dt/2m)*(f_old + f). Must run after the force kernel has
// produced the new f for this step; sim.Driver calls it between the force
// kernel and Position.
func Velocity(c *container.Container, dt float64) {
	c.All(func(p *particle.Particle) {
		if p.Stationary {
			return
		}
		sum := p.FOld.Add(p.F)
		p.V = p.V.AddScaled(sum, dt/(2*p.M))
	})
}
