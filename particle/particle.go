// Package particle defines the per-body state record shared by the
// container, grid, force, and integration packages.
package particle

import "github.com/noahpy/MolSim-SS24-sub000/vec3"

// Particle is one simulated body. Stationary particles always carry
// X, V, F, FOld at whatever value they held when flagged stationary after
// construction; the integrator, thermostat, and force kernel all skip them.
type Particle struct {
	X, V, F, FOld vec3.Vec3

	M          float64
	Type       int
	ID         int
	Active     bool
	Stationary bool

	// MoleculeID identifies the membrane/molecule this particle belongs to,
	// or -1 if it is not bonded to anything.
	MoleculeID int
}

// New constructs an active particle. stationary should reflect a per-type
// policy decided once by the caller (e.g. a configured set of immovable
// types) — it is never recomputed later.
func New(id int, x, v vec3.Vec3, m float64, typ int, stationary bool) *Particle {
	p := &Particle{
		X:          x,
		V:          v,
		M:          m,
		Type:       typ,
		ID:         id,
		Active:     true,
		Stationary: stationary,
		MoleculeID: -1,
	}
	if stationary {
		p.V = vec3.Vec3{}
	}
	return p
}
