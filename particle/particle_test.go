package particle

import (
	"testing"

	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

func TestNew(t *testing.T) {
	x := vec3.New(1, 2, 3)
	v := vec3.New(0, 1, 0)
	p := New(7, x, v, 2.5, 1, false)

	if p.ID != 7 || p.X != x || p.V != v || p.M != 2.5 || p.Type != 1 {
		t.Errorf("New returned unexpected fields: %+v", p)
	}
	if !p.Active {
		t.Error("New should construct an active particle")
	}
	if p.Stationary {
		t.Error("New(..., false) should not be stationary")
	}
	if p.MoleculeID != -1 {
		t.Errorf("MoleculeID = %d, want -1 (unbonded)", p.MoleculeID)
	}
}

func TestNewStationaryZeroesVelocity(t *testing.T) {
	v := vec3.New(5, 5, 5)
	p := New(1, vec3.New(0, 0, 0), v, 1, 1, true)

	if p.V != (vec3.Vec3{}) {
		t.Errorf("stationary particle should have zero velocity, got %v", p.V)
	}
	if !p.Stationary {
		t.Error("Stationary flag should be set")
	}
}
