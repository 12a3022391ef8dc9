package sim

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/noahpy/MolSim-SS24-sub000/boundary"
	"github.com/noahpy/MolSim-SS24-sub000/cellgrid"
	"github.com/noahpy/MolSim-SS24-sub000/container"
	"github.com/noahpy/MolSim-SS24-sub000/force"
	"github.com/noahpy/MolSim-SS24-sub000/ljtable"
	"github.com/noahpy/MolSim-SS24-sub000/particle"
	"github.com/noahpy/MolSim-SS24-sub000/thermostat"
	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

func newTestDriver(cont *container.Container, grid *cellgrid.Grid, bcfg boundary.Config) *Driver {
	grid.Populate(cont)
	lj := ljtable.Build(map[int]ljtable.TypeParams{1: {Epsilon: 1, Sigma: 1}})

	d := New()
	d.Container = cont
	d.Grid = grid
	d.Boundary = boundary.NewHandler(bcfg, grid, cont)
	d.Force = &force.Kernel{Cutoff: grid.Cutoff(), LJ: lj}
	d.Thermo = &thermostat.Thermostat{Kind: thermostat.None}
	d.DeltaT = 0.01
	d.EndTime = 1
	d.GridFreq = 1
	return d
}

func allOutflow() boundary.Config {
	return boundary.Config{Faces: map[cellgrid.Face]boundary.Kind{
		cellgrid.Left: boundary.Outflow, cellgrid.Right: boundary.Outflow,
		cellgrid.Bottom: boundary.Outflow, cellgrid.Top: boundary.Outflow,
	}}
}

func allPeriodic() boundary.Config {
	return boundary.Config{Faces: map[cellgrid.Face]boundary.Kind{
		cellgrid.Left: boundary.Periodic, cellgrid.Right: boundary.Periodic,
		cellgrid.Bottom: boundary.Periodic, cellgrid.Top: boundary.Periodic,
	}}
}

// TestStepOutflowRemovesExactlyHaloOccupants seeds a mix of interior
// particles and escapees already outside the domain; after one step the
// inactive count must equal the number of particles whose pre-step cell was
// halo, and further steps never resurrect anyone.
func TestStepOutflowRemovesExactlyHaloOccupants(t *testing.T) {
	cont := container.New()
	inside := []vec3.Vec3{
		vec3.New(2, 2, 0), vec3.New(2, 8, 0), vec3.New(8, 2, 0),
		vec3.New(8, 8, 0), vec3.New(5, 5, 0),
	}
	outside := []vec3.Vec3{
		vec3.New(-1, 5, 0), vec3.New(11, 5, 0), vec3.New(5, -1, 0),
	}
	for _, x := range append(append([]vec3.Vec3{}, inside...), outside...) {
		cont.Add(x, vec3.Vec3{}, 1, 1, false)
	}

	grid := cellgrid.New(vec3.New(0, 0, 0), vec3.New(10, 10, 0), 2.5)
	d := newTestDriver(cont, grid, allOutflow())

	haloBefore := 0
	cont.All(func(p *particle.Particle) {
		if grid.CellAt(grid.IndexFromPosition(p.X)).Type == cellgrid.Halo {
			haloBefore++
		}
	})
	if haloBefore != len(outside) {
		t.Fatalf("pre-step halo count = %d, want %d", haloBefore, len(outside))
	}

	d.Step()
	if got := cont.Len() - cont.ActiveCount(); got != haloBefore {
		t.Errorf("inactive count after one step = %d, want %d", got, haloBefore)
	}

	prev := cont.ActiveCount()
	for i := 0; i < 10; i++ {
		d.Step()
		if cont.ActiveCount() > prev {
			t.Fatalf("active count grew from %d to %d under all-outflow boundaries", prev, cont.ActiveCount())
		}
		prev = cont.ActiveCount()
	}
}

// TestStepPeriodicConservesCountAndWraps drives one particle across the
// right edge under all-periodic boundaries: nothing is ever deleted, and
// the crossing re-enters on the left.
func TestStepPeriodicConservesCountAndWraps(t *testing.T) {
	cont := container.New()
	p := cont.Add(vec3.New(9.8, 5, 0), vec3.New(60, 0, 0), 1, 1, false)

	grid := cellgrid.New(vec3.New(0, 0, 0), vec3.New(10, 10, 0), 2.5)
	d := newTestDriver(cont, grid, allPeriodic())

	for i := 0; i < 5; i++ {
		d.Step()
		if cont.ActiveCount() != 1 {
			t.Fatalf("active count = %d after step %d, want 1", cont.ActiveCount(), i+1)
		}
		if p.X.X < 0 || p.X.X >= 10 {
			t.Fatalf("particle at x=%v after step %d, want wrapped into [0,10)", p.X.X, i+1)
		}
	}
}

func totalMomentum(c *container.Container) [3]float64 {
	var px, py, pz []float64
	c.All(func(p *particle.Particle) {
		px = append(px, p.M*p.V.X)
		py = append(py, p.M*p.V.Y)
		pz = append(pz, p.M*p.V.Z)
	})
	return [3]float64{floats.Sum(px), floats.Sum(py), floats.Sum(pz)}
}

// TestStepPeriodicConservesMomentum pairs two interacting particles well
// away from the boundary layer under all-periodic boundaries: the
// symmetric pair force keeps center-of-mass momentum constant to
// floating-point tolerance.
func TestStepPeriodicConservesMomentum(t *testing.T) {
	cont := container.New()
	cont.Add(vec3.New(4.4, 5, 0), vec3.New(0.2, 0, 0), 1, 1, false)
	cont.Add(vec3.New(5.6, 5, 0), vec3.New(-0.2, 0, 0), 1, 1, false)

	grid := cellgrid.New(vec3.New(0, 0, 0), vec3.New(10, 10, 0), 2.5)
	d := newTestDriver(cont, grid, allPeriodic())

	before := totalMomentum(cont)
	for i := 0; i < 10; i++ {
		d.Step()
	}
	after := totalMomentum(cont)
	for a := 0; a < 3; a++ {
		if math.Abs(after[a]-before[a]) > 1e-9 {
			t.Errorf("momentum axis %d drifted from %v to %v", a, before[a], after[a])
		}
	}
}

// TestStepLeavesStationaryParticlesUntouched runs several steps with a
// moving particle within cutoff of a stationary one: the stationary
// particle's position stays fixed and its velocity and force stay zero.
func TestStepLeavesStationaryParticlesUntouched(t *testing.T) {
	cont := container.New()
	fixed := cont.Add(vec3.New(5, 5, 0), vec3.Vec3{}, 1, 1, true)
	cont.Add(vec3.New(5, 6.5, 0), vec3.New(0.1, 0, 0), 1, 1, false)

	grid := cellgrid.New(vec3.New(0, 0, 0), vec3.New(10, 10, 0), 2.5)
	d := newTestDriver(cont, grid, allOutflow())

	for i := 0; i < 5; i++ {
		d.Step()
	}
	if fixed.X != vec3.New(5, 5, 0) {
		t.Errorf("stationary particle moved to %v", fixed.X)
	}
	if fixed.V != (vec3.Vec3{}) || fixed.F != (vec3.Vec3{}) {
		t.Errorf("stationary particle picked up V=%v F=%v", fixed.V, fixed.F)
	}
}

type countingWriter struct {
	iterations []int
}

func (w *countingWriter) Write(c *container.Container, iteration int) error {
	w.iterations = append(w.iterations, iteration)
	return nil
}
func (w *countingWriter) Close() error { return nil }

func TestStepHonorsPlotFrequency(t *testing.T) {
	cont := container.New()
	cont.Add(vec3.New(5, 5, 0), vec3.Vec3{}, 1, 1, false)

	grid := cellgrid.New(vec3.New(0, 0, 0), vec3.New(10, 10, 0), 2.5)
	d := newTestDriver(cont, grid, allOutflow())
	w := &countingWriter{}
	d.Writer = w
	d.PlotFreq = 2

	for i := 0; i < 5; i++ {
		d.Step()
	}
	want := []int{2, 4}
	if len(w.iterations) != len(want) {
		t.Fatalf("writer called at iterations %v, want %v", w.iterations, want)
	}
	for i := range want {
		if w.iterations[i] != want[i] {
			t.Errorf("writer call %d at iteration %d, want %d", i, w.iterations[i], want[i])
		}
	}
}

// TestRunStopsAtEndTime checks the terminal condition: time advances by
// DeltaT per step until it reaches EndTime.
func TestRunStopsAtEndTime(t *testing.T) {
	cont := container.New()
	cont.Add(vec3.New(5, 5, 0), vec3.Vec3{}, 1, 1, false)

	grid := cellgrid.New(vec3.New(0, 0, 0), vec3.New(10, 10, 0), 2.5)
	d := newTestDriver(cont, grid, allOutflow())
	d.DeltaT = 0.25
	d.EndTime = 1.0

	d.Run()
	if d.Iteration != 4 {
		t.Errorf("Run performed %d iterations, want 4", d.Iteration)
	}
	if d.Time < d.EndTime {
		t.Errorf("Run stopped at time %v, before EndTime %v", d.Time, d.EndTime)
	}
}
