// Package sim implements the fixed-step simulation driver: the phase
// sequence that wires the boundary handler, force kernel, integrator, grid,
// thermostat, and output/analytics writers together each step.
package sim

import (
	"log/slog"
	"time"

	"github.com/noahpy/MolSim-SS24-sub000/boundary"
	"github.com/noahpy/MolSim-SS24-sub000/cellgrid"
	"github.com/noahpy/MolSim-SS24-sub000/container"
	"github.com/noahpy/MolSim-SS24-sub000/force"
	"github.com/noahpy/MolSim-SS24-sub000/simio"
	"github.com/noahpy/MolSim-SS24-sub000/telemetry"
	"github.com/noahpy/MolSim-SS24-sub000/thermostat"

	"github.com/noahpy/MolSim-SS24-sub000/integrate"
)

// Driver owns every live subsystem and runs the per-step state machine:
// boundary pre, force, velocity, position, boundary post, iteration++,
// then the periodic output/grid/thermostat/analytics hooks.
type Driver struct {
	Container *container.Container
	Grid      *cellgrid.Grid
	Boundary  *boundary.Handler
	Force     *force.Kernel
	Thermo    *thermostat.Thermostat

	Writer    simio.Writer
	Analytics simio.AnalyticsWriter
	Output    *telemetry.OutputManager

	Perf *PerfCollector
	Log  *slog.Logger

	DeltaT  float64
	Time    float64
	EndTime float64

	Iteration    int
	PlotFreq     int
	GridFreq     int
	ThermoFreq   int
	AnalysisFreq int

	Dim     int
	BinSize float64

	// Parallel selects the data-parallel force evaluation (force.Kernel.
	// ComputeParallel) over the single-threaded cell-stencil traversal.
	Parallel bool
	Workers  int
}

// New constructs a Driver with sane zero-value writer/analytics/logger
// fallbacks (no-op writer and analytics, slog.Default logger) so callers need only set the
// fields they care about.
func New() *Driver {
	return &Driver{
		Writer:    simio.NoopWriter{},
		Analytics: simio.NoopAnalytics{},
		Perf:      NewPerfCollector(0),
		Log:       slog.Default(),
	}
}

// Step runs exactly one iteration of the state machine.
func (d *Driver) Step() {
	now := time.Now()
	d.Perf.StartTick(now)

	d.Perf.StartPhase(PhaseBoundaryPre, now)
	d.Boundary.PreUpdate()

	now = time.Now()
	d.Perf.StartPhase(PhaseForce, now)
	if d.Parallel {
		d.Force.ComputeParallel(d.Container, d.Grid, d.Time, d.Workers)
	} else {
		d.Force.Compute(d.Container, d.Grid, d.Time)
	}

	now = time.Now()
	d.Perf.StartPhase(PhaseVelocity, now)
	integrate.Velocity(d.Container, d.DeltaT)

	now = time.Now()
	d.Perf.StartPhase(PhasePosition, now)
	integrate.Position(d.Container, d.DeltaT)

	now = time.Now()
	d.Perf.StartPhase(PhaseBoundaryPost, now)
	d.Boundary.PostUpdate()

	d.Iteration++

	now = time.Now()
	d.Perf.StartPhase(PhaseOutput, now)
	if d.PlotFreq > 0 && d.Iteration%d.PlotFreq == 0 {
		if err := d.Writer.Write(d.Container, d.Iteration); err != nil {
			d.Log.Warn("writing frame failed", "iteration", d.Iteration, "err", err)
		}
	}

	now = time.Now()
	d.Perf.StartPhase(PhaseGridReassign, now)
	if d.GridFreq > 0 && d.Iteration%d.GridFreq == 0 {
		d.Grid.ReassignAll(d.Container)
	}

	now = time.Now()
	d.Perf.StartPhase(PhaseThermostat, now)
	if d.ThermoFreq > 0 && d.Iteration%d.ThermoFreq == 0 {
		d.Thermo.Update(d.Container)
	}

	now = time.Now()
	d.Perf.StartPhase(PhaseAnalytics, now)
	if d.AnalysisFreq > 0 && d.Iteration%d.AnalysisFreq == 0 {
		d.sampleAnalytics()
	}

	d.Time += d.DeltaT
	d.Perf.EndTick(time.Now())
}

// Run steps the driver until Time >= EndTime.
func (d *Driver) Run() {
	for d.Time < d.EndTime {
		d.Step()
	}
}

func (d *Driver) sampleAnalytics() {
	origin := [3]float64{d.Grid.Origin().X, d.Grid.Origin().Y, d.Grid.Origin().Z}
	size := [3]float64{d.Grid.Size().X, d.Grid.Size().Y, d.Grid.Size().Z}
	binSize := d.BinSize
	if binSize <= 0 {
		binSize = d.Grid.Cutoff()
	}
	density := telemetry.DensityBins(d.Container, origin, size, binSize)
	velocity := telemetry.VelocityBins(d.Container, origin, size, binSize)
	if err := d.Analytics.WriteDensity(density); err != nil {
		d.Log.Warn("writing density sample failed", "iteration", d.Iteration, "err", err)
	}
	if err := d.Analytics.WriteVelocity(velocity); err != nil {
		d.Log.Warn("writing velocity sample failed", "iteration", d.Iteration, "err", err)
	}
	if d.Output != nil {
		stats := telemetry.ComputeWindowStats(d.Container, d.Iteration, d.Time, d.Dim)
		if err := d.Output.WriteStats(stats); err != nil {
			d.Log.Warn("writing stats row failed", "iteration", d.Iteration, "err", err)
		}
	}
}
