// Command molsim runs the molecular-dynamics core as a standalone CLI.
// Input decoding, output rendering, and analytics backends beyond the
// in-memory/no-op implementations are external-collaborator concerns (see
// the simio package); this binary wires the core loop together and is
// deliberately thin.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"

	xrand "golang.org/x/exp/rand"

	"github.com/noahpy/MolSim-SS24-sub000/boundary"
	"github.com/noahpy/MolSim-SS24-sub000/cellgrid"
	"github.com/noahpy/MolSim-SS24-sub000/config"
	"github.com/noahpy/MolSim-SS24-sub000/container"
	"github.com/noahpy/MolSim-SS24-sub000/force"
	"github.com/noahpy/MolSim-SS24-sub000/generate"
	"github.com/noahpy/MolSim-SS24-sub000/ljtable"
	"github.com/noahpy/MolSim-SS24-sub000/sim"
	"github.com/noahpy/MolSim-SS24-sub000/simio"
	"github.com/noahpy/MolSim-SS24-sub000/telemetry"
	"github.com/noahpy/MolSim-SS24-sub000/thermostat"
	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config overlay (empty = embedded defaults)")
	readerKind := flag.String("reader", "empty", "legacy|cluster|empty|ascii|XML (cluster builds the configured default cuboid via generate.AddCuboid)")
	writerKind := flag.String("writer", "", "VTK|XYZ|XML|none (overrides config)")
	startTime := flag.Float64("start", math.NaN(), "override start time")
	endTime := flag.Float64("end", math.NaN(), "override end time")
	deltaT := flag.Float64("delta-t", math.NaN(), "override step size")
	epsilon := flag.Float64("epsilon", math.NaN(), "override epsilon for every registered type")
	sigma := flag.Float64("sigma", math.NaN(), "override sigma for every registered type")
	perfProfile := flag.Bool("perf", false, "log per-phase timing on exit")
	parallel := flag.Bool("parallel", false, "use the data-parallel force kernel")
	workers := flag.Int("workers", 0, "worker count for -parallel (0 = GOMAXPROCS)")
	logLevel := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)})))

	ov := overrides{
		startTime: *startTime, endTime: *endTime, deltaT: *deltaT,
		epsilon: *epsilon, sigma: *sigma,
	}
	if err := run(*configPath, *readerKind, *writerKind, ov, *perfProfile, *parallel, *workers); err != nil {
		var cfgErr configError
		if errors.As(err, &cfgErr) {
			slog.Error("configuration error", "err", err)
			os.Exit(1)
		}
		slog.Error("simulation failed", "err", err)
		os.Exit(2)
	}
}

type configError struct{ error }

// overrides carries the CLI flags that supersede the loaded config; NaN
// means "not set".
type overrides struct {
	startTime, endTime, deltaT float64
	epsilon, sigma             float64
}

func (o overrides) apply(cfg *config.Config) {
	if !math.IsNaN(o.startTime) {
		cfg.Physics.StartTime = o.startTime
	}
	if !math.IsNaN(o.endTime) {
		cfg.Physics.EndTime = o.endTime
	}
	if !math.IsNaN(o.deltaT) {
		cfg.Physics.DeltaT = o.deltaT
	}
	for i := range cfg.Types {
		if !math.IsNaN(o.epsilon) {
			cfg.Types[i].Epsilon = o.epsilon
		}
		if !math.IsNaN(o.sigma) {
			cfg.Types[i].Sigma = o.sigma
		}
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func run(configPath, readerKind, writerKind string, ov overrides, perfProfile, parallel bool, workers int) error {
	if err := config.Init(configPath); err != nil {
		return configError{err}
	}
	cfg := config.Cfg()
	ov.apply(cfg)
	if cfg.Physics.StartTime >= cfg.Physics.EndTime {
		return configError{fmt.Errorf("start time %v must be < end time %v", cfg.Physics.StartTime, cfg.Physics.EndTime)}
	}

	cont := container.New()

	if readerKind == "cluster" {
		seedCluster(cont, cfg, rand.New(rand.NewSource(1)))
	} else {
		reader, err := buildReader(readerKind, cont)
		if err != nil {
			return configError{err}
		}
		if err := reader.Read(cont); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}

	origin := vec3.New(cfg.Domain.Origin[0], cfg.Domain.Origin[1], cfg.Domain.Origin[2])
	size := vec3.New(cfg.Domain.Size[0], cfg.Domain.Size[1], cfg.Domain.Size[2])
	grid := cellgrid.New(origin, size, cfg.Domain.Cutoff)
	grid.Populate(cont)

	types := make(map[int]ljtable.TypeParams, len(cfg.Types))
	for _, t := range cfg.Types {
		types[t.TypeID] = ljtable.TypeParams{Epsilon: t.Epsilon, Sigma: t.Sigma}
	}
	lj := ljtable.Build(types)

	bcfg := boundary.Config{Faces: map[cellgrid.Face]boundary.Kind{}}
	for face, name := range map[cellgrid.Face]string{
		cellgrid.Left: cfg.Boundaries.Left, cellgrid.Right: cfg.Boundaries.Right,
		cellgrid.Top: cfg.Boundaries.Top, cellgrid.Bottom: cfg.Boundaries.Bottom,
		cellgrid.Front: cfg.Boundaries.Front, cellgrid.Back: cfg.Boundaries.Back,
	} {
		kind, ok := parseBoundaryKind(name)
		if !ok {
			continue
		}
		bcfg.Faces[face] = kind
	}
	handler := boundary.NewHandler(bcfg, grid, cont)

	kernel := &force.Kernel{
		Cutoff:  cfg.Domain.Cutoff,
		LJ:      lj,
		Gravity: force.Gravity{Axis: cfg.Physics.GravityAxis, Const: cfg.Physics.GravityConst},
	}
	for _, ef := range cfg.Physics.ExternalForces {
		for _, id := range ef.ParticleIDs {
			if id < 0 || id >= cont.Len() {
				return configError{fmt.Errorf("external force targets particle id %d, but only %d particles were read", id, cont.Len())}
			}
		}
		kernel.External = append(kernel.External, force.ExternalForce{
			ParticleIDs: ef.ParticleIDs,
			Vector:      vec3.New(ef.Vector[0], ef.Vector[1], ef.Vector[2]),
			UntilTime:   ef.UntilTime,
		})
	}

	th := &thermostat.Thermostat{
		Kind:       parseThermoKind(cfg.Thermostat.Kind),
		TargetTemp: cfg.Thermostat.TargetTemp,
		MaxDelta:   cfg.Thermostat.MaxDelta,
		Dim:        cfg.Derived.Dim,
	}
	if cfg.Thermostat.InitTemp > 0 {
		thermostat.InitBrownian(cont, cfg.Thermostat.InitTemp, cfg.Derived.Dim, xrand.New(xrand.NewSource(1)))
	}

	wk := writerKind
	if wk == "" {
		wk = cfg.Output.WriterKind
	}
	writer, err := buildWriter(wk)
	if err != nil {
		return configError{err}
	}
	var out *telemetry.OutputManager
	if cfg.Output.Dir != "" {
		out, err = telemetry.NewOutputManager(cfg.Output.Dir)
		if err != nil {
			return fmt.Errorf("opening output: %w", err)
		}
	}

	d := sim.New()
	d.Container = cont
	d.Grid = grid
	d.Boundary = handler
	d.Force = kernel
	d.Thermo = th
	d.Writer = writer
	d.Analytics = simio.NoopAnalytics{}
	d.Output = out
	d.Log = slog.Default()
	d.DeltaT = cfg.Physics.DeltaT
	d.Time = cfg.Physics.StartTime
	d.EndTime = cfg.Physics.EndTime
	d.PlotFreq = cfg.Output.PlotFrequency
	d.GridFreq = cfg.Output.GridFrequency
	d.ThermoFreq = cfg.Thermostat.Frequency
	d.AnalysisFreq = cfg.Output.AnalysisFrequency
	d.Dim = cfg.Derived.Dim
	d.Parallel = parallel
	d.Workers = workers

	d.Run()

	if perfProfile {
		for _, phase := range d.Perf.SortedPhases() {
			slog.Info("phase timing", "phase", phase, "avg", d.Perf.Avg(phase))
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}
	if out != nil {
		return out.Close()
	}
	return nil
}

func buildReader(kind string, _ *container.Container) (simio.Reader, error) {
	switch kind {
	case "empty", "":
		return simio.NoopReader{}, nil
	case "legacy", "ascii", "XML":
		return nil, fmt.Errorf("reader kind %q requires an external decoder; use -reader cluster for a built-in scene", kind)
	default:
		return nil, fmt.Errorf("unknown reader kind %q", kind)
	}
}

func buildWriter(kind string) (simio.Writer, error) {
	switch kind {
	case "", "none":
		return simio.NoopWriter{}, nil
	case "VTK", "XYZ", "XML":
		return nil, fmt.Errorf("writer kind %q requires an external encoder", kind)
	default:
		return nil, fmt.Errorf("unknown writer kind %q", kind)
	}
}

func parseBoundaryKind(name string) (boundary.Kind, bool) {
	switch name {
	case "outflow":
		return boundary.Outflow, true
	case "soft-reflective":
		return boundary.SoftReflective, true
	case "periodic":
		return boundary.Periodic, true
	default:
		return 0, false
	}
}

func parseThermoKind(name string) thermostat.Kind {
	switch name {
	case "classical":
		return thermostat.Classical
	case "individual":
		return thermostat.Individual
	default:
		return thermostat.None
	}
}

// seedCluster populates cont with the configured default cuboid, used by
// reader kind "cluster" when no external scene file is supplied.
func seedCluster(cont *container.Container, cfg *config.Config, rng *rand.Rand) {
	cu := cfg.Cluster
	generate.AddCuboid(cont, generate.Cuboid{
		Origin:  vec3.New(cu.Origin[0], cu.Origin[1], cu.Origin[2]),
		Dim:     cu.Dim,
		Spacing: cu.Spacing,
		Mass:    cu.Mass,
		Vel:     vec3.New(cu.Vel[0], cu.Vel[1], cu.Vel[2]),
		Type:    cu.TypeID,
	}, rng)
}
