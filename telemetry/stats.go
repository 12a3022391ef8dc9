// Package telemetry implements the analytics CSV writers and window-stats
// reduction the driver samples periodically: gocsv-marshaled struct rows
// for typed summaries, gonum/stat for the underlying reductions.
package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/noahpy/MolSim-SS24-sub000/container"
	"github.com/noahpy/MolSim-SS24-sub000/particle"
)

// WindowStats summarizes one analytics sample over the currently active
// particle population. csv tags drive the gocsv marshaling in output.go.
type WindowStats struct {
	Iteration   int     `csv:"iteration"`
	Time        float64 `csv:"time"`
	ActiveCount int     `csv:"active_count"`
	MeanSpeed   float64 `csv:"mean_speed"`
	StdDevSpeed float64 `csv:"stddev_speed"`
	MeanKinetic float64 `csv:"mean_kinetic_energy"`
	Temperature float64 `csv:"temperature"`
}

// ComputeWindowStats reduces the container's active population into one
// WindowStats row, using gonum/stat for the mean/stddev reduction rather
// than a hand-rolled accumulator.
func ComputeWindowStats(c *container.Container, iteration int, simTime float64, dim int) WindowStats {
	var speeds []float64
	var kinetic float64
	c.All(func(p *particle.Particle) {
		speeds = append(speeds, p.V.Norm())
		kinetic += 0.5 * p.M * p.V.NormSq()
	})
	n := len(speeds)
	if n == 0 {
		return WindowStats{Iteration: iteration, Time: simTime}
	}
	mean, stddev := stat.MeanStdDev(speeds, nil)
	temp := 0.0
	if dim > 0 {
		temp = 2 * kinetic / (float64(n) * float64(dim))
	}
	return WindowStats{
		Iteration:   iteration,
		Time:        simTime,
		ActiveCount: n,
		MeanSpeed:   mean,
		StdDevSpeed: stddev,
		MeanKinetic: kinetic / float64(n),
		Temperature: temp,
	}
}

// DensityBins maps every active particle's position into a 3-D bin grid of
// size binSize and returns a flattened bx*by*bz count histogram — the row
// written to the density CSV each sample.
func DensityBins(c *container.Container, origin, domainSize [3]float64, binSize float64) []float64 {
	bx := dimBins(domainSize[0], binSize)
	by := dimBins(domainSize[1], binSize)
	bz := dimBins(domainSize[2], binSize)
	if bz == 0 {
		bz = 1
	}
	counts := make([]float64, bx*by*bz)
	c.All(func(p *particle.Particle) {
		ix := binIndex(p.X.X-origin[0], binSize, bx)
		iy := binIndex(p.X.Y-origin[1], binSize, by)
		iz := 0
		if domainSize[2] != 0 {
			iz = binIndex(p.X.Z-origin[2], binSize, bz)
		}
		if ix < 0 || iy < 0 || iz < 0 {
			return
		}
		counts[(ix*by+iy)*bz+iz]++
	})
	return counts
}

// VelocityBins mirrors DensityBins but averages particle speed within each
// bin instead of counting occupants.
func VelocityBins(c *container.Container, origin, domainSize [3]float64, binSize float64) []float64 {
	bx := dimBins(domainSize[0], binSize)
	by := dimBins(domainSize[1], binSize)
	bz := dimBins(domainSize[2], binSize)
	if bz == 0 {
		bz = 1
	}
	sums := make([]float64, bx*by*bz)
	counts := make([]float64, bx*by*bz)
	c.All(func(p *particle.Particle) {
		ix := binIndex(p.X.X-origin[0], binSize, bx)
		iy := binIndex(p.X.Y-origin[1], binSize, by)
		iz := 0
		if domainSize[2] != 0 {
			iz = binIndex(p.X.Z-origin[2], binSize, bz)
		}
		if ix < 0 || iy < 0 || iz < 0 {
			return
		}
		i := (ix*by+iy)*bz + iz
		sums[i] += p.V.Norm()
		counts[i]++
	})
	for i, n := range counts {
		if n > 0 {
			sums[i] /= n
		}
	}
	return sums
}

func dimBins(extent, binSize float64) int {
	if extent <= 0 {
		return 1
	}
	n := int(extent / binSize)
	if n < 1 {
		n = 1
	}
	return n
}

func binIndex(rel, binSize float64, n int) int {
	i := int(rel / binSize)
	if i < 0 || i >= n {
		return -1
	}
	return i
}
