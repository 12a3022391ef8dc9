// Package cellgrid implements the linked-cell spatial partition: a padded
// 3-D (or collapsed 2-D) grid of cells classified Inner/Boundary/Halo, with
// a precomputed per-cell half-space stencil enabling single-pass
// Newton's-third-law pair iteration.
package cellgrid

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/noahpy/MolSim-SS24-sub000/container"
	"github.com/noahpy/MolSim-SS24-sub000/particle"
	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

// stencilOffsets3D is the 13-offset half-space cover of the 26 full
// neighbors of a cell: iterating every non-halo cell and visiting only its
// stencil targets yields every unordered intra-cutoff cell pair exactly
// once.
var stencilOffsets3D = [][3]int{
	{1, 0, 0},
	{-1, 1, 0}, {0, 1, 0}, {1, 1, 0},
	{-1, -1, 1}, {0, -1, 1}, {1, -1, 1},
	{-1, 0, 1}, {0, 0, 1}, {1, 0, 1},
	{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
}

// stencilOffsets2D is the corresponding 4-of-8 half-space cover in the
// z-collapsed case.
var stencilOffsets2D = [][3]int{
	{1, 0, 0},
	{-1, 1, 0}, {0, 1, 0}, {1, 1, 0},
}

// Grid is the linked-cell spatial partition.
type Grid struct {
	origin vec3.Vec3
	size   vec3.Vec3
	cutoff float64
	dims   [3]int
	twoD   bool

	cells  []Cell // flattened, indexed via flatIndex
	cellOf map[int][3]int
}

// New builds a grid covering domain [origin, origin+size) with one layer of
// boundary and one layer of halo cells padded around the inner region.
// size.Z == 0 collapses the grid to 2-D.
func New(origin, size vec3.Vec3, cutoff float64) *Grid {
	if cutoff <= 0 {
		panic("cellgrid: cutoff must be positive")
	}
	g := &Grid{origin: origin, size: size, cutoff: cutoff, cellOf: make(map[int][3]int)}
	g.twoD = size.Z == 0
	if size.X <= 0 || size.Y <= 0 || size.Z < 0 {
		slog.Warn("non-positive domain extent, grid degenerates to its padding layers", "size", size)
	}

	innerX := int(math.Ceil(size.X / cutoff))
	innerY := int(math.Ceil(size.Y / cutoff))
	g.dims[0] = innerX + 2
	g.dims[1] = innerY + 2
	if g.twoD {
		g.dims[2] = 1
	} else {
		innerZ := int(math.Ceil(size.Z / cutoff))
		g.dims[2] = innerZ + 2
	}

	g.cells = make([]Cell, g.dims[0]*g.dims[1]*g.dims[2])
	for ix := 0; ix < g.dims[0]; ix++ {
		for iy := 0; iy < g.dims[1]; iy++ {
			for iz := 0; iz < g.dims[2]; iz++ {
				idx := [3]int{ix, iy, iz}
				c := g.cellAt(idx)
				c.Index = idx
				c.Type = g.classify(idx)
				c.Faces = g.facesOf(idx)
			}
		}
	}
	g.buildStencils()
	return g
}

func (g *Grid) flatIndex(idx [3]int) int {
	return (idx[0]*g.dims[1]+idx[1])*g.dims[2] + idx[2]
}

func (g *Grid) cellAt(idx [3]int) *Cell { return &g.cells[g.flatIndex(idx)] }

// Dims returns the grid's per-axis cell count, including boundary and halo
// layers.
func (g *Grid) Dims() [3]int { return g.dims }

// TwoD reports whether the z axis is collapsed.
func (g *Grid) TwoD() bool { return g.twoD }

func (g *Grid) inBounds(idx [3]int) bool {
	for a := 0; a < 3; a++ {
		if idx[a] < 0 || idx[a] >= g.dims[a] {
			return false
		}
	}
	return true
}

// IndexFromPosition maps a position to a cell index, clamping positions
// outside the padded domain into the saturating halo layer.
func (g *Grid) IndexFromPosition(x vec3.Vec3) [3]int {
	var idx [3]int
	rel := [3]float64{x.X - g.origin.X, x.Y - g.origin.Y, x.Z - g.origin.Z}
	for a := 0; a < 3; a++ {
		if a == 2 && g.twoD {
			idx[a] = 0
			continue
		}
		// +1 shifts into the padded coordinate system (cell 0 is halo).
		v := int(math.Floor(rel[a]/g.cutoff)) + 1
		idx[a] = vec3.Clamp(v, 0, g.dims[a]-1)
	}
	return idx
}

func (g *Grid) classify(idx [3]int) CellType {
	axisHalo, axisBoundary := false, false
	for a := 0; a < 3; a++ {
		if g.twoD && a == 2 {
			continue
		}
		if idx[a] == 0 || idx[a] == g.dims[a]-1 {
			axisHalo = true
		} else if idx[a] == 1 || idx[a] == g.dims[a]-2 {
			axisBoundary = true
		}
	}
	switch {
	case axisHalo:
		return Halo
	case axisBoundary:
		return Boundary
	default:
		return Inner
	}
}

func (g *Grid) facesOf(idx [3]int) []Face {
	var faces []Face
	for a := 0; a < 3; a++ {
		if g.twoD && a == 2 {
			continue
		}
		if idx[a] == 0 || idx[a] == 1 {
			faces = append(faces, negFace[a])
		}
		if idx[a] == g.dims[a]-1 || idx[a] == g.dims[a]-2 {
			faces = append(faces, posFace[a])
		}
	}
	return faces
}

func (g *Grid) buildStencils() {
	offsets := stencilOffsets3D
	if g.twoD {
		offsets = stencilOffsets2D
	}
	for i := range g.cells {
		c := &g.cells[i]
		if c.Type == Halo {
			continue
		}
		for _, off := range offsets {
			n := [3]int{c.Index[0] + off[0], c.Index[1] + off[1], c.Index[2] + off[2]}
			if !g.inBounds(n) {
				continue
			}
			nc := g.cellAt(n)
			if nc.Type == Halo {
				continue
			}
			c.StencilNeighbours = append(c.StencilNeighbours, n)
		}
	}
}

// CellAt returns the cell at idx, or a fatal programming error if idx is
// out of range.
func (g *Grid) CellAt(idx [3]int) *Cell {
	if !g.inBounds(idx) {
		panic(fmt.Sprintf("cellgrid: index %v out of range %v", idx, g.dims))
	}
	return g.cellAt(idx)
}

// AddID places particle id at position x into its matching cell, recording
// the assignment so a later Reassign call can detect movement.
func (g *Grid) AddID(id int, x vec3.Vec3) {
	idx := g.IndexFromPosition(x)
	g.cellAt(idx).IDs = append(g.cellAt(idx).IDs, id)
	g.cellOf[id] = idx
}

// RemoveID drops id from whatever cell it is currently recorded in.
func (g *Grid) RemoveID(id int) {
	idx, ok := g.cellOf[id]
	if !ok {
		return
	}
	g.cellAt(idx).removeID(id)
	delete(g.cellOf, id)
}

// Populate clears all cell occupancy and (re-)inserts every active particle
// in c at its current position. Used once at startup after the reader has
// filled the container.
func (g *Grid) Populate(c *container.Container) {
	for i := range g.cells {
		g.cells[i].IDs = nil
	}
	g.cellOf = make(map[int][3]int)
	c.All(func(p *particle.Particle) {
		idx := g.IndexFromPosition(p.X)
		if g.cellAt(idx).Type == Halo {
			slog.Warn("particle starts inside the halo layer and will be handled by the first post-step",
				"id", p.ID, "position", p.X)
		}
		g.AddID(p.ID, p.X)
	})
}

// ReassignAll recomputes the cell of every active particle in c, moving it
// between cell lists if its position has crossed into a new cell. Idempotent
// when nothing moved. Particles no longer active (e.g. deleted by outflow)
// are dropped from tracking.
func (g *Grid) ReassignAll(c *container.Container) {
	for id, oldIdx := range g.cellOf {
		p := c.At(id)
		if !p.Active {
			g.cellAt(oldIdx).removeID(id)
			delete(g.cellOf, id)
			continue
		}
		newIdx := g.IndexFromPosition(p.X)
		if newIdx == oldIdx {
			continue
		}
		g.cellAt(oldIdx).removeID(id)
		g.cellAt(newIdx).IDs = append(g.cellAt(newIdx).IDs, id)
		g.cellOf[id] = newIdx
	}
}

// ClearCell empties idx's particle-id list and ghost pool, dropping any
// tracked cell assignment for the ids it held.
func (g *Grid) ClearCell(idx [3]int) {
	c := g.cellAt(idx)
	for _, id := range c.IDs {
		delete(g.cellOf, id)
	}
	c.IDs = c.IDs[:0]
	c.Ghosts = c.Ghosts[:0]
}

// ClearAllGhosts empties every cell's ghost pool, reusing each slice's
// backing array. Called once at the start of each step's pre-update phase.
func (g *Grid) ClearAllGhosts() {
	for i := range g.cells {
		g.cells[i].Ghosts = g.cells[i].Ghosts[:0]
	}
}

// AddGhost appends a ghost occupant to the cell at idx.
func (g *Grid) AddGhost(idx [3]int, gh Ghost) {
	c := g.cellAt(idx)
	c.Ghosts = append(c.Ghosts, gh)
}

// BoundaryCells returns every Boundary cell with at least one face equal to
// face.
func (g *Grid) BoundaryCells(face Face) []*Cell { return g.cellsWithFace(Boundary, face) }

// HaloCells returns every Halo cell with at least one face equal to face.
func (g *Grid) HaloCells(face Face) []*Cell { return g.cellsWithFace(Halo, face) }

func (g *Grid) cellsWithFace(t CellType, face Face) []*Cell {
	var out []*Cell
	for i := range g.cells {
		c := &g.cells[i]
		if c.Type == t && c.hasFace(face) {
			out = append(out, c)
		}
	}
	return out
}

// AllNonHalo calls fn for every Inner or Boundary cell, the traversal used
// by the force kernel.
func (g *Grid) AllNonHalo(fn func(c *Cell)) {
	for i := range g.cells {
		if g.cells[i].Type != Halo {
			fn(&g.cells[i])
		}
	}
}

// NeighboringParticles appends into dst the ids of every particle in idx's
// cell and its 26 (or 8) surrounding cells.
func (g *Grid) NeighboringParticles(idx [3]int, dst []int) []int {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			zr := 1
			if g.twoD {
				zr = 0
			}
			for dz := -zr; dz <= zr; dz++ {
				n := [3]int{idx[0] + dx, idx[1] + dy, idx[2] + dz}
				if !g.inBounds(n) {
					continue
				}
				dst = append(dst, g.cellAt(n).IDs...)
			}
		}
	}
	return dst
}

// HaloNeighborGhosts appends into dst every ghost occupant of a Halo cell
// directly adjacent to idx (the full 26, or 8 in 2-D, neighborhood — not
// the half stencil, since ghost interactions are one-directional and need
// no double-count avoidance).
func (g *Grid) HaloNeighborGhosts(idx [3]int, dst []Ghost) []Ghost {
	zr := 1
	if g.twoD {
		zr = 0
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -zr; dz <= zr; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				n := [3]int{idx[0] + dx, idx[1] + dy, idx[2] + dz}
				if !g.inBounds(n) {
					continue
				}
				nc := g.cellAt(n)
				if nc.Type != Halo || len(nc.Ghosts) == 0 {
					continue
				}
				dst = append(dst, nc.Ghosts...)
			}
		}
	}
	return dst
}

// Origin returns the configured (unpadded) domain origin.
func (g *Grid) Origin() vec3.Vec3 { return g.origin }

// Size returns the configured (unpadded) domain extent.
func (g *Grid) Size() vec3.Vec3 { return g.size }

// Cutoff returns the cell edge length / LJ cutoff radius.
func (g *Grid) Cutoff() float64 { return g.cutoff }
