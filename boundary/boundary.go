// Package boundary implements the pluggable per-face boundary-condition
// policies: outflow, soft-reflective, and periodic.
package boundary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noahpy/MolSim-SS24-sub000/cellgrid"
	"github.com/noahpy/MolSim-SS24-sub000/container"
	"github.com/noahpy/MolSim-SS24-sub000/particle"
	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

// Kind is a boundary policy tag, replacing virtual dispatch with a switch
// over a small closed set.
type Kind int

const (
	Outflow Kind = iota
	SoftReflective
	Periodic
)

// Config maps each active domain face to a boundary kind. A 2-D config
// should omit cellgrid.Front and cellgrid.Back.
type Config struct {
	Faces map[cellgrid.Face]Kind
}

// Handler owns the per-face policy objects and runs the pre/post hooks in
// fixed order against a grid and container.
type Handler struct {
	cfg   Config
	grid  *cellgrid.Grid
	cont  *container.Container
	faces []cellgrid.Face // stable iteration order

	// periodicTable maps a canonical key (sorted face names of a boundary
	// cell's own periodic faces) to the list of translation shifts for
	// every non-empty subset of that face set — single, pair, and triple
	// combinations. Built once at construction.
	periodicTable map[string][]vec3.Vec3
}

// NewHandler constructs a handler and precomputes the periodic translation
// table from every distinct periodic face-set that currently occurs on a
// boundary cell.
func NewHandler(cfg Config, g *cellgrid.Grid, c *container.Container) *Handler {
	h := &Handler{cfg: cfg, grid: g, cont: c, periodicTable: make(map[string][]vec3.Vec3)}
	for f := range cfg.Faces {
		h.faces = append(h.faces, f)
	}
	sort.Slice(h.faces, func(i, j int) bool { return h.faces[i] < h.faces[j] })

	periodicFaces := h.facesOfKind(Periodic)
	if len(periodicFaces) == 0 {
		return h
	}
	seen := make(map[string]bool)
	for _, f := range periodicFaces {
		for _, cell := range g.BoundaryCells(f) {
			subset := intersectPeriodic(cell.Faces, periodicFaces)
			key := canonicalKey(subset)
			if seen[key] {
				continue
			}
			seen[key] = true
			h.periodicTable[key] = shiftsForSubsets(subset, g.Size())
		}
	}
	return h
}

func (h *Handler) facesOfKind(k Kind) []cellgrid.Face {
	var out []cellgrid.Face
	for _, f := range h.faces {
		if h.cfg.Faces[f] == k {
			out = append(out, f)
		}
	}
	return out
}

func intersectPeriodic(cellFaces, periodicFaces []cellgrid.Face) []cellgrid.Face {
	var out []cellgrid.Face
	for _, f := range cellFaces {
		for _, pf := range periodicFaces {
			if f == pf {
				out = append(out, f)
			}
		}
	}
	return out
}

func canonicalKey(faces []cellgrid.Face) string {
	sorted := append([]cellgrid.Face(nil), faces...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, f := range sorted {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}

// shiftsForSubsets returns, for every non-empty subset of faces, the vector
// that translates a particle to the opposite side of the domain for that
// combination of faces.
func shiftsForSubsets(faces []cellgrid.Face, domainSize vec3.Vec3) []vec3.Vec3 {
	n := len(faces)
	var out []vec3.Vec3
	for mask := 1; mask < (1 << n); mask++ {
		shift := vec3.Vec3{}
		for i, f := range faces {
			if mask&(1<<i) == 0 {
				continue
			}
			shift = shift.Add(axisShift(f, domainSize))
		}
		out = append(out, shift)
	}
	return out
}

// axisShift returns the vector that moves a point to the opposite side of
// the domain across face f: negative of the outward normal times the
// domain's extent along that axis.
func axisShift(f cellgrid.Face, domainSize vec3.Vec3) vec3.Vec3 {
	axis, sign := cellgrid.FaceAxis(f)
	v := vec3.Vec3{}
	return v.WithAxis(axis, -float64(sign)*domainSize.Axis(axis))
}

// PreUpdate runs before force evaluation: soft-reflective faces mirror
// boundary-cell occupants into halo ghosts, and periodic faces inject
// translated ghost images for every active face combination on each
// boundary cell. Ghost pools are cleared first so each step starts fresh.
func (h *Handler) PreUpdate() {
	h.grid.ClearAllGhosts()
	for _, f := range h.facesOfKind(SoftReflective) {
		h.preSoftReflective(f)
	}
	// A corner/edge boundary cell belongs to several periodic faces but its
	// translation entry already covers every face combination, so each cell
	// is processed once across all faces.
	seen := make(map[*cellgrid.Cell]bool)
	for _, f := range h.facesOfKind(Periodic) {
		h.prePeriodic(f, seen)
	}
}

func (h *Handler) preSoftReflective(face cellgrid.Face) {
	axis, sign := cellgrid.FaceAxis(face)
	origin, size := h.grid.Origin(), h.grid.Size()
	plane := origin.Axis(axis)
	if sign > 0 {
		plane += size.Axis(axis)
	}
	for _, cell := range h.grid.BoundaryCells(face) {
		for _, id := range cell.IDs {
			p := h.cont.At(id)
			mirrored := p.X.WithAxis(axis, 2*plane-p.X.Axis(axis))
			idx := h.grid.IndexFromPosition(mirrored)
			h.grid.AddGhost(idx, cellgrid.Ghost{X: mirrored, M: p.M, Type: p.Type})
		}
	}
}

func (h *Handler) prePeriodic(face cellgrid.Face, seen map[*cellgrid.Cell]bool) {
	periodicFaces := h.facesOfKind(Periodic)
	for _, cell := range h.grid.BoundaryCells(face) {
		if seen[cell] {
			continue
		}
		seen[cell] = true
		subset := intersectPeriodic(cell.Faces, periodicFaces)
		shifts, ok := h.periodicTable[canonicalKey(subset)]
		if !ok {
			panic(fmt.Sprintf("boundary: missing periodic translation entry for cell %v", cell.Index))
		}
		for _, id := range cell.IDs {
			p := h.cont.At(id)
			for _, shift := range shifts {
				ghostPos := p.X.Add(shift)
				idx := h.grid.IndexFromPosition(ghostPos)
				h.grid.AddGhost(idx, cellgrid.Ghost{X: ghostPos, V: p.V, M: p.M, Type: p.Type})
			}
		}
	}
}

// PostUpdate runs after the position update: outflow deletes halo occupants
// on outflow faces, and periodic faces translate any particle that crossed
// into a halo cell back across the domain. Outflow and periodic act on
// disjoint particle sets, so the two passes commute.
func (h *Handler) PostUpdate() {
	for _, f := range h.facesOfKind(Outflow) {
		for _, idx := range h.haloIndices(f) {
			h.postOutflow(idx)
		}
	}
	h.postPeriodic()
}

func (h *Handler) haloIndices(face cellgrid.Face) [][3]int {
	cells := h.grid.HaloCells(face)
	idxs := make([][3]int, len(cells))
	for i, c := range cells {
		idxs[i] = c.Index
	}
	return idxs
}

func (h *Handler) postOutflow(idx [3]int) {
	cell := h.grid.CellAt(idx)
	ids := append([]int(nil), cell.IDs...)
	for _, id := range ids {
		h.cont.Remove(h.cont.At(id))
	}
	h.grid.ClearCell(idx)
}

func (h *Handler) postPeriodic() {
	periodicFaces := h.facesOfKind(Periodic)
	if len(periodicFaces) == 0 {
		return
	}
	h.cont.All(func(p *particle.Particle) {
		idx := h.grid.IndexFromPosition(p.X)
		cell := h.grid.CellAt(idx)
		if cell.Type != cellgrid.Halo {
			return
		}
		for _, f := range cell.Faces {
			if h.cfg.Faces[f] != Periodic {
				continue
			}
			axis, sign := cellgrid.FaceAxis(f)
			extent := h.grid.Size().Axis(axis)
			p.X = p.X.WithAxis(axis, p.X.Axis(axis)-float64(sign)*extent)
		}
	})
}
