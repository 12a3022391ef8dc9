package cellgrid

import (
	"sync"

	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

// CellType classifies a cell by its proximity to the padded domain's edge.
type CellType int

const (
	Inner CellType = iota
	Boundary
	Halo
)

func (t CellType) String() string {
	switch t {
	case Inner:
		return "inner"
	case Boundary:
		return "boundary"
	case Halo:
		return "halo"
	default:
		return "unknown"
	}
}

// Face identifies one of the six domain faces. A 2-D grid never produces
// Front or Back.
type Face int

const (
	Left Face = iota
	Right
	Bottom
	Top
	Back
	Front
)

func (f Face) String() string {
	switch f {
	case Left:
		return "left"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	case Back:
		return "back"
	case Front:
		return "front"
	default:
		return "unknown"
	}
}

// negFace/posFace map an axis (0=x,1=y,2=z) to its two faces.
var negFace = [3]Face{Left, Bottom, Back}
var posFace = [3]Face{Right, Top, Front}

// FaceAxis returns the axis (0,1,2) and outward sign (-1 or +1) of face.
func FaceAxis(f Face) (axis int, sign int) {
	switch f {
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case Bottom:
		return 1, -1
	case Top:
		return 1, 1
	case Back:
		return 2, -1
	case Front:
		return 2, 1
	default:
		return 0, 0
	}
}

// particleRef is an opaque stable handle into a container: the particle's
// id. Cells never store a *particle.Particle directly so that removing a
// particle from one cell's list during reassignment is an id comparison,
// not a pointer comparison against a possibly-stale snapshot.
type particleRef = int

// Ghost is a short-lived particle copy produced by a boundary policy to
// realize reflective or periodic forcing. Ghosts are read by the force
// kernel only; they never enter integration and are cleared every step.
type Ghost struct {
	X, V vec3.Vec3
	M    float64
	Type int
}

// Cell is one node of the CellGrid.
type Cell struct {
	Type  CellType
	Index [3]int
	Faces []Face

	// IDs holds the stable container ids of particles currently resident in
	// this cell. Order is not meaningful.
	IDs []particleRef

	// Ghosts holds boundary-policy-generated ghost occupants of this cell,
	// valid for the current step only. Only populated for halo cells.
	Ghosts []Ghost

	// StencilNeighbours is the half-space cover of neighbor cell indices
	// used for single-pass Newton's-third-law pair iteration. Populated
	// once at grid construction; restricted to Inner and Boundary targets.
	StencilNeighbours [][3]int

	mu      sync.Mutex
	visited bool
}

// Visit claims the cell for the calling goroutine, returning false if it was
// already claimed this sweep. Release with Unvisit once the caller is done
// with both this cell and any neighbor it claimed alongside it.
func (c *Cell) Visit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.visited {
		return false
	}
	c.visited = true
	return true
}

// Unvisit clears the claim bit, making the cell available again.
func (c *Cell) Unvisit() {
	c.mu.Lock()
	c.visited = false
	c.mu.Unlock()
}

func (c *Cell) hasFace(f Face) bool {
	for _, cf := range c.Faces {
		if cf == f {
			return true
		}
	}
	return false
}

func (c *Cell) removeID(id int) {
	for i, v := range c.IDs {
		if v == id {
			c.IDs[i] = c.IDs[len(c.IDs)-1]
			c.IDs = c.IDs[:len(c.IDs)-1]
			return
		}
	}
}
