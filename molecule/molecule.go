// Package molecule models membrane topology: the direct/diagonal neighbor
// relation used by the harmonic bonded-force branch. Direct bonds point
// up/right on the lattice, diagonal bonds upper-right/lower-right, each
// recorded once from the lower-id side.
package molecule

import "math"

const sqrt2 = math.Sqrt2

// Topology holds, per particle id, the two disjoint neighbor sets used for
// harmonic bonded forces. Each undirected bond is recorded once, from the
// lower-id side, so summation never double-counts a pair.
type Topology struct {
	Direct   map[int][]int
	Diagonal map[int][]int

	// reverseDirect/reverseDiagonal let BondsOf find bonds where id is the
	// higher-id (target) side without a linear scan.
	reverseDirect   map[int][]int
	reverseDiagonal map[int][]int

	Spacing float64 // lattice spacing; r0 for direct bonds
	K       float64 // spring constant
}

// Bond is one harmonic neighbor relation seen from a given particle's side.
type Bond struct {
	Other int
	R0    float64
}

// NewTopology returns an empty topology for a lattice with the given
// spacing and spring constant. r0 for diagonal bonds is sqrt(2)*spacing.
func NewTopology(spacing, k float64) *Topology {
	return &Topology{
		Direct:          make(map[int][]int),
		Diagonal:        make(map[int][]int),
		reverseDirect:   make(map[int][]int),
		reverseDiagonal: make(map[int][]int),
		Spacing:         spacing,
		K:               k,
	}
}

// AddDirect records an up/right bond from the lower-id particle a to b.
// (a,b) being direct implies (b,a) is never also recorded as direct.
func (t *Topology) AddDirect(a, b int) {
	t.Direct[a] = append(t.Direct[a], b)
	t.reverseDirect[b] = append(t.reverseDirect[b], a)
}

// AddDiagonal records an upper-right/lower-right bond from a to b.
func (t *Topology) AddDiagonal(a, b int) {
	t.Diagonal[a] = append(t.Diagonal[a], b)
	t.reverseDiagonal[b] = append(t.reverseDiagonal[b], a)
}

// BondsOf returns every bond id participates in, from either side. For a
// harmonic spring the force on id always equals k*(r-r0)*unit(other.X -
// id.X) regardless of which side id is, so callers needn't special-case
// direction — this is what lets a parallel per-particle force pass treat
// every particle's bonds symmetrically without touching its partner.
func (t *Topology) BondsOf(id int) []Bond {
	var out []Bond
	diag := t.Spacing * sqrt2
	for _, o := range t.Direct[id] {
		out = append(out, Bond{o, t.Spacing})
	}
	for _, o := range t.reverseDirect[id] {
		out = append(out, Bond{o, t.Spacing})
	}
	for _, o := range t.Diagonal[id] {
		out = append(out, Bond{o, diag})
	}
	for _, o := range t.reverseDiagonal[id] {
		out = append(out, Bond{o, diag})
	}
	return out
}

// IsBonded reports whether a and b are connected by a direct or diagonal
// bond in either direction — used by the force kernel to tell a
// membrane-internal non-bonded pair (which gets the WCA-truncated
// repulsive-only branch) from a bonded pair (which gets the harmonic
// branch instead of LJ).
func (t *Topology) IsBonded(a, b int) bool {
	return contains(t.Direct[a], b) || contains(t.Direct[b], a) ||
		contains(t.Diagonal[a], b) || contains(t.Diagonal[b], a)
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
