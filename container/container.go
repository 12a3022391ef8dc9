// Package container implements the particle store: an append-only array of
// particles addressed by stable, monotonically assigned ids, with O(log n)
// translation from id to dense active-index via a sorted deleted-id list.
// Ids equal slice position at insertion time and are never reused or
// compacted; removal only flips the active flag and records the id.
package container

import (
	"sort"

	"github.com/noahpy/MolSim-SS24-sub000/particle"
	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

// Container owns every particle for the lifetime of a simulation. Pointers
// handed out by Add/All/Pairs remain valid forever: the backing slice may
// grow, but growth only ever reallocates the slice of pointers, never the
// pointee structs.
type Container struct {
	particles   []*particle.Particle
	activeCount int
	// deletedIDs is kept sorted ascending; membership/count queries use
	// binary search, matching the ordered-map semantics of the source.
	deletedIDs []int
}

func New() *Container {
	return &Container{}
}

// Add appends a new particle, assigning it the next stable id.
func (c *Container) Add(x, v vec3.Vec3, m float64, typ int, stationary bool) *particle.Particle {
	id := len(c.particles)
	p := particle.New(id, x, v, m, typ, stationary)
	c.particles = append(c.particles, p)
	c.activeCount++
	return p
}

// Remove flags p inactive and records its id as deleted. A no-op if p is
// already inactive.
func (c *Container) Remove(p *particle.Particle) {
	if !p.Active {
		return
	}
	p.Active = false
	p.V, p.F, p.FOld = vec3.Vec3{}, vec3.Vec3{}, vec3.Vec3{}
	i := sort.SearchInts(c.deletedIDs, p.ID)
	c.deletedIDs = append(c.deletedIDs, 0)
	copy(c.deletedIDs[i+1:], c.deletedIDs[i:])
	c.deletedIDs[i] = p.ID
	c.activeCount--
}

// ActiveCount returns the number of currently active particles.
func (c *Container) ActiveCount() int { return c.activeCount }

// Len returns the total number of particles ever inserted (active + inactive).
func (c *Container) Len() int { return len(c.particles) }

// At returns the particle stored at stable id id (the slice position at
// insertion time).
func (c *Container) At(id int) *particle.Particle { return c.particles[id] }

// DenseIndex maps a stable id to its position among active particles as if
// deleted entries had been compacted out: id minus the number of deleted ids
// <= id.
func (c *Container) DenseIndex(id int) int {
	n := sort.Search(len(c.deletedIDs), func(i int) bool { return c.deletedIDs[i] > id })
	return id - n
}

// Deleted reports whether id has been removed.
func (c *Container) Deleted(id int) bool {
	i := sort.SearchInts(c.deletedIDs, id)
	return i < len(c.deletedIDs) && c.deletedIDs[i] == id
}

// All calls fn for every active particle in id order.
func (c *Container) All(fn func(p *particle.Particle)) {
	for _, p := range c.particles {
		if p.Active {
			fn(p)
		}
	}
}

// Pairs calls fn once for every unordered pair of distinct active particles
// {pi, pj} with i < j.
func (c *Container) Pairs(fn func(a, b *particle.Particle)) {
	n := len(c.particles)
	for i := 0; i < n; i++ {
		a := c.particles[i]
		if !a.Active {
			continue
		}
		for j := i + 1; j < n; j++ {
			b := c.particles[j]
			if !b.Active {
				continue
			}
			fn(a, b)
		}
	}
}

// ActiveIter is a bidirectional cursor over active particles addressed by
// raw (stable-id) slice position. The difference between two iterators
// equals the number of active particles in the half-open range [it, other),
// discounting
// deletions via the container's deleted-id list — this is what lets a
// driver split an active range into balanced parallel chunks without
// re-scanning for gaps each time.
type ActiveIter struct {
	c   *Container
	pos int
}

// Begin returns an iterator at the first active particle, or an iterator
// equal to End if there are none.
func (c *Container) Begin() ActiveIter {
	it := ActiveIter{c: c, pos: 0}
	return it.skipInactiveForward()
}

// End returns the sentinel iterator one past the last particle.
func (c *Container) End() ActiveIter {
	return ActiveIter{c: c, pos: len(c.particles)}
}

func (it ActiveIter) skipInactiveForward() ActiveIter {
	for it.pos < len(it.c.particles) && !it.c.particles[it.pos].Active {
		it.pos++
	}
	return it
}

// Particle dereferences the iterator. Calling it on an End iterator is a
// programming error.
func (it ActiveIter) Particle() *particle.Particle { return it.c.particles[it.pos] }

// Next returns the iterator advanced to the next active particle.
func (it ActiveIter) Next() ActiveIter {
	it.pos++
	return it.skipInactiveForward()
}

// Prev returns the iterator moved back to the previous active particle.
func (it ActiveIter) Prev() ActiveIter {
	it.pos--
	for it.pos >= 0 && !it.c.particles[it.pos].Active {
		it.pos--
	}
	return it
}

// Equal reports whether two iterators reference the same container position.
func (it ActiveIter) Equal(other ActiveIter) bool { return it.c == other.c && it.pos == other.pos }

// Diff returns the number of active particles in [it, other), i.e. other - it.
func Diff(it, other ActiveIter) int {
	return it.c.DenseIndex(other.pos) - it.c.DenseIndex(it.pos)
}
