package container

import (
	"testing"

	"github.com/noahpy/MolSim-SS24-sub000/particle"
	"github.com/noahpy/MolSim-SS24-sub000/vec3"
)

func TestAddAssignsStableIDs(t *testing.T) {
	c := New()
	p0 := c.Add(vec3.New(0, 0, 0), vec3.Vec3{}, 1, 1, false)
	p1 := c.Add(vec3.New(1, 0, 0), vec3.Vec3{}, 1, 1, false)

	if p0.ID != 0 || p1.ID != 1 {
		t.Errorf("ids = %d, %d, want 0, 1", p0.ID, p1.ID)
	}
	if c.Len() != 2 || c.ActiveCount() != 2 {
		t.Errorf("Len/ActiveCount = %d/%d, want 2/2", c.Len(), c.ActiveCount())
	}
}

func TestRemoveIsIdempotentAndZeroesKinematics(t *testing.T) {
	c := New()
	p := c.Add(vec3.New(0, 0, 0), vec3.New(1, 1, 1), 1, 1, false)
	p.F = vec3.New(2, 2, 2)

	c.Remove(p)
	if p.Active {
		t.Error("Remove should flag the particle inactive")
	}
	if p.V != (vec3.Vec3{}) || p.F != (vec3.Vec3{}) || p.FOld != (vec3.Vec3{}) {
		t.Errorf("Remove should zero V/F/FOld, got V=%v F=%v FOld=%v", p.V, p.F, p.FOld)
	}
	if c.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", c.ActiveCount())
	}

	c.Remove(p) // idempotent
	if c.ActiveCount() != 0 {
		t.Errorf("second Remove changed ActiveCount to %d", c.ActiveCount())
	}
}

func TestDenseIndexAfterDeletions(t *testing.T) {
	c := New()
	for i := 0; i < 5; i++ {
		c.Add(vec3.New(float64(i), 0, 0), vec3.Vec3{}, 1, 1, false)
	}
	// Delete ids 1 and 3; remaining active ids 0,2,4 should densify to 0,1,2.
	c.Remove(c.At(1))
	c.Remove(c.At(3))

	want := map[int]int{0: 0, 2: 1, 4: 2}
	for id, wantDense := range want {
		if got := c.DenseIndex(id); got != wantDense {
			t.Errorf("DenseIndex(%d) = %d, want %d", id, got, wantDense)
		}
	}
	if !c.Deleted(1) || !c.Deleted(3) {
		t.Error("Deleted should report true for removed ids")
	}
	if c.Deleted(0) || c.Deleted(2) {
		t.Error("Deleted should report false for active ids")
	}
}

func TestAllSkipsInactive(t *testing.T) {
	c := New()
	for i := 0; i < 3; i++ {
		c.Add(vec3.New(float64(i), 0, 0), vec3.Vec3{}, 1, 1, false)
	}
	c.Remove(c.At(1))

	var seen []int
	c.All(func(p *particle.Particle) { seen = append(seen, p.ID) })

	want := []int{0, 2}
	if len(seen) != len(want) {
		t.Fatalf("All visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestPairsVisitsEachUnorderedPairOnce(t *testing.T) {
	c := New()
	for i := 0; i < 4; i++ {
		c.Add(vec3.New(float64(i), 0, 0), vec3.Vec3{}, 1, 1, false)
	}
	c.Remove(c.At(2))

	var pairs [][2]int
	c.Pairs(func(a, b *particle.Particle) {
		pairs = append(pairs, [2]int{a.ID, b.ID})
	})

	want := map[[2]int]bool{{0, 1}: true, {0, 3}: true, {1, 3}: true}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs, want %d: %v", len(pairs), len(want), pairs)
	}
	for _, p := range pairs {
		if !want[p] {
			t.Errorf("unexpected pair %v", p)
		}
	}
}

func TestActiveIterAndDiff(t *testing.T) {
	c := New()
	for i := 0; i < 5; i++ {
		c.Add(vec3.New(float64(i), 0, 0), vec3.Vec3{}, 1, 1, false)
	}
	c.Remove(c.At(2))

	var visited []int
	for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
		visited = append(visited, it.Particle().ID)
	}
	want := []int{0, 1, 3, 4}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %d, want %d", i, visited[i], want[i])
		}
	}

	if got := Diff(c.Begin(), c.End()); got != c.ActiveCount() {
		t.Errorf("Diff(Begin, End) = %d, want ActiveCount %d", got, c.ActiveCount())
	}
}
