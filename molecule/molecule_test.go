package molecule

import (
	"math"
	"testing"
)

func TestAddDirectAndBondsOf(t *testing.T) {
	top := NewTopology(1.0, 10.0)
	top.AddDirect(0, 1)

	bonds0 := top.BondsOf(0)
	if len(bonds0) != 1 || bonds0[0].Other != 1 || bonds0[0].R0 != 1.0 {
		t.Errorf("BondsOf(0) = %+v, want [{1 1.0}]", bonds0)
	}

	bonds1 := top.BondsOf(1)
	if len(bonds1) != 1 || bonds1[0].Other != 0 || bonds1[0].R0 != 1.0 {
		t.Errorf("BondsOf(1) = %+v, want [{0 1.0}] (reverse lookup)", bonds1)
	}
}

func TestAddDiagonalR0IsSqrt2Spacing(t *testing.T) {
	top := NewTopology(2.0, 10.0)
	top.AddDiagonal(0, 5)

	want := 2.0 * math.Sqrt2
	bonds := top.BondsOf(5)
	if len(bonds) != 1 || bonds[0].Other != 0 || math.Abs(bonds[0].R0-want) > 1e-9 {
		t.Errorf("BondsOf(5) = %+v, want [{0 %v}]", bonds, want)
	}
}

func TestIsBondedSymmetricBothKinds(t *testing.T) {
	top := NewTopology(1.0, 10.0)
	top.AddDirect(0, 1)
	top.AddDiagonal(2, 3)

	cases := []struct {
		a, b int
		want bool
	}{
		{0, 1, true}, {1, 0, true},
		{2, 3, true}, {3, 2, true},
		{0, 2, false}, {1, 3, false},
	}
	for _, c := range cases {
		if got := top.IsBonded(c.a, c.b); got != c.want {
			t.Errorf("IsBonded(%d, %d) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestBondsOfMergesDirectAndDiagonal(t *testing.T) {
	top := NewTopology(1.0, 10.0)
	top.AddDirect(0, 1)
	top.AddDiagonal(0, 2)

	bonds := top.BondsOf(0)
	if len(bonds) != 2 {
		t.Fatalf("BondsOf(0) has %d bonds, want 2", len(bonds))
	}
	others := map[int]bool{bonds[0].Other: true, bonds[1].Other: true}
	if !others[1] || !others[2] {
		t.Errorf("BondsOf(0) others = %v, want {1,2}", others)
	}
}
