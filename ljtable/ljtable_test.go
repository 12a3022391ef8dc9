package ljtable

import (
	"math"
	"testing"
)

func TestBuildSelfPair(t *testing.T) {
	tab := Build(map[int]TypeParams{1: {Epsilon: 1, Sigma: 1}})
	m := tab.Get(1, 1)

	if m.Epsilon != 1 || m.Sigma != 1 {
		t.Errorf("mixed params = %+v, want epsilon=1 sigma=1", m)
	}
	if m.Alpha != -24 {
		t.Errorf("Alpha = %v, want -24", m.Alpha)
	}
	if m.Beta != 1 {
		t.Errorf("Beta = %v, want 1 (sigma^6)", m.Beta)
	}
	if m.Gamma != -2 {
		t.Errorf("Gamma = %v, want -2 (-2*sigma^12)", m.Gamma)
	}
}

func TestBuildMixingRule(t *testing.T) {
	tab := Build(map[int]TypeParams{
		1: {Epsilon: 4, Sigma: 2},
		2: {Epsilon: 9, Sigma: 4},
	})
	m := tab.Get(1, 2)

	wantEps := math.Sqrt(4 * 9)
	wantSigma := (2.0 + 4.0) / 2
	if math.Abs(m.Epsilon-wantEps) > 1e-9 {
		t.Errorf("Epsilon = %v, want %v (geometric mean)", m.Epsilon, wantEps)
	}
	if math.Abs(m.Sigma-wantSigma) > 1e-9 {
		t.Errorf("Sigma = %v, want %v (arithmetic mean)", m.Sigma, wantSigma)
	}

	// Get should be symmetric regardless of argument order.
	if tab.Get(1, 2) != tab.Get(2, 1) {
		t.Error("Get(1,2) should equal Get(2,1)")
	}
}

func TestGetUnregisteredPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Get of an unregistered type pair should panic")
		}
	}()
	tab := Build(map[int]TypeParams{1: {Epsilon: 1, Sigma: 1}})
	tab.Get(1, 2)
}

func TestRepulsiveCutoff(t *testing.T) {
	tab := Build(map[int]TypeParams{1: {Epsilon: 1, Sigma: 1}})
	want := math.Pow(2, 1.0/6.0)
	if got := tab.RepulsiveCutoff(1, 1); math.Abs(got-want) > 1e-9 {
		t.Errorf("RepulsiveCutoff = %v, want %v", got, want)
	}
}
