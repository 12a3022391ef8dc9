// Package ljtable builds the symmetric Lorentz-Berthelot mixed
// Lennard-Jones parameter tables, with the force-kernel coefficients
// precomputed per type pair.
package ljtable

import "math"

// TypeParams is one registered particle type's own Lennard-Jones
// parameters.
type TypeParams struct {
	Epsilon float64
	Sigma   float64
}

// Mixed holds the precomputed mixed parameters for one ordered type pair.
type Mixed struct {
	Epsilon float64
	Sigma   float64
	Alpha   float64 // -24*epsilon
	Beta    float64 // sigma^6
	Gamma   float64 // -2*sigma^12
}

type pairKey struct{ a, b int }

// Table is a symmetric map from an unordered type pair to its mixed
// Lennard-Jones parameters. Always store with min(t1,t2) first so lookup is
// a single access.
type Table struct {
	entries map[pairKey]Mixed
}

// Build computes mixed parameters for every unordered pair of the given
// per-type parameters, including a type against itself.
func Build(types map[int]TypeParams) *Table {
	t := &Table{entries: make(map[pairKey]Mixed)}
	ids := make([]int, 0, len(types))
	for id := range types {
		ids = append(ids, id)
	}
	for i, a := range ids {
		for _, b := range ids[i:] {
			ta, tb := types[a], types[b]
			eps := math.Sqrt(ta.Epsilon * tb.Epsilon)
			sigma := (ta.Sigma + tb.Sigma) / 2
			sigma6 := math.Pow(sigma, 6)
			m := Mixed{
				Epsilon: eps,
				Sigma:   sigma,
				Alpha:   -24 * eps,
				Beta:    sigma6,
				Gamma:   -2 * sigma6 * sigma6,
			}
			key := pairKey{min(a, b), max(a, b)}
			t.entries[key] = m
		}
	}
	return t
}

// Get returns the mixed parameters for the unordered pair (t1, t2). It
// panics if either type was never registered — a configuration error the
// caller should have rejected before the loop starts.
func (t *Table) Get(t1, t2 int) Mixed {
	key := pairKey{min(t1, t2), max(t1, t2)}
	m, ok := t.entries[key]
	if !ok {
		panic("ljtable: no mixed parameters registered for type pair")
	}
	return m
}

// RepulsiveCutoff returns sigma * 2^(1/6), the equilibrium/WCA truncation
// distance for the pair (t1, t2).
func (t *Table) RepulsiveCutoff(t1, t2 int) float64 {
	return t.Get(t1, t2).Sigma * math.Pow(2, 1.0/6.0)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
