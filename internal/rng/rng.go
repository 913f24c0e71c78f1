// Package rng owns the seeded pseudo-random generator shared by the sampler and
// the tree retriever. Callers construct one generator per instance and pass it
// in; nothing here keeps process-wide state.
//
// Reproducibility needs a fixed seed, a fixed call order, and a deterministic
// input order: sets must be sorted before they reach Sample.
package rng

import (
	"math/rand/v2"
)

// New returns a generator seeded from seed. Equal seeds yield equal sequences.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle permutes items in place.
func Shuffle[T any](r *rand.Rand, items []T) {
	r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}

// Sample draws n distinct elements of pool in random order, without
// replacement. pool is not modified. n >= len(pool) returns a shuffled copy
// of the whole pool.
func Sample[T any](r *rand.Rand, pool []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	cp := append([]T(nil), pool...)
	if n > len(cp) {
		n = len(cp)
	}
	// partial Fisher-Yates
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:n]
}
