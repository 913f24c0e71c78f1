package rng

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleIsReproducible(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e", "f", "g"}

	first := Sample(New(7), pool, 4)
	second := Sample(New(7), pool, 4)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, pool, "pool must not be modified")
}

func TestSampleIsDistinct(t *testing.T) {
	pool := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	r := New(1)
	for i := 0; i < 50; i++ {
		got := Sample(r, pool, 6)
		require.Len(t, got, 6)
		seen := map[int]bool{}
		for _, v := range got {
			require.False(t, seen[v], "duplicate %d in %v", v, got)
			seen[v] = true
		}
	}
}

func TestSampleBounds(t *testing.T) {
	pool := []int{3, 1, 2}
	assert.Empty(t, Sample(New(0), pool, 0))
	assert.Empty(t, Sample(New(0), pool, -2))

	all := Sample(New(0), pool, 10)
	sort.Ints(all)
	assert.Equal(t, []int{1, 2, 3}, all)
}

func TestShuffleKeepsElements(t *testing.T) {
	items := []string{"x", "y", "z", "w"}
	Shuffle(New(3), items)
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	assert.Equal(t, []string{"w", "x", "y", "z"}, sorted)
}
