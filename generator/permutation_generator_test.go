package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestPermutationGenerator(t *testing.T) {
	n := int64(3000)
	var g IntegerGenerator
	pg := NewPermutationGenerator(NewRandom(1), n)
	g = pg
	seen := make(map[int64]bool)
	identity := true
	for i := int64(1); i <= n; i++ {
		v := g.NextInt()
		require.True(t, v >= 1 && v <= n)
		require.False(t, seen[v])
		seen[v] = true
		if v != i {
			identity = false
		}
	}
	require.Len(t, seen, int(n))
	require.False(t, identity)
	require.Equal(t, 0, pg.Remaining())
	require.Panics(t, func() { g.NextInt() })
}

func TestRandomSubset(t *testing.T) {
	r := NewRandom(2)
	s := RandomSubset(r, 100000, 10000)
	require.Len(t, s, 10000)
	for k := range s {
		require.True(t, k >= 1 && k <= 100000)
	}
	require.Len(t, RandomSubset(r, 10, 0), 0)
	require.Len(t, RandomSubset(r, 10, 20), 10)
}
