package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestNURandGeneratorRange(t *testing.T) {
	r := NewRandom(1)
	c := NewLoadConstants(r)
	cases := []struct {
		a, c, x, y int64
	}{
		{NURandCustomerID, c.CustomerID, 1, 3000},
		{NURandItemID, c.ItemID, 1, 100000},
		{NURandCLast, c.CLast, 0, 999},
		{NURandCustomerID, c.CustomerID, 1, 30},
	}
	for _, tc := range cases {
		var g IntegerGenerator
		g = NewNURandGenerator(r, tc.a, tc.c, tc.x, tc.y)
		for i := 0; i < 5000; i++ {
			v := g.NextInt()
			require.True(t, v >= tc.x && v <= tc.y)
			require.Equal(t, v, g.LastInt())
		}
		require.Panics(t, func() { g.Mean() })
	}
}

func TestNURandIsSkewed(t *testing.T) {
	r := NewRandom(2)
	counts := make(map[int64]int)
	total := 200000
	for i := 0; i < total; i++ {
		counts[NURand(r, NURandCustomerID, 0, 1, 3000)]++
	}
	// a uniform draw would give every id about total/3000 hits
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	require.True(t, max > 3*total/3000)
}

func TestNURandDeterministic(t *testing.T) {
	g1 := NewNURandGenerator(NewRandom(9), NURandItemID, 123, 1, 100000)
	g2 := NewNURandGenerator(NewRandom(9), NURandItemID, 123, 1, 100000)
	for i := 0; i < 100; i++ {
		require.Equal(t, g1.NextInt(), g2.NextInt())
	}
}

func TestNURandConstants(t *testing.T) {
	r := NewRandom(4)
	for i := 0; i < 100; i++ {
		load := NewLoadConstants(r)
		require.True(t, load.CLast >= 0 && load.CLast <= NURandCLast)
		require.True(t, load.CustomerID >= 0 && load.CustomerID <= NURandCustomerID)
		require.True(t, load.ItemID >= 0 && load.ItemID <= NURandItemID)
		run := NewRunConstants(r, load)
		require.True(t, ValidCLastDelta(load.CLast, run.CLast))
	}
}

func TestValidCLastDelta(t *testing.T) {
	require.True(t, ValidCLastDelta(0, 65))
	require.True(t, ValidCLastDelta(200, 81))
	require.False(t, ValidCLastDelta(0, 64))
	require.False(t, ValidCLastDelta(0, 120))
	require.False(t, ValidCLastDelta(100, 4))
	require.False(t, ValidCLastDelta(0, 112))
}
