package generator

import (
	"strconv"
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestZipfianGenerator(t *testing.T) {
	min := int64(1)
	max := int64(100)
	var g IntegerGenerator
	g = NewZipfianGeneratorByInterval(NewRandom(5), min, max)
	counts := make(map[int64]int)
	for i := 0; i < 10000; i++ {
		last := g.NextInt()
		require.True(t, last >= min && last <= max)
		require.Equal(t, last, g.LastInt())
		counts[last]++
		str := g.NextString()
		v, err := strconv.ParseInt(str, 0, 64)
		require.Nil(t, err)
		require.True(t, v >= min && v <= max)
		counts[v]++
	}
	require.True(t, counts[min] > counts[max])
	require.True(t, counts[min] > counts[min+10])
}

func TestZipfianGeneratorSingleItem(t *testing.T) {
	g := NewZipfianGeneratorByInterval(NewRandom(5), 3, 3)
	for i := 0; i < 100; i++ {
		require.Equal(t, int64(3), g.NextInt())
	}
}
