package generator

import (
	"strconv"
	"testing"

	"github.com/hhkbp2/testify/require"
	"github.com/shopspring/decimal"
)

func TestUniformIntegerGenerator(t *testing.T) {
	lowerBound := int64(1000)
	upperBound := int64(2000)
	var g IntegerGenerator
	uig := NewUniformIntegerGenerator(NewRandom(1), lowerBound, upperBound)
	g = uig
	total := 10
	for i := 0; i < total; i++ {
		last := g.NextInt()
		require.True(t, last >= lowerBound && last <= upperBound)
		require.Equal(t, last, g.LastInt())
		str := g.NextString()
		v, err := strconv.ParseInt(str, 0, 64)
		require.Nil(t, err)
		require.True(t, v >= lowerBound && v <= upperBound)
		require.Equal(t, float64(lowerBound+upperBound)/2.0, g.Mean())
	}
}

func TestUniformIntegerGeneratorSeeded(t *testing.T) {
	g1 := NewUniformIntegerGenerator(NewRandom(7), 1, 1000000)
	g2 := NewUniformIntegerGenerator(NewRandom(7), 1, 1000000)
	for i := 0; i < 100; i++ {
		require.Equal(t, g1.NextInt(), g2.NextInt())
	}
}

func TestUniformIntCoversBounds(t *testing.T) {
	r := NewRandom(3)
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		v := UniformInt(r, 1, 5)
		require.True(t, v >= 1 && v <= 5)
		seen[v] = true
	}
	require.Equal(t, 5, len(seen))
	require.Equal(t, int64(9), UniformInt(r, 9, 9))
}

func TestUniformIntExcluding(t *testing.T) {
	r := NewRandom(11)
	seen := make(map[int64]bool)
	for i := 0; i < 2000; i++ {
		v := UniformIntExcluding(r, 1, 4, 2)
		require.NotEqual(t, int64(2), v)
		require.True(t, v >= 1 && v <= 4)
		seen[v] = true
	}
	require.Equal(t, 3, len(seen))
	require.Equal(t, int64(2), UniformIntExcluding(r, 1, 2, 1))
	require.Panics(t, func() { UniformIntExcluding(r, 3, 3, 3) })
}

func TestUniformDecimal(t *testing.T) {
	r := NewRandom(5)
	lo := decimal.RequireFromString("1.00")
	hi := decimal.RequireFromString("5000.00")
	for i := 0; i < 1000; i++ {
		v := UniformDecimal(r, 100, 500000, 2)
		require.True(t, v.GreaterThanOrEqual(lo))
		require.True(t, v.LessThanOrEqual(hi))
		require.Equal(t, int32(-2), v.Exponent())
	}
}
