package generator

import (
	"fmt"
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestConstantIntegerGenerator(t *testing.T) {
	value := int64(5)
	var g IntegerGenerator
	g = NewConstantIntegerGenerator(value)
	require.Equal(t, value, g.LastInt())
	for i := 0; i < 10; i++ {
		require.Equal(t, value, g.NextInt())
		require.Equal(t, value, g.LastInt())
		require.Equal(t, fmt.Sprintf("%d", value), g.NextString())
		require.Equal(t, fmt.Sprintf("%d", value), g.LastString())
		require.Equal(t, float64(value), g.Mean())
	}
}

func TestDeriveSeed(t *testing.T) {
	base := int64(42)
	seen := make(map[int64]bool)
	for i := int64(0); i < 100; i++ {
		s := DeriveSeed(base, i)
		require.False(t, seen[s])
		seen[s] = true
		require.Equal(t, s, DeriveSeed(base, i))
	}
	require.NotEqual(t, DeriveSeed(1, 0), DeriveSeed(2, 0))
}
