package generator

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestCounterGenerator(t *testing.T) {
	value := int64(100)
	var g IntegerGenerator
	g = NewCounterGenerator(value)
	require.Equal(t, value-1, g.LastInt())
	for i := int64(0); i < 5; i++ {
		require.Equal(t, value+i, g.NextInt())
		require.Equal(t, value+i, g.LastInt())
	}
	for i := int64(5); i < 10; i++ {
		require.Equal(t, fmt.Sprintf("%d", value+i), g.NextString())
		require.Equal(t, fmt.Sprintf("%d", value+i), g.LastString())
	}
	require.Panics(t, func() { g.Mean() })
}

func TestCounterGeneratorConcurrent(t *testing.T) {
	g := NewCounterGenerator(1)
	var wg sync.WaitGroup
	seen := make([]map[int64]bool, 4)
	for i := 0; i < 4; i++ {
		seen[i] = make(map[int64]bool)
		wg.Add(1)
		go func(m map[int64]bool) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				v := g.NextInt()
				m[v] = true
				if g.LastInt() < v {
					t.Errorf("last %d behind handed out %d", g.LastInt(), v)
				}
			}
		}(seen[i])
	}
	wg.Wait()
	require.Equal(t, int64(4000), g.LastInt())
	require.Equal(t, "4000", g.LastString())
	all := make(map[int64]bool)
	for _, m := range seen {
		for k := range m {
			require.False(t, all[k])
			all[k] = true
		}
	}
	require.Len(t, all, 4000)
}
