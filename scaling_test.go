package tpcc

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestScalingDefaults(t *testing.T) {
	s, err := NewScaling(NewProperties())
	require.Nil(t, err)
	require.Equal(t, int64(100000), s.MaxItems())
	require.Equal(t, int64(10), s.DistPerWarehouse())
	require.Equal(t, int64(3000), s.CustPerDist())
	require.Equal(t, int64(3000), s.OrdPerDist())
	require.Equal(t, int64(15), s.MaxNumItems())
	require.Equal(t, int64(50), s.MaxItemLen())
	require.Equal(t, int64(0), s.TransactionCount())
	require.Equal(t, int64(1), s.WarehouseCount())
	require.Equal(t, int64(1), s.WarehouseStart())
	require.Equal(t, int64(1), s.WarehouseEnd())
	require.Equal(t, int64(900), s.NewOrdersPerDist())
	require.Equal(t, int64(2101), s.FirstNewOrder())
}

func TestScalingRange(t *testing.T) {
	p := NewProperties()
	p.Add(PropertyWarehouseCount, "8")
	p.Add(PropertyWarehouseStart, "3")
	s, err := NewScaling(p)
	require.Nil(t, err)
	require.Equal(t, int64(8), s.WarehouseEnd())
	require.Equal(t, int64(6), s.Warehouses())

	p.Add(PropertyWarehouseEnd, "4")
	s, err = NewScaling(p)
	require.Nil(t, err)
	require.Equal(t, int64(2), s.Warehouses())
}

func TestScalingInvalid(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{PropertyWarehouseCount, "0"},
		{PropertyMaxItems, "-1"},
		{PropertyCustPerDist, "abc"},
		{PropertyMaxNumItems, "4"},
		{PropertyMaxItemLen, "7"},
		{PropertyOrdPerDist, "3001"},
		{PropertyWarehouseStart, "2"},
		{PropertyWarehouseEnd, "2"},
		{PropertyTransactionCount, "-5"},
	}
	for _, c := range cases {
		p := NewProperties()
		p.Add(c.key, c.value)
		_, err := NewScaling(p)
		require.NotNil(t, err)
		ce, ok := err.(*ConfigError)
		require.True(t, ok)
		require.Equal(t, c.key, ce.Key)
	}
}
